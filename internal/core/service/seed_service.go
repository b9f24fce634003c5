package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

type demoUser struct {
	email, name, password string
	role                  domain.Role
}

var demoUsers = []demoUser{
	{"vendedor@lead.com.br", "Vendedor Demo", "vendedor123", domain.RoleSeller},
	{"coordenador@lead.com.br", "Coordenador Demo", "coordenador123", domain.RoleCoordinator},
	{"adm@lead.com.br", "DANIEL Souza", "adm123", domain.RoleAdministrator},
}

var demoCourses = []string{
	"Enfermagem",
	"Farmácia",
	"Medicina Veterinária",
	"Odontologia",
	"Psicologia",
	"Administração – Presencial",
	"Administração – Semipresencial",
	"Licenciatura em História",
	"Licenciatura em Letras – Língua Inglesa",
	"Licenciatura em Letras – Língua Portuguesa",
	"Licenciatura em Matemática",
	"Pedagogia",
	"Ciência de Computação",
	"Engenharia da Computação",
	"Engenharia Elétrica",
	"Engenharia Mecânica",
	"Sistema da Informação",
	"Direito",
}

var demoStatuses = []domain.LeadStatus{
	{Name: "Novo", Color: "#3B82F6"},
	{Name: "Em negociação", Color: "#F97316"},
	{Name: "Matriculado", Color: "#10B981"},
	{Name: "Não tem interesse", Color: "#EF4444"},
}

type demoLead struct {
	name, phone, course, status    string
	createdDaysAgo, updatedDaysAgo int
}

var demoLeads = []demoLead{
	{"Maria Silva Santos", "(84) 98765-4321", "Enfermagem", "Novo", 5, 5},
	{"João Pedro Costa", "(84) 99876-5432", "Engenharia da Computação", "Em negociação", 10, 2},
	{"Ana Carolina Oliveira", "(84) 98123-4567", "Administração – Presencial", "Matriculado", 20, 1},
	{"Carlos Eduardo Ferreira", "(84) 99234-5678", "Direito", "Em negociação", 3, 3},
	{"Beatriz Almeida Lima", "(84) 98345-6789", "Psicologia", "Novo", 7, 7},
	{"Lucas Henrique Souza", "(84) 99456-7890", "Engenharia Elétrica", "Matriculado", 15, 8},
	{"Fernanda Rodrigues Martins", "(84) 98567-8901", "Farmácia", "Em negociação", 12, 4},
	{"Rafael Gomes Pereira", "(84) 99678-9012", "Ciência de Computação", "Novo", 1, 1},
	{"Juliana Mendes Rocha", "(84) 98789-0123", "Pedagogia", "Matriculado", 25, 18},
	{"Gabriel Santos Barbosa", "(84) 99890-1234", "Odontologia", "Não tem interesse", 30, 28},
	{"Camila Freitas Castro", "(84) 98901-2345", "Medicina Veterinária", "Em negociação", 8, 6},
	{"Thiago Ribeiro Lopes", "(84) 99012-3456", "Licenciatura em Matemática", "Novo", 0, 0},
}

// Seeder fills empty collections with demo data at startup.
type Seeder struct {
	users    ports.UserRepository
	courses  ports.CourseRepository
	statuses ports.LeadStatusRepository
	leads    ports.LeadRepository
	now      func() time.Time
	log      zerolog.Logger
}

func NewSeeder(users ports.UserRepository, courses ports.CourseRepository, statuses ports.LeadStatusRepository, leads ports.LeadRepository, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, courses: courses, statuses: statuses, leads: leads, now: time.Now, log: log}
}

// Seed inserts each data set only when its collection is empty, so it is
// safe to run on every start.
func (s *Seeder) Seed(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", s.seedUsers},
		{"courses", s.seedCourses},
		{"lead statuses", s.seedStatuses},
		{"leads", s.seedLeads},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	now := s.now().UTC()
	for _, du := range demoUsers {
		hash, err := HashPassword(du.password)
		if err != nil {
			return err
		}
		u := &domain.User{
			ID:           uuid.NewString(),
			Email:        du.email,
			Name:         du.name,
			Role:         du.role,
			PasswordHash: hash,
			Active:       true,
			CreatedAt:    now,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(demoUsers)).Msg("demo users created")
	return nil
}

func (s *Seeder) seedCourses(ctx context.Context) error {
	n, err := s.courses.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	courses := make([]*domain.Course, 0, len(demoCourses))
	for _, name := range demoCourses {
		courses = append(courses, &domain.Course{ID: uuid.NewString(), Name: name, Active: true})
	}
	if err := s.courses.InsertMany(ctx, courses); err != nil {
		return err
	}
	s.log.Info().Int("count", len(courses)).Msg("courses created")
	return nil
}

func (s *Seeder) seedStatuses(ctx context.Context) error {
	n, err := s.statuses.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	statuses := make([]*domain.LeadStatus, 0, len(demoStatuses))
	for _, st := range demoStatuses {
		statuses = append(statuses, &domain.LeadStatus{ID: uuid.NewString(), Name: st.Name, Color: st.Color})
	}
	if err := s.statuses.InsertMany(ctx, statuses); err != nil {
		return err
	}
	s.log.Info().Int("count", len(statuses)).Msg("lead statuses created")
	return nil
}

// seedLeads attaches the sample leads to the first seller found.
func (s *Seeder) seedLeads(ctx context.Context) error {
	n, err := s.leads.Count(ctx, domain.LeadFilter{})
	if err != nil || n > 0 {
		return err
	}
	seller, err := s.users.FirstByRole(ctx, domain.RoleSeller)
	if err != nil {
		s.log.Warn().Err(err).Msg("no seller to own sample leads")
		return nil
	}

	now := s.now().UTC()
	day := 24 * time.Hour
	leads := make([]*domain.Lead, 0, len(demoLeads))
	for _, dl := range demoLeads {
		leads = append(leads, &domain.Lead{
			ID:         uuid.NewString(),
			FullName:   dl.name,
			Phone:      dl.phone,
			Course:     dl.course,
			Status:     dl.status,
			SellerID:   seller.ID,
			SellerName: seller.Name,
			CreatedAt:  now.Add(-time.Duration(dl.createdDaysAgo) * day),
			UpdatedAt:  now.Add(-time.Duration(dl.updatedDaysAgo) * day),
		})
	}
	if err := s.leads.InsertMany(ctx, leads); err != nil {
		return err
	}
	s.log.Info().Int("count", len(leads)).Msg("sample leads created")
	return nil
}
