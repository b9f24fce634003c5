package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

type catalogService struct {
	courses  ports.CourseRepository
	statuses ports.LeadStatusRepository
	audit    ports.AuditRecorder
}

// NewCatalogService returns a CatalogService implementation.
func NewCatalogService(courses ports.CourseRepository, statuses ports.LeadStatusRepository, audit ports.AuditRecorder) ports.CatalogService {
	return &catalogService{courses: courses, statuses: statuses, audit: audit}
}

// Courses lists active courses. Reading the catalog needs no session.
func (s *catalogService) Courses(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx, true)
}

func (s *catalogService) CreateCourse(ctx context.Context, p *domain.Principal, name string, active bool) (*domain.Course, error) {
	if err := authorize(p, access.ActionManageCatalog); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome is required", domain.ErrInvalidInput)
	}

	course := &domain.Course{ID: uuid.NewString(), Name: name, Active: active}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.audit.Record(ctx, audit(p, domain.AuditCreate, domain.EntityCourse, course.ID, "Curso criado: "+course.Name))
	return course, nil
}

func (s *catalogService) Statuses(ctx context.Context) ([]*domain.LeadStatus, error) {
	return s.statuses.List(ctx)
}

func (s *catalogService) CreateStatus(ctx context.Context, p *domain.Principal, name, color string) (*domain.LeadStatus, error) {
	if err := authorize(p, access.ActionManageCatalog); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome is required", domain.ErrInvalidInput)
	}
	color = strings.TrimSpace(color)
	if color == "" {
		return nil, fmt.Errorf("%w: cor is required", domain.ErrInvalidInput)
	}

	status := &domain.LeadStatus{ID: uuid.NewString(), Name: name, Color: color}
	if err := s.statuses.Create(ctx, status); err != nil {
		return nil, fmt.Errorf("create lead status: %w", err)
	}
	s.audit.Record(ctx, audit(p, domain.AuditCreate, domain.EntityLeadStatus, status.ID, "Status criado: "+status.Name))
	return status, nil
}
