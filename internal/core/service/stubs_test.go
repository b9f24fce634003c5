package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

var errStub = errors.New("stub failure")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, r.err
}

func (r *stubUserRepo) Update(_ context.Context, id string, c domain.UserChanges) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if c.Name != nil {
		u.Name = *c.Name
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Role != nil {
		u.Role = *c.Role
	}
	if c.Active != nil {
		u.Active = *c.Active
	}
	if c.PasswordHash != nil {
		u.PasswordHash = *c.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), r.err
}

func (r *stubUserRepo) FirstByRole(_ context.Context, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

type stubLeadRepo struct {
	mu    sync.Mutex
	leads []*domain.Lead
	err   error

	byStatus []domain.CountBucket
	courses  []domain.CountBucket
	ranking  []domain.SellerRank
	monthly  []domain.CountBucket

	monthlySeller string
	monthlyNewest bool
}

func (r *stubLeadRepo) Create(_ context.Context, l *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	clone := *l
	r.leads = append(r.leads, &clone)
	return nil
}

func (r *stubLeadRepo) InsertMany(ctx context.Context, leads []*domain.Lead) error {
	for _, l := range leads {
		if err := r.Create(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubLeadRepo) match(l *domain.Lead, f domain.LeadFilter) bool {
	return (f.Course == "" || l.Course == f.Course) &&
		(f.Status == "" || l.Status == f.Status) &&
		(f.SellerID == "" || l.SellerID == f.SellerID)
}

func (r *stubLeadRepo) List(_ context.Context, f domain.LeadFilter) ([]*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*domain.Lead{}
	for _, l := range r.leads {
		if r.match(l, f) {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) Update(_ context.Context, id string, u domain.LeadUpdate) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID != id {
			continue
		}
		if u.Status != nil {
			l.Status = *u.Status
		}
		if u.FullName != nil {
			l.FullName = *u.FullName
		}
		if u.Phone != nil {
			l.Phone = *u.Phone
		}
		if u.Course != nil {
			l.Course = *u.Course
		}
		l.UpdatedAt = time.Now().UTC()
		clone := *l
		return &clone, nil
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) Count(_ context.Context, f domain.LeadFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, l := range r.leads {
		if r.match(l, f) {
			n++
		}
	}
	return n, nil
}

func (r *stubLeadRepo) CountByStatus(context.Context) ([]domain.CountBucket, error) {
	return r.byStatus, r.err
}

func (r *stubLeadRepo) TopCourses(_ context.Context, limit int) ([]domain.CountBucket, error) {
	if len(r.courses) > limit {
		return r.courses[:limit], r.err
	}
	return r.courses, r.err
}

func (r *stubLeadRepo) SellerRanking(context.Context) ([]domain.SellerRank, error) {
	return r.ranking, r.err
}

func (r *stubLeadRepo) Monthly(_ context.Context, sellerID string, newestFirst bool, _ int) ([]domain.CountBucket, error) {
	r.mu.Lock()
	r.monthlySeller, r.monthlyNewest = sellerID, newestFirst
	r.mu.Unlock()
	return r.monthly, r.err
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type stubCourseRepo struct {
	courses []*domain.Course
	err     error
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) error {
	if r.err != nil {
		return r.err
	}
	r.courses = append(r.courses, c)
	return nil
}

func (r *stubCourseRepo) InsertMany(_ context.Context, cs []*domain.Course) error {
	r.courses = append(r.courses, cs...)
	return r.err
}

func (r *stubCourseRepo) List(_ context.Context, activeOnly bool) ([]*domain.Course, error) {
	out := []*domain.Course{}
	for _, c := range r.courses {
		if !activeOnly || c.Active {
			out = append(out, c)
		}
	}
	return out, r.err
}

func (r *stubCourseRepo) Count(context.Context) (int64, error) {
	return int64(len(r.courses)), r.err
}

type stubStatusRepo struct {
	statuses []*domain.LeadStatus
	err      error
}

func (r *stubStatusRepo) Create(_ context.Context, s *domain.LeadStatus) error {
	if r.err != nil {
		return r.err
	}
	r.statuses = append(r.statuses, s)
	return nil
}

func (r *stubStatusRepo) InsertMany(_ context.Context, ss []*domain.LeadStatus) error {
	r.statuses = append(r.statuses, ss...)
	return r.err
}

func (r *stubStatusRepo) List(context.Context) ([]*domain.LeadStatus, error) {
	return r.statuses, r.err
}

func (r *stubStatusRepo) Count(context.Context) (int64, error) {
	return int64(len(r.statuses)), r.err
}

// ---------------------------------------------------------------------------
// Audit and tokens
// ---------------------------------------------------------------------------

type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (a *stubAudit) Record(_ context.Context, e domain.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *stubAudit) last() (domain.AuditLog, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return domain.AuditLog{}, false
	}
	return a.entries[len(a.entries)-1], true
}

type stubAuditRepo struct {
	entries   []*domain.AuditLog
	lastLimit int
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditLog) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubAuditRepo) Recent(_ context.Context, limit int) ([]*domain.AuditLog, error) {
	r.lastLimit = limit
	if len(r.entries) > limit {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}

type stubDenylist struct {
	revoked map[string]time.Time
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, id string, exp time.Time) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[id] = exp
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Encoders
// ---------------------------------------------------------------------------

type stubEncoder struct {
	name   string
	leads  []*domain.Lead
	backup *ports.Backup
}

func (e *stubEncoder) EncodeLeads(w io.Writer, leads []*domain.Lead) error {
	e.leads = leads
	_, err := io.WriteString(w, e.name)
	return err
}

func (e *stubEncoder) EncodeBackup(w io.Writer, b ports.Backup) error {
	e.backup = &b
	_, err := io.WriteString(w, e.name)
	return err
}

// ---------------------------------------------------------------------------
// Principals
// ---------------------------------------------------------------------------

func principal(role domain.Role) *domain.Principal {
	return &domain.Principal{UserID: "u-" + string(role), Name: "Demo " + string(role), Role: role, TokenID: "jti-" + string(role)}
}

var (
	seller      = principal(domain.RoleSeller)
	coordinator = principal(domain.RoleCoordinator)
	admin       = principal(domain.RoleAdministrator)
)
