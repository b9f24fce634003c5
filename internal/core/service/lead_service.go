package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

const maxMonthlyBuckets = 12

type leadService struct {
	leads ports.LeadRepository
	audit ports.AuditRecorder
	now   func() time.Time
	log   zerolog.Logger
}

// NewLeadService returns a LeadService implementation.
func NewLeadService(leads ports.LeadRepository, audit ports.AuditRecorder, log zerolog.Logger) ports.LeadService {
	return &leadService{leads: leads, audit: audit, now: time.Now, log: log}
}

// Create registers a lead owned by the calling seller with the default status.
func (s *leadService) Create(ctx context.Context, p *domain.Principal, in ports.CreateLeadInput) (*domain.Lead, error) {
	if err := authorize(p, access.ActionCreateLead); err != nil {
		return nil, err
	}

	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Course = strings.TrimSpace(in.Course)
	switch {
	case in.FullName == "":
		return nil, fmt.Errorf("%w: nome_completo is required", domain.ErrInvalidInput)
	case in.Phone == "":
		return nil, fmt.Errorf("%w: telefone is required", domain.ErrInvalidInput)
	case in.Course == "":
		return nil, fmt.Errorf("%w: curso is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	lead := &domain.Lead{
		ID:         uuid.NewString(),
		FullName:   in.FullName,
		Phone:      in.Phone,
		Course:     in.Course,
		Status:     domain.DefaultLeadStatus,
		SellerID:   p.UserID,
		SellerName: p.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	s.audit.Record(ctx, audit(p, domain.AuditCreate, domain.EntityLead, lead.ID, "Lead criado: "+lead.FullName))
	s.log.Info().Str("lead_id", lead.ID).Str("seller_id", p.UserID).Msg("lead created")
	return lead, nil
}

// ListMine returns the calling seller's leads.
func (s *leadService) ListMine(ctx context.Context, p *domain.Principal) ([]*domain.Lead, error) {
	if err := authorize(p, access.ActionViewOwnLeads); err != nil {
		return nil, err
	}
	return s.leads.List(ctx, domain.LeadFilter{SellerID: p.UserID})
}

// MyStats returns the seller's total and per-month counts, newest month first.
func (s *leadService) MyStats(ctx context.Context, p *domain.Principal) (*domain.LeadStats, error) {
	if err := authorize(p, access.ActionViewOwnStats); err != nil {
		return nil, err
	}

	total, err := s.leads.Count(ctx, domain.LeadFilter{SellerID: p.UserID})
	if err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	monthly, err := s.leads.Monthly(ctx, p.UserID, true, maxMonthlyBuckets)
	if err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	return &domain.LeadStats{Total: total, Monthly: nonNilBuckets(monthly)}, nil
}

// List returns every lead matching filter.
func (s *leadService) List(ctx context.Context, p *domain.Principal, filter domain.LeadFilter) ([]*domain.Lead, error) {
	if err := authorize(p, access.ActionViewAllLeads); err != nil {
		return nil, err
	}
	return s.leads.List(ctx, filter)
}

// Update applies a partial update and records it in the audit trail.
func (s *leadService) Update(ctx context.Context, p *domain.Principal, id string, update domain.LeadUpdate) (*domain.Lead, error) {
	if err := authorize(p, access.ActionUpdateLead); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrLeadNotFound
	}

	lead, err := s.leads.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}

	s.audit.Record(ctx, audit(p, domain.AuditUpdate, domain.EntityLead, id, "Lead atualizado"))
	return lead, nil
}

func nonNilBuckets(b []domain.CountBucket) []domain.CountBucket {
	if b == nil {
		return []domain.CountBucket{}
	}
	return b
}
