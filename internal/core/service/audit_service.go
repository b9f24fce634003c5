package service

import (
	"context"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

type auditService struct {
	repo ports.AuditRepository
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository) ports.AuditService {
	return &auditService{repo: repo}
}

// Recent returns the newest entries. Non-positive limits fall back to the
// default and large ones are capped.
func (s *auditService) Recent(ctx context.Context, p *domain.Principal, limit int) ([]*domain.AuditLog, error) {
	if err := authorize(p, access.ActionViewAudit); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	return s.repo.Recent(ctx, limit)
}
