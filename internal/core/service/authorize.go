package service

import (
	"fmt"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
)

// authorize re-checks the caller's role against the action policy. The HTTP
// layer applies the same policy; services never rely on it.
func authorize(p *domain.Principal, action access.Action) error {
	if p == nil {
		return fmt.Errorf("%s: %w", action, domain.ErrForbidden)
	}
	if !access.Can(p.Role, action) {
		return fmt.Errorf("%s as %s: %w", action, p.Role, domain.ErrForbidden)
	}
	return nil
}

func audit(p *domain.Principal, action, entity, entityID, details string) domain.AuditLog {
	return domain.AuditLog{
		UserID:   p.UserID,
		UserName: p.Name,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
}
