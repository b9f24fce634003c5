// Package export renders leads and backups as csv and xlsx files.
package export

import (
	"strconv"
	"time"

	"github.com/uninorte/lead-system/internal/core/domain"
)

var (
	leadHeader   = []string{"id", "nome_completo", "telefone", "curso", "status", "vendedor_id", "vendedor_nome", "criado_em", "atualizado_em"}
	userHeader   = []string{"id", "email", "nome", "tipo", "ativo", "criado_em"}
	courseHeader = []string{"id", "nome", "ativo"}
	statusHeader = []string{"id", "nome", "cor"}
)

func leadRow(l *domain.Lead) []string {
	return []string{
		l.ID,
		l.FullName,
		l.Phone,
		l.Course,
		l.Status,
		l.SellerID,
		l.SellerName,
		formatTime(l.CreatedAt),
		formatTime(l.UpdatedAt),
	}
}

func userRow(u *domain.User) []string {
	return []string{u.ID, u.Email, u.Name, u.Role.String(), strconv.FormatBool(u.Active), formatTime(u.CreatedAt)}
}

func courseRow(c *domain.Course) []string {
	return []string{c.ID, c.Name, strconv.FormatBool(c.Active)}
}

func statusRow(s *domain.LeadStatus) []string {
	return []string{s.ID, s.Name, s.Color}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
