package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/api/metrics"
	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
)

// RequireAction admits only the roles the access policy grants action to.
// It must run after Auth.
func RequireAction(action access.Action) echo.MiddlewareFunc {
	return rbac(string(action), access.RolesFor(action)...)
}

// rbac lets through principals holding one of roles; denials are counted
// under label.
func rbac(label string, roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[p.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues(label, string(p.Role)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
