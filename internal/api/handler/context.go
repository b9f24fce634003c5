package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/api/middleware"
	"github.com/uninorte/lead-system/internal/core/domain"
)

// principal extracts the caller injected by the Auth middleware. Its absence
// means the route was registered without Auth.
func principal(c echo.Context) (*domain.Principal, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// bind decodes the request into req and runs the validator on it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
