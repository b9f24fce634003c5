package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get returns the aggregate overview.
//
// @Summary      Dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Dashboard
// @Failure      403  {object}  map[string]string
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	d, err := h.service.Dashboard(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
