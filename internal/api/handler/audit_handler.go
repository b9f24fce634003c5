package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/core/ports"
)

type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

type auditQuery struct {
	Limit int `query:"limit"`
}

// Recent lists audit entries, newest first.
//
// @Summary      Audit log
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 100)"
// @Success      200    {array}   domain.AuditLog
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/audit-logs [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var q auditQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}
	logs, err := h.service.Recent(c.Request().Context(), p, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
