package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/api/metrics"
	"github.com/uninorte/lead-system/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Export streams the filtered leads as csv or excel.
//
// @Summary      Export leads
// @Tags         reports
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        format       path      string  true   "csv or excel"
// @Param        curso        query     string  false  "Course"
// @Param        status       query     string  false  "Status"
// @Param        vendedor_id  query     string  false  "Seller id"
// @Success      200          {file}    file
// @Failure      400          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /api/reports/export/{format} [get]
func (h *ReportHandler) Export(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var q leadFilterQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	format := c.Param("format")
	report, err := h.service.ExportLeads(c.Request().Context(), p, format, q.filter())
	if err != nil {
		return err
	}
	metrics.ExportsTotal.WithLabelValues(format).Inc()

	return attachment(c, report)
}

// Backup streams a workbook with every collection.
//
// @Summary      Full backup
// @Tags         system
// @Produce      octet-stream
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  map[string]string
// @Router       /api/system/backup [get]
func (h *ReportHandler) Backup(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	report, err := h.service.Backup(c.Request().Context(), p)
	if err != nil {
		return err
	}
	metrics.ExportsTotal.WithLabelValues("backup").Inc()

	return attachment(c, report)
}

func attachment(c echo.Context, r *ports.Report) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", r.Filename))
	return c.Blob(http.StatusOK, r.ContentType, r.Body)
}
