package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/api/metrics"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

// LeadHandler handles HTTP requests for lead operations.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

type createLeadRequest struct {
	FullName string `json:"nome_completo" validate:"required"`
	Phone    string `json:"telefone" validate:"required"`
	Course   string `json:"curso" validate:"required"`
}

type updateLeadRequest struct {
	Status   *string `json:"status"`
	FullName *string `json:"nome_completo"`
	Phone    *string `json:"telefone"`
	Course   *string `json:"curso"`
}

type leadFilterQuery struct {
	Course   string `query:"curso"`
	Status   string `query:"status"`
	SellerID string `query:"vendedor_id"`
}

func (q leadFilterQuery) filter() domain.LeadFilter {
	return domain.LeadFilter{Course: q.Course, Status: q.Status, SellerID: q.SellerID}
}

// Create registers a lead for the calling seller.
//
// @Summary      Create a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  domain.Lead
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createLeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lead, err := h.service.Create(c.Request().Context(), p, ports.CreateLeadInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Course:   req.Course,
	})
	if err != nil {
		return err
	}
	metrics.LeadsCreatedTotal.WithLabelValues(lead.Course).Inc()

	return c.JSON(http.StatusCreated, lead)
}

// ListMine returns the calling seller's leads.
//
// @Summary      List own leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Lead
// @Failure      403  {object}  map[string]string
// @Router       /api/leads/my [get]
func (h *LeadHandler) ListMine(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	leads, err := h.service.ListMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leads)
}

// Stats returns the calling seller's totals.
//
// @Summary      Own lead statistics
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.LeadStats
// @Failure      403  {object}  map[string]string
// @Router       /api/leads/stats [get]
func (h *LeadHandler) Stats(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	stats, err := h.service.MyStats(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// List returns every lead matching the optional filters.
//
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        curso        query     string  false  "Course"
// @Param        status       query     string  false  "Status"
// @Param        vendedor_id  query     string  false  "Seller id"
// @Success      200          {array}   domain.Lead
// @Failure      403          {object}  map[string]string
// @Router       /api/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var q leadFilterQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	leads, err := h.service.List(c.Request().Context(), p, q.filter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leads)
}

// Update changes the given fields of a lead.
//
// @Summary      Update a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Lead id"
// @Param        body  body      updateLeadRequest  true  "Fields to change"
// @Success      200   {object}  domain.Lead
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/leads/{id} [patch]
func (h *LeadHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req updateLeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lead, err := h.service.Update(c.Request().Context(), p, c.Param("id"), domain.LeadUpdate{
		Status:   req.Status,
		FullName: req.FullName,
		Phone:    req.Phone,
		Course:   req.Course,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lead)
}
