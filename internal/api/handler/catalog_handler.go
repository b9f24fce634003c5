package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/core/ports"
)

// CatalogHandler serves courses and lead statuses.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type createCourseRequest struct {
	Name   string `json:"nome" validate:"required"`
	Active *bool  `json:"ativo"`
}

type createStatusRequest struct {
	Name  string `json:"nome" validate:"required"`
	Color string `json:"cor"  validate:"required"`
}

// Courses lists active courses.
//
// @Summary      List courses
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Course
// @Router       /api/courses [get]
func (h *CatalogHandler) Courses(c echo.Context) error {
	courses, err := h.service.Courses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// CreateCourse adds a course. It is active unless ativo is false.
//
// @Summary      Create a course
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course"
// @Success      201   {object}  domain.Course
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/courses [post]
func (h *CatalogHandler) CreateCourse(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createCourseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	active := req.Active == nil || *req.Active

	course, err := h.service.CreateCourse(c.Request().Context(), p, req.Name, active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// Statuses lists lead statuses.
//
// @Summary      List lead statuses
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.LeadStatus
// @Router       /api/lead-status [get]
func (h *CatalogHandler) Statuses(c echo.Context) error {
	statuses, err := h.service.Statuses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}

// CreateStatus adds a lead status.
//
// @Summary      Create a lead status
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStatusRequest  true  "Status"
// @Success      201   {object}  domain.LeadStatus
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/lead-status [post]
func (h *CatalogHandler) CreateStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	status, err := h.service.CreateStatus(c.Request().Context(), p, req.Name, req.Color)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, status)
}
