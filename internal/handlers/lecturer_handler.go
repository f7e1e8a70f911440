package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/services"
	"github.com/SAP-F-2025/evaluation-service/internal/utils"
)

type LecturerHandler struct {
	BaseHandler
	lecturerService services.LecturerService
}

func NewLecturerHandler(lecturerService services.LecturerService, logger utils.Logger) *LecturerHandler {
	return &LecturerHandler{
		BaseHandler:     NewBaseHandler(logger),
		lecturerService: lecturerService,
	}
}

// GetLecturer retrieves a lecturer by ID
// @Summary Get lecturer
// @Description Retrieves a lecturer directory record
// @Tags lecturers
// @Accept json
// @Produce json
// @Param id path uint true "Lecturer ID"
// @Success 200 {object} SuccessResponse{data=services.LecturerResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /lecturers/{id} [get]
func (h *LecturerHandler) GetLecturer(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting lecturer", "lecturer_id", id)

	lecturer, err := h.lecturerService.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(200, lecturer)
}

// ListLecturers lists lecturers
// @Summary List lecturers
// @Description Lists lecturers with optional filters
// @Tags lecturers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param title query string false "Lecturer title"
// @Param department query string false "Department"
// @Param query query string false "Name or staff number search"
// @Success 200 {object} SuccessResponse{data=services.LecturerListResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /lecturers [get]
func (h *LecturerHandler) ListLecturers(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Listing lecturers")

	filters := h.parseLecturerFilters(c)
	lecturers, err := h.lecturerService.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(200, lecturers)
}

func (h *LecturerHandler) parseLecturerFilters(c *gin.Context) repositories.LecturerFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)

	filters := repositories.LecturerFilters{
		Limit:  size,
		Offset: (page - 1) * size,
		Query:  c.Query("query"),
	}

	if title := c.Query("title"); title != "" {
		lecturerTitle := models.LecturerTitle(title)
		filters.Title = &lecturerTitle
	}

	if department := c.Query("department"); department != "" {
		filters.Department = &department
	}

	if hostStr := c.Query("is_from_host_faculty"); hostStr != "" {
		host := hostStr == "true"
		filters.IsFromHostFaculty = &host
	}

	return filters
}
