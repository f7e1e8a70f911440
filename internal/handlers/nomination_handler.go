package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/services"
	"github.com/SAP-F-2025/evaluation-service/internal/utils"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

type NominationHandler struct {
	BaseHandler
	nominationService services.NominationService
	validator         *validator.Validator
}

func NewNominationHandler(
	nominationService services.NominationService,
	validator *validator.Validator,
	logger utils.Logger,
) *NominationHandler {
	return &NominationHandler{
		BaseHandler:       NewBaseHandler(logger),
		nominationService: nominationService,
		validator:         validator,
	}
}

// CreateNomination creates a new examiner nomination
// @Summary Create nomination
// @Description Creates an evaluation record with the nominated examiners
// @Tags nominations
// @Accept json
// @Produce json
// @Param nomination body services.CreateNominationRequest true "Nomination data"
// @Success 201 {object} SuccessResponse{data=services.EvaluationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations [post]
func (h *NominationHandler) CreateNomination(c *gin.Context) {
	var req services.CreateNominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Creating nomination", "student_id", req.StudentID, "semester", req.Semester)

	evaluation, err := h.nominationService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, evaluation)
}

// GetNomination retrieves an evaluation by ID
// @Summary Get nomination
// @Description Retrieves an evaluation with its committee details
// @Tags nominations
// @Accept json
// @Produce json
// @Param id path uint true "Evaluation ID"
// @Success 200 {object} SuccessResponse{data=services.EvaluationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations/{id} [get]
func (h *NominationHandler) GetNomination(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting nomination", "evaluation_id", id)

	evaluation, err := h.nominationService.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// ListNominations lists evaluations visible to the caller
// @Summary List nominations
// @Description Lists evaluations filtered by the caller's visibility scope
// @Tags nominations
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Nomination status"
// @Param semester query int false "Semester"
// @Param academic_year query string false "Academic year"
// @Param department query string false "Department"
// @Success 200 {object} SuccessResponse{data=services.EvaluationListResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations [get]
func (h *NominationHandler) ListNominations(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Listing nominations")

	filters := h.parseEvaluationFilters(c)
	evaluations, err := h.nominationService.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluations)
}

// UpdateNomination updates examiner slots before lock
// @Summary Update nomination
// @Description Updates examiner slots on an unlocked evaluation
// @Tags nominations
// @Accept json
// @Produce json
// @Param id path uint true "Evaluation ID"
// @Param nomination body services.UpdateNominationRequest true "Updated examiner slots"
// @Success 200 {object} SuccessResponse{data=services.EvaluationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations/{id} [put]
func (h *NominationHandler) UpdateNomination(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateNominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating nomination", "evaluation_id", id)

	evaluation, err := h.nominationService.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// PostponeNomination marks an evaluation as postponed
// @Summary Postpone nomination
// @Description Marks an evaluation as postponed with a reason and target date
// @Tags nominations
// @Accept json
// @Produce json
// @Param id path uint true "Evaluation ID"
// @Param postponement body services.PostponeNominationRequest true "Postponement details"
// @Success 200 {object} SuccessResponse{data=services.EvaluationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations/{id}/postpone [post]
func (h *NominationHandler) PostponeNomination(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.PostponeNominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Postponing nomination", "evaluation_id", id)

	evaluation, err := h.nominationService.Postpone(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// LockNomination locks a single evaluation
// @Summary Lock nomination
// @Description Locks an evaluation so its committee can no longer change
// @Tags nominations
// @Accept json
// @Produce json
// @Param id path uint true "Evaluation ID"
// @Success 200 {object} SuccessResponse{data=services.EvaluationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations/{id}/lock [post]
func (h *NominationHandler) LockNomination(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Locking nomination", "evaluation_id", id)

	evaluation, err := h.nominationService.Lock(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// LockNominationsBatch locks multiple evaluations in one transaction
// @Summary Lock nominations (batch)
// @Description Locks a set of evaluations; already-locked records are skipped
// @Tags nominations
// @Accept json
// @Produce json
// @Param request body services.LockNominationsBatchRequest true "Evaluation IDs to lock"
// @Success 200 {object} SuccessResponse{data=services.BatchLockResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nominations/lock-batch [post]
func (h *NominationHandler) LockNominationsBatch(c *gin.Context) {
	var req services.LockNominationsBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Locking nominations batch", "count", len(req.EvaluationIDs))

	result, err := h.nominationService.LockBatch(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *NominationHandler) parseEvaluationFilters(c *gin.Context) repositories.EvaluationFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 10)

	filters := repositories.EvaluationFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if status := c.Query("status"); status != "" {
		nominationStatus := models.NominationStatus(status)
		filters.Status = &nominationStatus
	}

	if studentIDStr := c.Query("student_id"); studentIDStr != "" {
		if studentID, err := strconv.ParseUint(studentIDStr, 10, 32); err == nil {
			id := uint(studentID)
			filters.StudentID = &id
		}
	}

	if semesterStr := c.Query("semester"); semesterStr != "" {
		if semester, err := strconv.Atoi(semesterStr); err == nil {
			filters.Semester = &semester
		}
	}

	if academicYear := c.Query("academic_year"); academicYear != "" {
		filters.AcademicYear = &academicYear
	}

	if department := c.Query("department"); department != "" {
		filters.Department = &department
	}

	if postponedStr := c.Query("is_postponed"); postponedStr != "" {
		postponed := postponedStr == "true"
		filters.IsPostponed = &postponed
	}

	return filters
}
