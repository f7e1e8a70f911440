package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/services"
	"github.com/SAP-F-2025/evaluation-service/internal/utils"
)

type SuggestionHandler struct {
	BaseHandler
	suggestionService services.SuggestionService
}

func NewSuggestionHandler(suggestionService services.SuggestionService, logger utils.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		BaseHandler:       NewBaseHandler(logger),
		suggestionService: suggestionService,
	}
}

// GetExaminerSuggestions lists eligible candidates for an examiner slot
// @Summary Get examiner suggestions
// @Description Lists lecturers eligible for the requested examiner slot, excluding supervisors and prior selections
// @Tags suggestions
// @Accept json
// @Produce json
// @Param slot query int true "Examiner slot (1-3)"
// @Param student_id query uint true "Student ID"
// @Param exclude query string false "Comma-separated lecturer IDs already selected"
// @Success 200 {object} SuccessResponse{data=services.SuggestionResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suggestions/examiners [get]
func (h *SuggestionHandler) GetExaminerSuggestions(c *gin.Context) {
	slot, err := strconv.Atoi(c.Query("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid slot parameter",
			Details: c.Query("slot"),
		})
		return
	}

	studentID, err := strconv.ParseUint(c.Query("student_id"), 10, 32)
	if err != nil || studentID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid student_id parameter",
			Details: c.Query("student_id"),
		})
		return
	}

	priorSelections, err := parseIDList(c.Query("exclude"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid exclude parameter",
			Details: c.Query("exclude"),
		})
		return
	}

	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting examiner suggestions", "slot", slot, "student_id", studentID)

	suggestions, err := h.suggestionService.GetExaminerSuggestions(c.Request.Context(), slot, uint(studentID), priorSelections, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
