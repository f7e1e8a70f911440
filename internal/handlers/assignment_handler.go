package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/services"
	"github.com/SAP-F-2025/evaluation-service/internal/utils"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
	validator         *validator.Validator
}

func NewAssignmentHandler(
	assignmentService services.AssignmentService,
	validator *validator.Validator,
	logger utils.Logger,
) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
		validator:         validator,
	}
}

// AssignChairpersons assigns chairpersons to evaluations in a batch
// @Summary Assign chairpersons (batch)
// @Description Validates every assignment tuple and commits all of them atomically
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body services.AssignChairpersonsRequest true "Assignment tuples"
// @Success 200 {object} SuccessResponse{data=[]services.EvaluationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/chairpersons [post]
func (h *AssignmentHandler) AssignChairpersons(c *gin.Context) {
	var req services.AssignChairpersonsRequest
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

	h.LogRequest(c, "Assigning chairpersons", "count", len(req.Assignments))

	evaluations, err := h.assignmentService.AssignChairpersons(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluations)
}
