package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/services"
	"github.com/SAP-F-2025/evaluation-service/internal/utils"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

// ErrorResponse is the standard error payload for all endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse wraps payloads for endpoints that return an envelope.
type SuccessResponse struct {
	Data any `json:"data"`
}

// BaseHandler provides shared helpers for all HTTP handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs at info level with the request-scoped logger when present.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// parseIDParam parses a uint path parameter. On failure it writes a 400
// response and returns 0; callers must return when they get 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
			Details: raw,
		})
		return 0
	}
	return uint(id)
}

// parseIntQuery parses an integer query parameter with a default.
func (h *BaseHandler) parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// getActor pulls the authenticated actor set by the auth middleware. On
// failure it writes a 401 response and reports false.
func (h *BaseHandler) getActor(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get("actor")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return models.Actor{}, false
	}

	actor, ok := value.(models.Actor)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid authentication context",
		})
		return models.Actor{}, false
	}

	return actor, true
}

// handleServiceError maps service layer errors onto HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	var ruleErr *validator.RuleViolationError
	if errors.As(err, &ruleErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Eligibility rule violated",
			Details: ruleErr.Error(),
		})
		return
	}

	var permErr *services.PermissionError
	if errors.As(err, &permErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Permission denied",
			Details: permErr.Error(),
		})
		return
	}

	if services.IsNotFoundError(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
		return
	}

	var lockedErr *services.LockedRecordError
	if errors.As(err, &lockedErr) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Record is locked",
			Details: lockedErr.Error(),
		})
		return
	}

	var dupErr *services.DuplicateNominationError
	if errors.As(err, &dupErr) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Duplicate nomination",
			Details: dupErr.Error(),
		})
		return
	}

	var capErr *services.CapacityExceededError
	if errors.As(err, &capErr) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Chairperson capacity exceeded",
			Details: capErr.Error(),
		})
		return
	}

	h.LogError(c, "Unhandled service error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal server error",
	})
}
