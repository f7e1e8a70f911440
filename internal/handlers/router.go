package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/config"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/services"
	"github.com/SAP-F-2025/evaluation-service/internal/utils"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

type HandlerManager struct {
	nominationHandler *NominationHandler
	assignmentHandler *AssignmentHandler
	suggestionHandler *SuggestionHandler
	lecturerHandler   *LecturerHandler
	authMiddleware    *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		nominationHandler: NewNominationHandler(serviceManager.Nomination(), validator, logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), validator, logger),
		suggestionHandler: NewSuggestionHandler(serviceManager.Suggestion(), logger),
		lecturerHandler:   NewLecturerHandler(serviceManager.Lecturer(), logger),
		authMiddleware:    authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Nomination routes
		nominations := v1.Group("/nominations")
		{
			// Create/modify nominations - coordinators, supervisors and admin office
			nominations.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator, models.RoleSupervisor), hm.nominationHandler.CreateNomination)
			nominations.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator, models.RoleSupervisor), hm.nominationHandler.UpdateNomination)
			nominations.POST("/:id/postpone", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator, models.RoleSupervisor), hm.nominationHandler.PostponeNomination)

			// Locking - administrative roles only
			nominations.POST("/:id/lock", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator), hm.nominationHandler.LockNomination)
			nominations.POST("/lock-batch", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator), hm.nominationHandler.LockNominationsBatch)

			// View nominations - all authenticated users, scoped per role
			nominations.GET("", hm.nominationHandler.ListNominations)
			nominations.GET("/:id", hm.nominationHandler.GetNomination)
		}

		// Chairperson assignment routes - coordinators and admin office only
		assignments := v1.Group("/assignments")
		{
			assignments.POST("/chairpersons", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator), hm.assignmentHandler.AssignChairpersons)
		}

		// Suggestion routes
		suggestions := v1.Group("/suggestions")
		{
			suggestions.GET("/examiners", hm.authMiddleware.RequireRoleMiddleware(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator, models.RoleSupervisor), hm.suggestionHandler.GetExaminerSuggestions)
		}

		// Lecturer directory routes
		lecturers := v1.Group("/lecturers")
		{
			lecturers.GET("", hm.lecturerHandler.ListLecturers)
			lecturers.GET("/:id", hm.lecturerHandler.GetLecturer)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "evaluation-service",
		})
	})
}
