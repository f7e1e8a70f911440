package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/evaluation-service/internal/config"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
)

// CasdoorAuthMiddleware provides authentication using Casdoor SDK
type CasdoorAuthMiddleware struct {
	client   *casdoorsdk.Client
	userRepo repositories.UserRepository
	config   config.CasdoorConfig
}

// NewCasdoorAuthMiddleware creates a new Casdoor authentication middleware
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, userRepo repositories.UserRepository) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)

	return &CasdoorAuthMiddleware{
		client:   client,
		userRepo: userRepo,
		config:   cfg,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>" format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		token := tokenParts[1]

		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		actor, user, err := cam.resolveActor(c.Request.Context(), claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("failed to extract user info: %v", err),
			})
			c.Abort()
			return
		}

		c.Set("user_id", actor.UserID)
		c.Set("user", user)
		c.Set("actor", actor)

		c.Next()
	}
}

// RequireRoleMiddleware checks if the actor holds at least one required role.
// Runs after AuthMiddleware.
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("actor")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "actor not found in context",
			})
			c.Abort()
			return
		}

		actor, ok := value.(models.Actor)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "invalid actor format",
			})
			c.Abort()
			return
		}

		if !actor.HasAnyRole(requiredRoles...) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveActor builds the request actor from JWT claims, preferring the
// directory record (cache or Casdoor) over claim contents.
func (cam *CasdoorAuthMiddleware) resolveActor(ctx context.Context, claims *casdoorsdk.Claims) (models.Actor, *models.User, error) {
	userID := claims.Id
	if userID == "" {
		return models.Actor{}, nil, fmt.Errorf("invalid user ID in token")
	}

	user, err := cam.userRepo.GetByID(ctx, userID)
	if err != nil {
		// Directory lookup failed; fall back to the claims themselves.
		user = cam.userFromClaims(claims)
		if user == nil {
			return models.Actor{}, nil, fmt.Errorf("failed to create user from claims")
		}
	}

	actor := models.Actor{
		UserID:      user.ID,
		StaffNumber: user.StaffNumber,
		Department:  user.Department,
		Roles:       user.Roles,
	}
	return actor, user, nil
}

// userFromClaims builds a user model from JWT claims when the directory is
// unreachable. Custom properties carry staff number and department.
func (cam *CasdoorAuthMiddleware) userFromClaims(claims *casdoorsdk.Claims) *models.User {
	if claims.Id == "" {
		return nil
	}

	user := &models.User{
		ID:            claims.Id,
		FullName:      claims.User.DisplayName,
		Email:         claims.User.Email,
		StaffNumber:   claims.User.Properties["staffNumber"],
		Department:    claims.User.Properties["department"],
		EmailVerified: true,
	}
	if role, ok := mapTokenRole(claims.User.Type); ok {
		user.Roles = []models.UserRole{role}
	}
	return user
}

// mapTokenRole maps the Casdoor user type carried in the token to an
// internal role.
func mapTokenRole(casdoorType string) (models.UserRole, bool) {
	switch strings.ToLower(casdoorType) {
	case "pgam":
		return models.RolePGAM, true
	case "office_assistant", "office-assistant":
		return models.RoleOfficeAssistant, true
	case "program_coordinator", "program-coordinator", "coordinator":
		return models.RoleProgramCoordinator, true
	case "supervisor", "lecturer":
		return models.RoleSupervisor, true
	case "chairperson":
		return models.RoleChairperson, true
	default:
		return "", false
	}
}

// GetActorFromContext extracts the actor from Gin context
func GetActorFromContext(c *gin.Context) (models.Actor, error) {
	value, exists := c.Get("actor")
	if !exists {
		return models.Actor{}, fmt.Errorf("actor not found in context")
	}

	actor, ok := value.(models.Actor)
	if !ok {
		return models.Actor{}, fmt.Errorf("invalid actor type in context")
	}

	return actor, nil
}

// GetUserFromContext extracts the directory user from Gin context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return user, nil
}
