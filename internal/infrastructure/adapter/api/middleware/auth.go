package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/finance-tracker/internal/domain/entity"
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/domain/usecase/auth"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/dto"
)

// userContextKey is where the authenticated user lives in the gin context
const userContextKey = "authenticatedUser"

// Auth verifies the bearer token and loads the authenticated user into the
// request context. Requests without a valid token never reach the handler.
func Auth(authService *auth.Service, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(
				errs.CodeInvalidToken,
				"Access denied. No authentication token provided.",
				nil,
			))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Rejected authentication token", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			message := "Invalid authentication token"
			if errors.Is(err, errs.ErrTokenExpired) {
				message = "Authentication token has expired. Please log in again."
			}
			if errors.Is(err, errs.ErrAccountDeactivated) {
				message = "Account is deactivated. Please contact support."
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(errs.ErrorCode(err), message, nil))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user the Auth middleware loaded for this request
func CurrentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
