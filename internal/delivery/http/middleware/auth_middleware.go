package middleware

import (
	"net/http"
	"strings"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the caller's owner id
// in the context. Handlers trust KeyUserID once this has run.
func AuthMiddleware(verifier *auth.Verifier, testUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Authentication invalid", nil)
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Log.Debug("Token validation failed", "error", err, "request_id", c.GetString(string(domain.KeyRequestID)))
			response.Error(c, http.StatusUnauthorized, "Authentication invalid", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Set(string(domain.KeyTestUser), testUserID != "" && identity.UserID == testUserID)

		c.Next()
	}
}
