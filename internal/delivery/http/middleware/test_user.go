package middleware

import (
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ReadOnlyTestUser blocks writes from the shared demo account.
func ReadOnlyTestUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(string(domain.KeyTestUser)) {
			c.Error(apperror.BadRequest("Test user. Read only operations only"))
			c.Abort()
			return
		}
		c.Next()
	}
}
