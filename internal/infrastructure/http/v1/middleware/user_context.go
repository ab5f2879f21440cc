package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "barstock/internal/core/context"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// UserContext propagates the caller identity set by the fronting gateway.
// Authentication happens upstream; these headers are trusted as-is.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.Next()
			return
		}

		user := &appctx.UserContext{
			UserID: userID,
			Email:  c.GetHeader(HeaderUserEmail),
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
