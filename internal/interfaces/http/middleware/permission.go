package middleware

import (
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when permission is denied (optional). HTML routes
	// use it to render an error page instead of the JSON envelope.
	OnDenied func(c *gin.Context, action workforce.Action)
}

// RequirePermission creates middleware that requires the role of the
// signed-in employee to allow the action
func RequirePermission(action workforce.Action) gin.HandlerFunc {
	return RequirePermissionWithConfig(action, PermissionConfig{})
}

// RequirePermissionWithConfig creates middleware with custom config
func RequirePermissionWithConfig(action workforce.Action, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			denyAnonymous(c, "authentication required")
			return
		}

		if !user.Can(action) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Permission denied",
					zap.String("user_id", user.UserID.String()),
					zap.String("role", user.Role.String()),
					zap.String("action", string(action)),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
			}
			if cfg.OnDenied != nil && !WantsJSON(c) {
				cfg.OnDenied(c, action)
				c.Abort()
				return
			}
			abortWithError(c, dto.ErrCodeForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}
