package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/application/session"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Header and path constants
const (
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	LoginPath     = "/login"
	APIPrefix     = "/api/"
)

// Authenticator resolves a session token into the signed-in employee
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.AuthContext, error)
}

// SessionConfig holds configuration for the session middleware
type SessionConfig struct {
	Authenticator Authenticator
	// CookieName is the session cookie, "pm_session" by default
	CookieName string
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultSessionConfig returns the public paths of the application
func DefaultSessionConfig(authenticator Authenticator, cookieName string) SessionConfig {
	if cookieName == "" {
		cookieName = "pm_session"
	}
	return SessionConfig{
		Authenticator: authenticator,
		CookieName:    cookieName,
		SkipPaths: []string{
			LoginPath,
			"/health",
			"/metrics",
			"/api/v1/auth/login",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/static",
		},
	}
}

// Session resolves the cookie or bearer token into an AuthContext stored in
// the request context. Anonymous HTML requests are sent to the login page,
// anonymous API requests get 401.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSkipped(c.Request.URL.Path, cfg) {
			// A valid session on a public page still identifies the user
			if token := SessionToken(c, cfg.CookieName); token != "" {
				if user, err := cfg.Authenticator.Authenticate(c.Request.Context(), token); err == nil {
					attachUser(c, user)
				}
			}
			c.Next()
			return
		}

		token := SessionToken(c, cfg.CookieName)
		if token == "" {
			denyAnonymous(c, "authentication required")
			return
		}

		user, err := cfg.Authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Session rejected",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
			denyAnonymous(c, "session is not valid")
			return
		}

		attachUser(c, user)
		c.Next()
	}
}

// SessionToken returns the bearer token if present, else the session cookie
func SessionToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader(AuthHeaderKey); strings.HasPrefix(h, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser returns the signed-in employee, or nil
func CurrentUser(c *gin.Context) *session.AuthContext {
	user, _ := session.FromContext(c.Request.Context())
	return user
}

// WantsJSON reports whether the caller expects a JSON answer rather than a page
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, APIPrefix) {
		return true
	}
	if strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON) {
		return true
	}
	return c.ContentType() == gin.MIMEJSON
}

func attachUser(c *gin.Context, user *session.AuthContext) {
	ctx := session.WithAuthContext(c.Request.Context(), user)
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), user.UserID.String())
	c.Request = c.Request.WithContext(ctx)
}

func denyAnonymous(c *gin.Context, message string) {
	if WantsJSON(c) {
		abortWithError(c, dto.ErrCodeUnauthorized, message)
		return
	}
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

func isSkipped(path string, cfg SessionConfig) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// abortWithError stops the chain with the standard error envelope
func abortWithError(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, c.GetString(logger.RequestIDKey)))
}
