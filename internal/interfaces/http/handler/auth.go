package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Swarup9437/pm-tool/internal/application/session"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CookieOptions controls the session cookie written on login
type CookieOptions struct {
	Name   string
	Secure bool
	Domain string
}

// AuthHandler handles login and logout for pages and the API
type AuthHandler struct {
	BaseHandler
	sessionService *session.Service
	cookie         CookieOptions
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(base BaseHandler, sessionService *session.Service, cookie CookieOptions) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "pm_session"
	}
	return &AuthHandler{
		BaseHandler:    base,
		sessionService: sessionService,
		cookie:         cookie,
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := -1
	if value != "" {
		maxAge = int(time.Until(expiresAt).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, "/")
		return
	}
	h.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Email": ""})
}

// LoginForm handles the login form post
func (h *AuthHandler) LoginForm(c *gin.Context) {
	email := c.PostForm("email")
	result, err := h.sessionService.Login(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			h.Render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Title": "Login",
				"Email": email,
				"Error": "Invalid credentials",
			})
			return
		}
		h.HandlePageError(c, err)
		return
	}
	h.setCookie(c, result.Token.Value, result.Token.ExpiresAt)
	redirect(c, "/")
}

// LogoutForm revokes the session and returns to the login page
func (h *AuthHandler) LogoutForm(c *gin.Context) {
	if token := middleware.SessionToken(c, h.cookie.Name); token != "" {
		if err := h.sessionService.Logout(c.Request.Context(), token); err != nil {
			h.HandlePageError(c, err)
			return
		}
	}
	h.setCookie(c, "", time.Time{})
	redirect(c, middleware.LoginPath)
}

// Login godoc
// @ID           login
// @Summary      Sign in
// @Description  Exchanges email and password for a session token. The token is also set as a cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	result, err := h.sessionService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, result.Token.Value, result.Token.ExpiresAt)
	h.Success(c, result)
}

// Logout godoc
// @ID           logout
// @Summary      Sign out
// @Description  Revokes the current session token
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[LogoutResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c, h.cookie.Name)
	if token == "" {
		h.Unauthorized(c, "authentication required")
		return
	}
	if err := h.sessionService.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, "", time.Time{})
	h.Success(c, LogoutResponse{Message: "logged out"})
}

// Me godoc
// @ID           currentUser
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[CurrentUserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "authentication required")
		return
	}
	actions := user.Role.Permissions()
	perms := make([]string, len(actions))
	for i, a := range actions {
		perms[i] = string(a)
	}
	h.Success(c, CurrentUserResponse{User: *user, Permissions: perms})
}
