package handler

import (
	"github.com/Swarup9437/pm-tool/internal/application/session"
)

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=200"`
	Password string `json:"password" form:"password" binding:"required,max=128"`
}

// LoginResponse carries the session token for API clients. Browsers get the
// same token as a cookie.
type LoginResponse = session.LoginResult

// CurrentUserResponse is the signed-in employee with the actions the role allows
type CurrentUserResponse struct {
	User        session.AuthContext `json:"user"`
	Permissions []string            `json:"permissions"`
}

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}
