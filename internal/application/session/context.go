// Package session authenticates employees and carries the signed-in user
// through request contexts.
package session

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
)

// AuthContext is the signed-in employee for one request
type AuthContext struct {
	UserID uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Role   workforce.Role `json:"role"`
}

// Can reports whether the user's role allows the action
func (a *AuthContext) Can(action workforce.Action) bool {
	return a != nil && a.Role.Can(action)
}

type authContextKey struct{}

// WithAuthContext returns a copy of ctx carrying the user
func WithAuthContext(ctx context.Context, a *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, a)
}

// FromContext returns the user stored in ctx, if any
func FromContext(ctx context.Context) (*AuthContext, bool) {
	a, ok := ctx.Value(authContextKey{}).(*AuthContext)
	return a, ok && a != nil
}
