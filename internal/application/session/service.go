package session

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/auth"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials covers unknown email, no password set and wrong password alike
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "invalid credentials")
	// ErrSessionInvalid is returned for missing, expired, revoked or orphaned sessions
	ErrSessionInvalid = shared.NewDomainError(shared.CodeUnauthorized, "session is not valid")
)

// LoginMetrics counts login outcomes
type LoginMetrics interface {
	LoginAttempt(success bool)
}

// LoginResult is a successful login
type LoginResult struct {
	Token auth.SessionToken `json:"session"`
	User  AuthContext       `json:"user"`
}

// Service handles login, logout and session resolution
type Service struct {
	employeeRepo workforce.EmployeeRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	metrics      LoginMetrics
	logger       *zap.Logger
}

// NewService creates a new session service
func NewService(
	employeeRepo workforce.EmployeeRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// SetMetrics attaches a login counter
func (s *Service) SetMetrics(m LoginMetrics) {
	s.metrics = m
}

// Login checks the password and issues a session token
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "session", "Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	e, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsNotFound(err) {
			s.fail(email, "unknown email")
			return nil, ErrInvalidCredentials
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !e.HasPassword() || !e.VerifyPassword(password) {
		s.fail(email, "bad password")
		return nil, ErrInvalidCredentials
	}

	tok, err := s.jwtService.Issue(auth.IssueInput{UserID: e.ID, Email: e.Email, Role: e.Role.String()})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.LoginAttempt(true)
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, e.ID.String())
	s.logger.Info("Login succeeded", zap.String("user_id", e.ID.String()), zap.String("role", e.Role.String()))

	return &LoginResult{Token: *tok, User: toAuthContext(e)}, nil
}

func (s *Service) fail(email, reason string) {
	if s.metrics != nil {
		s.metrics.LoginAttempt(false)
	}
	s.logger.Warn("Login failed", zap.String("email", email), zap.String("reason", reason))
}

// Logout revokes the token until it would have expired.
// Tokens that are already invalid need no revocation.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("Logout", zap.String("user_id", claims.UserID))
	return nil
}

// Authenticate resolves a token into the employee it belongs to.
// The role comes from the stored employee, so role changes apply immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (*AuthContext, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUnauthorized, "session is not valid", err)
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionInvalid
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, ErrSessionInvalid
	}
	e, err := s.employeeRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	a := toAuthContext(e)
	return &a, nil
}

func toAuthContext(e *workforce.Employee) AuthContext {
	return AuthContext{UserID: e.ID, Name: e.Name, Email: e.Email, Role: e.Role}
}
