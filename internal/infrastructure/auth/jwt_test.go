package auth

import (
	"testing"
	"time"

	"github.com/Swarup9437/pm-tool/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.AuthConfig{
		SessionSecret: "test-secret-key-at-least-32-chars",
		SessionTTL:    time.Hour,
		Issuer:        "pm-tool-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	tok, err := svc.Issue(IssueInput{UserID: userID, Email: "amit@company.com", Role: "pm"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Value)
	assert.NotEmpty(t, tok.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := svc.Validate(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, tok.JTI, claims.ID)
	assert.Equal(t, "pm", claims.Role)
	assert.Equal(t, "amit@company.com", claims.Email)

	got, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Greater(t, claims.GetRemainingTTL(), 50*time.Minute)
}

func TestJWTService_UniqueJTI(t *testing.T) {
	svc := newTestJWTService()
	in := IssueInput{UserID: uuid.New(), Role: "viewer"}

	a, err := svc.Issue(in)
	require.NoError(t, err)
	b, err := svc.Issue(in)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestJWTService_Validate_Rejects(t *testing.T) {
	svc := newTestJWTService()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.AuthConfig{SessionSecret: "another-secret-another-secret-xx", SessionTTL: time.Hour, Issuer: "pm-tool-test"})
		tok, err := other.Issue(IssueInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.Validate(tok.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := newTestJWTService()
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, err := past.Issue(IssueInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.Validate(tok.Value)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "pm-tool-test"}, UserID: uuid.NewString()}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pm-tool-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}
