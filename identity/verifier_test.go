package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/checkout/config"
)

const testSecret = "unit-test-secret"

func newVerifier(t *testing.T) Verifier {
	t.Helper()
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: testSecret}}
	return NewJWTVerifier(cfg, zap.NewNop())
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	v := newVerifier(t)
	userID := uuid.New()

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, ident.UserID)
	assert.Equal(t, "user@example.com", ident.Email)
}

func TestVerify_MissingEmailClaim(t *testing.T) {
	v := newVerifier(t)
	userID := uuid.New()

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, ident.UserID)
	assert.Empty(t, ident.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := newVerifier(t)

	token := signToken(t, "another-secret", jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := newVerifier(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	v := newVerifier(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "service-account",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	v := newVerifier(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_UnsignedTokenRejected(t *testing.T) {
	v := newVerifier(t)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), signed)
	assert.Error(t, err)
}
