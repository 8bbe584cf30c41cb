package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("maria", true)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "maria", claims[auth.ClaimUsername])
	assert.Equal(t, true, claims[auth.ClaimIsAdmin])
	assert.Equal(t, auth.TokenTypeAccess, claims[auth.ClaimType])
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever")

	_, _, err := svc.GenerateAccessToken("maria", false)
	assert.Error(t, err)
}

func TestStreamToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	tokenString, expiresIn, err := svc.GenerateStreamToken("joao")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	username, err := svc.ValidateStreamToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "joao", username)
}

func TestValidateStreamToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")
	access, _, err := svc.GenerateAccessToken("maria", true)
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(access)
	assert.Error(t, err)
}

func TestValidateStreamToken_RejectsForeignSignature(t *testing.T) {
	other := NewJWTService("another-secret", "1h")
	tokenString, _, err := other.GenerateStreamToken("joao")
	require.NoError(t, err)

	_, err = NewJWTService(testSecret, "1h").ValidateStreamToken(tokenString)
	assert.Error(t, err)
}

func TestValidateStreamToken_RejectsExpired(t *testing.T) {
	svc := NewJWTService(testSecret, "1h").(*JWTService)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tokenString, _, err := svc.GenerateStreamToken("maria")
	require.NoError(t, err)

	svc.now = time.Now
	username, err := svc.ValidateStreamToken(tokenString)

	assert.ErrorIs(t, err, jwtauth.ErrExpired)
	assert.Empty(t, username)
}
