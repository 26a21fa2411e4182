package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviegenie/pkg/jwt"
)

func TestJWTProvider_RoundTrip(t *testing.T) {
	p := jwt.NewJWTProvider("test-secret", 24*time.Hour)

	token, err := p.GenerateSessionToken("u-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := p.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestJWTProvider_ExpiredToken(t *testing.T) {
	p := jwt.NewJWTProvider("test-secret", -time.Minute)

	token, err := p.GenerateSessionToken("u-1")
	require.NoError(t, err)

	_, err = p.ParseSessionToken(token)
	assert.Error(t, err)
}

func TestJWTProvider_WrongSecret(t *testing.T) {
	issuer := jwt.NewJWTProvider("issuer-secret", 24*time.Hour)
	verifier := jwt.NewJWTProvider("other-secret", 24*time.Hour)

	token, err := issuer.GenerateSessionToken("u-1")
	require.NoError(t, err)

	_, err = verifier.ParseSessionToken(token)
	assert.Error(t, err)
}

func TestJWTProvider_GarbageToken(t *testing.T) {
	p := jwt.NewJWTProvider("test-secret", 24*time.Hour)

	_, err := p.ParseSessionToken("not-a-jwt")
	assert.Error(t, err)
}
