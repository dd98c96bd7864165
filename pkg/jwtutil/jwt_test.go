package jwtutil

import (
	"testing"
	"time"

	"supplyhealth-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})

	token, err := GenerateToken("planner@example.com", "planner")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "planner@example.com", claims.Subject)
	assert.Equal(t, "planner", claims.Role)
}

func TestValidate_WrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "one", ExpirationHours: 1})
	token, err := GenerateToken("a", "")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "two", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key"})
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNotInitialized(t *testing.T) {
	Initialize(nil)
	_, err := GenerateToken("a", "")
	assert.Error(t, err)
	_, err = ValidateToken("x.y.z")
	assert.Error(t, err)
}
