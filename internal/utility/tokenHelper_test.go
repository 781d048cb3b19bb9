package utility

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, refresh, err := GenerateAllTokens("ada@example.com", "Ada", "user-1", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, token, refresh)

	claims, errMsg := ValidateToken(token)
	require.Empty(t, errMsg)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "user-1", claims.Uid)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	claims, errMsg := ValidateToken("not-a-token")
	assert.Nil(t, claims)
	assert.Equal(t, ErrInvalidToken, errMsg)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "key-one")
	token, _, err := GenerateAllTokens("a@b.c", "A", "u1", "user")
	require.NoError(t, err)

	t.Setenv("SECRET_KEY", "key-two")
	claims, errMsg := ValidateToken(token)
	assert.Nil(t, claims)
	assert.Equal(t, ErrInvalidToken, errMsg)
}

func TestValidateTokenDetectsExpiry(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	expired := &SignedDetails{
		Email: "a@b.c",
		Uid:   "u1",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, errMsg := ValidateToken(token)
	assert.Nil(t, claims)
	assert.Equal(t, ErrTokenExpired, errMsg)
}
