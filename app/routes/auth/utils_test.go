package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"oakridge-academy/app/config"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func TestJWTRoundTrip(t *testing.T) {
	claims := JWTClaims{
		UserID:    "u1",
		Email:     "parent@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Roles:     []string{"parent"},
		ParentID:  "p1",
		ChildIDs:  []string{"s1", "s2"},
	}

	token, err := GenerateJWT(claims)
	require.NoError(t, err)

	parsed, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, []string{"parent"}, parsed.Roles)
	assert.Equal(t, "p1", parsed.ParentID)
	assert.Equal(t, []string{"s1", "s2"}, parsed.ChildIDs)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWT(JWTClaims{UserID: "u1"})
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "rotated"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter22", string(hash)))
	assert.False(t, CheckPasswordHash("wrong", string(hash)))
}
