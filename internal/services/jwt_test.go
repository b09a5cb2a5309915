package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/carshare/internal/models"
)

var testUser = &models.User{ID: "user-1", Email: "taro@example.com"}

func TestNewJWTService(t *testing.T) {
	svc := NewJWTService("secret", 24*time.Hour)

	assert.NotNil(t, svc)
	assert.Equal(t, 24*time.Hour, svc.Expiry())
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.IssueToken(testUser)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "taro@example.com", claims.Email)
	assert.Equal(t, "carshare-api", claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestJWTService_IssueToken_NilUser(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	_, err := svc.IssueToken(nil)

	assert.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	svc1 := NewJWTService("secret-1", 15*time.Minute)
	svc2 := NewJWTService("secret-2", 15*time.Minute)

	token, err := svc1.IssueToken(testUser)
	require.NoError(t, err)

	_, err = svc2.ValidateToken(token)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.IssueToken(testUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt-token"},
		{"partial jwt", "eyJhbGciOiJIUzI1NiJ9."},
		{"mock token", "mock-token-1700000000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	first, err := svc.IssueToken(testUser)
	require.NoError(t, err)
	second, err := svc.IssueToken(testUser)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
