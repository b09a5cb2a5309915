package middleware

import (
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/carshare/internal/mockapi"
	"github.com/dimitrije/carshare/internal/services"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// OptionalAuth lets anonymous requests through and binds the acting user for
// requests that carry a valid bearer token. The mock backend answers for its
// current user when no one is bound.
func OptionalAuth(validator TokenValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		token, present, ok := bearerToken(c.GetHeader("Authorization"))
		if !present {
			c.Next()
			return
		}
		if !ok {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Request = c.Request.WithContext(mockapi.WithActingUser(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// bearerToken extracts the token of a "Bearer <token>" header. The scheme is
// case-insensitive.
func bearerToken(header string) (token string, present, ok bool) {
	if header == "" {
		return "", false, false
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", true, false
	}
	return token, true, true
}

func GetUserID(c *drift.Context) string {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(string); ok {
			return uid
		}
	}
	return ""
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
