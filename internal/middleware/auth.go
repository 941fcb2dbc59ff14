package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"moneynote/internal/envelope"
	apperrors "moneynote/internal/errors"
	"moneynote/internal/services"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "user"
	ContextTokenKey  = "token"
)

// Auth returns a middleware that resolves the bearer token against the token
// store and attaches the owning user to the request context. Missing, unknown,
// and expired tokens all produce the unauthorized envelope; the body carries
// the signal, not the HTTP status.
func Auth(authService services.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			envelope.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if user == nil {
			envelope.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
