package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
	"github.com/xyz-asif/lostfound/internal/pkg/token"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// UserResolver loads the account behind a token subject.
type UserResolver interface {
	GetUserByID(ctx context.Context, userID string) (*User, error)
}

// NewAuthMiddleware creates a Gin middleware that resolves the bearer
// token to a full user record and stores it on the context.
func NewAuthMiddleware(repo UserResolver, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization format", "INVALID_AUTH_FORMAT")
			c.Abort()
			return
		}

		claims, err := token.Validate(parts[1], cfg.JWTSecret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		user, err := repo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// Only a missing account is an auth failure; anything else is
			// a store problem and must not masquerade as a bad token.
			if errs.Is(err, errs.ErrNotFound) {
				response.Unauthorized(c, "User not found", "USER_NOT_FOUND")
			} else {
				response.DatabaseError(c, "Failed to resolve user")
			}
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID.Hex())
		c.Next()
	}
}

// CurrentUser pulls the authenticated user set by the middleware. The
// second return is false when the route was reached without auth.
func CurrentUser(c *gin.Context) (*User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := val.(*User)
	return user, ok
}
