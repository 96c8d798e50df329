package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/pkg/token"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

func protectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil repo is fine: all cases below fail before the user lookup
	r.GET("/protected", NewAuthMiddleware(nil, cfg), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddlewareNoHeader(t *testing.T) {
	r := protectedRouter(&config.Config{JWTSecret: "s"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "AUTH_REQUIRED", body["code"])
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	r := protectedRouter(&config.Config{JWTSecret: "s"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

type stubResolver struct {
	user *User
	err  error
}

func (s stubResolver) GetUserByID(ctx context.Context, userID string) (*User, error) {
	return s.user, s.err
}

func resolverRouter(resolver UserResolver, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", NewAuthMiddleware(resolver, cfg), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func bearerRequest(t *testing.T, secret string) *http.Request {
	t.Helper()
	tok, err := token.Generate("507f1f77bcf86cd799439011", "x@y.com", secret, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestAuthMiddlewareUnknownUser(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := resolverRouter(stubResolver{err: errs.ErrNotFound}, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearerRequest(t, "s"))

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestAuthMiddlewareStoreOutageIsNotUnauthorized(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := resolverRouter(stubResolver{err: errors.New("connection reset")}, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearerRequest(t, "s"))

	require.Equal(t, 500, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "DATABASE_ERROR", body["code"])
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	r := resolverRouter(stubResolver{user: &User{Username: "jane"}}, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearerRequest(t, "s"))

	require.Equal(t, 200, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := protectedRouter(&config.Config{JWTSecret: "right-secret"})

	tok, err := token.Generate("507f1f77bcf86cd799439011", "x@y.com", "wrong-secret", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "INVALID_TOKEN", body["code"])
}
