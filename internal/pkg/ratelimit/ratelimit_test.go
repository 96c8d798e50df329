package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := New(3, time.Minute)

	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	// independent keys
	require.True(t, rl.Allow("b"))
}

func TestWindowExpiry(t *testing.T) {
	rl := New(1, 20*time.Millisecond)

	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	time.Sleep(30 * time.Millisecond)
	require.True(t, rl.Allow("a"))
}

func TestRemaining(t *testing.T) {
	rl := New(5, time.Minute)
	require.Equal(t, 5, rl.Remaining("a"))
	rl.Allow("a")
	rl.Allow("a")
	require.Equal(t, 3, rl.Remaining("a"))
}

func TestMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := New(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(Middleware(rl))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "RATE_LIMITED", body["code"])
	require.Equal(t, "60", w.Header().Get("Retry-After"))
}
