package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/pkg/ratelimit"
)

// RegisterRoutes registers the authentication routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)

	authMiddleware := NewAuthMiddleware(repo, cfg)
	credentialLimiter := ratelimit.New(20, time.Minute)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", ratelimit.Middleware(credentialLimiter), handler.Register)
		authGroup.POST("/login", ratelimit.Middleware(credentialLimiter), handler.Login)

		authGroup.GET("/google", handler.GoogleLogin)
		authGroup.GET("/google/callback", handler.GoogleCallback)

		authGroup.GET("/me", authMiddleware, handler.Me)
		authGroup.PUT("/profile", authMiddleware, handler.UpdateProfile)
	}
}
