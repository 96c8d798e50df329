package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/features/items"
)

// RegisterRoutes mounts the user endpoints. Profiles are public; stats
// are scoped to the caller.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, itemsRepo *items.Repository, cfg *config.Config) {
	authRepo := auth.NewRepository(db)
	handler := NewHandler(authRepo, itemsRepo)
	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	userRoutes := router.Group("/users")
	{
		userRoutes.GET("/profile/:id", handler.GetProfile)
		userRoutes.GET("/stats", authMiddleware, handler.GetStats)
	}
}
