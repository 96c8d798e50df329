package items

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/pkg/imagestore"
)

// RegisterRoutes mounts the item endpoints. Reads are public; anything
// that writes, and the caller's own listing, require a valid token.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, store imagestore.Store, cfg *config.Config) *Repository {
	repo := NewRepository(db)
	authRepo := auth.NewRepository(db)
	handler := NewHandler(repo, authRepo, store, cfg)
	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	itemRoutes := router.Group("/items")
	{
		itemRoutes.GET("", handler.ListItems)
		itemRoutes.GET("/meta", handler.GetMeta)
		itemRoutes.GET("/user/me", authMiddleware, handler.MyItems)
		itemRoutes.GET("/:id", handler.GetItem)

		itemRoutes.POST("", authMiddleware, handler.CreateItem)
		itemRoutes.PUT("/:id", authMiddleware, handler.UpdateItem)
		itemRoutes.DELETE("/:id", authMiddleware, handler.DeleteItem)
	}

	return repo
}
