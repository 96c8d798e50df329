package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/features/items"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/imagestore"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
)

// SetupRoutes mounts every feature under /api.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api")

	store := newImageStore(cfg)

	auth.RegisterRoutes(api, db, cfg)
	itemsRepo := items.RegisterRoutes(api, db, store, cfg)
	users.RegisterRoutes(api, db, itemsRepo, cfg)
}

// newImageStore picks the Cloudinary store when credentials are
// configured and falls back to placeholder images otherwise, so the
// service still runs in development without an account.
func newImageStore(cfg *config.Config) imagestore.Store {
	if !cfg.CloudinaryEnabled() {
		logger.Warn("cloudinary not configured, image uploads return placeholders")
		return imagestore.NewDisabledStore()
	}

	store, err := imagestore.NewCloudinaryStore(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryFolder,
	)
	if err != nil {
		logger.Error("cloudinary init failed, image uploads return placeholders: %v", err)
		return imagestore.NewDisabledStore()
	}
	return store
}
