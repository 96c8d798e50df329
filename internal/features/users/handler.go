package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/features/items"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// Handler serves public profiles and the caller's posting stats.
type Handler struct {
	authRepo  *auth.Repository
	itemsRepo *items.Repository
}

// NewHandler creates a new users handler
func NewHandler(authRepo *auth.Repository, itemsRepo *items.Repository) *Handler {
	return &Handler{authRepo: authRepo, itemsRepo: itemsRepo}
}

// Stats summarizes the caller's posting activity.
type Stats struct {
	TotalPosts    int64 `json:"totalPosts"`
	LostItems     int64 `json:"lostItems"`
	FoundItems    int64 `json:"foundItems"`
	ActivePosts   int64 `json:"activePosts"`
	ClaimedItems  int64 `json:"claimedItems"`
	ReturnedItems int64 `json:"returnedItems"`
}

// GetProfile returns another user's public profile
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/profile/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.authRepo.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(c, "User not found", "USER_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to fetch user")
		return
	}

	response.Success(c, user.ToPublicUser())
}

// GetStats returns the caller's posting counters
// @Summary Get own posting stats
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=Stats}
// @Router /users/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	ctx := c.Request.Context()
	var stats Stats
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.TotalPosts, bson.M{}},
		{&stats.LostItems, bson.M{"type": items.TypeLost}},
		{&stats.FoundItems, bson.M{"type": items.TypeFound}},
		{&stats.ActivePosts, bson.M{"status": items.StatusActive}},
		{&stats.ClaimedItems, bson.M{"status": items.StatusClaimed}},
		{&stats.ReturnedItems, bson.M{"status": items.StatusReturned}},
	}

	for _, count := range counts {
		n, err := h.itemsRepo.CountByOwner(ctx, user.ID, count.filter)
		if err != nil {
			response.DatabaseError(c, "Failed to compute stats")
			return
		}
		*count.dst = n
	}

	response.Success(c, stats)
}
