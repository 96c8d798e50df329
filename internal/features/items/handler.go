package items

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/auth"
	"github.com/xyz-asif/lostfound/internal/pkg/imagestore"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/pagination"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// Handler handles HTTP requests for lost/found reports
type Handler struct {
	repo     *Repository
	authRepo *auth.Repository
	images   imagestore.Store
	config   *config.Config
}

// NewHandler creates a new items handler
func NewHandler(repo *Repository, authRepo *auth.Repository, images imagestore.Store, cfg *config.Config) *Handler {
	return &Handler{
		repo:     repo,
		authRepo: authRepo,
		images:   images,
		config:   cfg,
	}
}

// ListResponse is the paginated listing envelope.
type ListResponse struct {
	Items      []Item           `json:"items"`
	Pagination pagination.Pages `json:"pagination"`
}

// ListItems returns the public listing with filters, search and paging
// @Summary List active reports
// @Tags items
// @Produce json
// @Param type query string false "lost or found"
// @Param category query string false "Category filter"
// @Param location query string false "Location substring filter"
// @Param search query string false "Free-text search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} response.SuccessResponse{data=ListResponse}
// @Router /items [get]
func (h *Handler) ListItems(c *gin.Context) {
	q := ParseListQuery(c)
	ctx := c.Request.Context()

	items, total, err := h.repo.Find(ctx, q)
	if err != nil {
		response.DatabaseError(c, "Failed to fetch items")
		return
	}

	if err := h.attachAuthors(ctx, items, false); err != nil {
		response.DatabaseError(c, "Failed to fetch items")
		return
	}

	response.Success(c, ListResponse{
		Items:      items,
		Pagination: q.Page.Envelope(total),
	})
}

// GetItem returns one report and counts the view
// @Summary Get a single report
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.SuccessResponse{data=Item}
// @Failure 404 {object} response.ErrorResponse
// @Router /items/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	id, err := ParseID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Item not found", "ITEM_NOT_FOUND")
		return
	}

	ctx := c.Request.Context()

	// The view bump is part of the read, applied atomically at the store.
	item, err := h.repo.IncrementViews(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(c, "Item not found", "ITEM_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to fetch item")
		return
	}

	items := []Item{*item}
	if err := h.attachAuthors(ctx, items, true); err != nil {
		response.DatabaseError(c, "Failed to fetch item")
		return
	}

	response.Success(c, items[0])
}

// CreateItem posts a new report
// @Summary Create a report
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param images formData file false "Up to 5 images"
// @Success 201 {object} response.SuccessResponse{data=Item}
// @Failure 422 {object} response.ErrorResponse
// @Router /items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_FORM")
		return
	}

	if fieldErrs := ValidateCreate(req); len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	ctx := c.Request.Context()
	item := NewItem(req, user)
	item.Images = h.uploadImages(c)

	if err := h.repo.Create(ctx, item); err != nil {
		response.DatabaseError(c, "Failed to create item")
		return
	}

	item.Author = AuthorFromUser(*user)
	response.Created(c, item)
}

// UpdateItem edits an owned report
// @Summary Update a report
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.SuccessResponse{data=Item}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /items/{id} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := ParseID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Item not found", "ITEM_NOT_FOUND")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_FORM")
		return
	}

	if fieldErrs := ValidateUpdate(req); len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	ctx := c.Request.Context()
	item, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(c, "Item not found", "ITEM_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to fetch item")
		return
	}

	if err := item.AuthorizeOwner(user.ID); errs.Is(err, errs.ErrForbidden) {
		response.Forbidden(c, "Not authorized to update this item", "FORBIDDEN")
		return
	}

	updates := buildUpdates(req)

	// New uploads append to the existing image list, never replace it.
	if newImages := h.uploadImages(c); len(newImages) > 0 {
		updates["images"] = append(item.Images, newImages...)
	}

	if len(updates) > 0 {
		if err := h.repo.Update(ctx, id, updates); err != nil {
			response.DatabaseError(c, "Failed to update item")
			return
		}
	}

	updated, err := h.repo.GetByID(ctx, id)
	if err != nil {
		response.DatabaseError(c, "Failed to fetch updated item")
		return
	}

	updated.Author = AuthorFromUser(*user)
	response.Success(c, updated)
}

// DeleteItem removes an owned report and cleans up its images
// @Summary Delete a report
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /items/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := ParseID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Item not found", "ITEM_NOT_FOUND")
		return
	}

	ctx := c.Request.Context()
	item, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(c, "Item not found", "ITEM_NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to fetch item")
		return
	}

	if err := item.AuthorizeOwner(user.ID); errs.Is(err, errs.ErrForbidden) {
		response.Forbidden(c, "Not authorized to delete this item", "FORBIDDEN")
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		response.DatabaseError(c, "Failed to delete item")
		return
	}

	// Image cleanup is best-effort and must not block or undo the delete.
	go h.cleanupImages(item.Images)

	response.Success(c, gin.H{"message": "Item deleted successfully"})
}

// MyItems lists the caller's own reports, any status
// @Summary List own reports
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param type query string false "lost or found"
// @Param status query string false "Status filter"
// @Success 200 {object} response.SuccessResponse{data=ListResponse}
// @Router /items/user/me [get]
func (h *Handler) MyItems(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	q := ParseMyItemsQuery(c)
	items, total, err := h.repo.FindByOwner(c.Request.Context(), q, user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to fetch items")
		return
	}

	response.Success(c, ListResponse{
		Items:      items,
		Pagination: q.Page.Envelope(total),
	})
}

// GetMeta returns the vocabularies the posting form is built from
// @Summary Get report form metadata
// @Tags items
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /items/meta [get]
func (h *Handler) GetMeta(c *gin.Context) {
	response.Success(c, gin.H{
		"categories":         Categories,
		"types":              []string{TypeLost, TypeFound},
		"statuses":           []string{StatusActive, StatusClaimed, StatusReturned, StatusExpired},
		"suggestedLocations": SuggestedLocations,
	})
}

// uploadImages pushes each uploaded file to the image store. A failed
// upload is logged and dropped; the request continues with whatever
// succeeded.
func (h *Handler) uploadImages(c *gin.Context) []ImageRef {
	images := []ImageRef{}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return images
	}

	files := form.File["images"]
	if len(files) > imagestore.MaxImageCount {
		files = files[:imagestore.MaxImageCount]
	}

	for _, header := range files {
		ref, err := h.uploadOne(c, header)
		if err != nil {
			logger.Warn("image upload failed for %q: %v", header.Filename, err)
			continue
		}
		images = append(images, *ref)
	}

	return images
}

func (h *Handler) uploadOne(c *gin.Context, header *multipart.FileHeader) (*ImageRef, error) {
	if header.Size > imagestore.MaxImageSize {
		return nil, errs.ErrValidation
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return nil, errs.ErrValidation
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result, err := h.images.Upload(c.Request.Context(), file, header.Filename)
	if err != nil {
		return nil, err
	}

	return &ImageRef{URL: result.URL, PublicID: result.PublicID}, nil
}

// cleanupImages deletes stored images one by one, logging failures and
// carrying on. Runs detached from the request.
func (h *Handler) cleanupImages(images []ImageRef) {
	ctx := context.Background()
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := h.images.Delete(ctx, img.PublicID); err != nil {
			logger.Warn("failed to delete image %s: %v", img.PublicID, err)
		}
	}
}

// attachAuthors joins the owner's public subset onto each item.
func (h *Handler) attachAuthors(ctx context.Context, items []Item, detail bool) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool, len(items))
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		if !seen[item.UserID] {
			seen[item.UserID] = true
			ids = append(ids, item.UserID)
		}
	}

	users, err := h.authRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		user, ok := users[items[i].UserID]
		if !ok {
			continue // owner account gone; leave author empty
		}
		if detail {
			items[i].Author = DetailAuthorFromUser(user)
		} else {
			items[i].Author = AuthorFromUser(user)
		}
	}

	return nil
}

// buildUpdates turns the non-nil request fields into a $set document.
func buildUpdates(req UpdateItemRequest) bson.M {
	updates := bson.M{}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.SpecificLocation != nil {
		updates["specificLocation"] = *req.SpecificLocation
	}
	if req.DateOccurred != nil {
		if d, err := parseDate(*req.DateOccurred); err == nil {
			updates["dateOccurred"] = d
		}
	}
	if req.ContactPhone != nil {
		updates["contactInfo.phone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		updates["contactInfo.email"] = *req.ContactEmail
	}
	if req.PreferredMethod != nil {
		updates["contactInfo.preferredMethod"] = *req.PreferredMethod
	}
	if req.RewardOffered != nil {
		updates["reward.offered"] = *req.RewardOffered
	}
	if req.RewardAmount != nil {
		updates["reward.amount"] = *req.RewardAmount
	}
	if req.RewardDescription != nil {
		updates["reward.description"] = *req.RewardDescription
	}
	if len(req.Tags) > 0 {
		updates["tags"] = req.Tags
	}

	return updates
}
