package items

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/lostfound/internal/features/auth"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

func testOwner() *auth.User {
	return &auth.User{
		ID:       primitive.NewObjectID(),
		Username: "finder42",
		Email:    "finder42@example.com",
		Avatar:   "https://example.com/a.png",
		Profile: auth.Profile{
			FirstName: "Sam",
			LastName:  "Ortiz",
		},
	}
}

func TestNewItemDefaults(t *testing.T) {
	owner := testOwner()
	before := time.Now()
	item := NewItem(validCreateRequest(), owner)
	after := time.Now()

	assert.Equal(t, StatusActive, item.Status)
	assert.Equal(t, 0, item.Views)
	assert.Equal(t, owner.ID, item.UserID)
	assert.NotNil(t, item.Images)
	assert.Empty(t, item.Images)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)

	assert.False(t, item.ExpiresAt.Before(before.Add(expiryWindow)))
	assert.False(t, item.ExpiresAt.After(after.Add(expiryWindow)))
}

func TestNewItemBackfillsContactEmail(t *testing.T) {
	owner := testOwner()

	item := NewItem(validCreateRequest(), owner)
	assert.Equal(t, owner.Email, item.ContactInfo.Email)
	assert.Equal(t, ContactEmail, item.ContactInfo.PreferredMethod)

	req := validCreateRequest()
	req.ContactEmail = "other@example.com"
	req.PreferredMethod = ContactPhone
	item = NewItem(req, owner)
	assert.Equal(t, "other@example.com", item.ContactInfo.Email)
	assert.Equal(t, ContactPhone, item.ContactInfo.PreferredMethod)
}

func TestNewItemParsesDateOccurred(t *testing.T) {
	req := validCreateRequest()
	req.DateOccurred = "2026-08-20"

	item := NewItem(req, testOwner())
	assert.Equal(t, 2026, item.DateOccurred.Year())
	assert.Equal(t, time.August, item.DateOccurred.Month())
	assert.Equal(t, 20, item.DateOccurred.Day())
}

func TestIsOwnedBy(t *testing.T) {
	owner := testOwner()
	item := NewItem(validCreateRequest(), owner)

	assert.True(t, item.IsOwnedBy(owner.ID))
	assert.False(t, item.IsOwnedBy(primitive.NewObjectID()))
}

func TestAuthorizeOwner(t *testing.T) {
	owner := testOwner()
	item := NewItem(validCreateRequest(), owner)

	assert.NoError(t, item.AuthorizeOwner(owner.ID))
	assert.ErrorIs(t, item.AuthorizeOwner(primitive.NewObjectID()), errs.ErrForbidden)
}

func TestAuthorFromUserHidesCredentials(t *testing.T) {
	owner := testOwner()

	listing := AuthorFromUser(*owner)
	assert.Equal(t, owner.Username, listing.Username)
	assert.Equal(t, owner.Avatar, listing.Avatar)
	assert.Empty(t, listing.FirstName)

	detail := DetailAuthorFromUser(*owner)
	assert.Equal(t, "Sam", detail.FirstName)
	assert.Equal(t, "Ortiz", detail.LastName)
}

func TestBuildUpdatesSkipsAbsentFields(t *testing.T) {
	assert.Empty(t, buildUpdates(UpdateItemRequest{}))

	title := "Found black umbrella"
	status := StatusClaimed
	updates := buildUpdates(UpdateItemRequest{Title: &title, Status: &status})

	assert.Len(t, updates, 2)
	assert.Equal(t, title, updates["title"])
	assert.Equal(t, StatusClaimed, updates["status"])
}

func TestBuildUpdatesUsesDottedPathsForNestedFields(t *testing.T) {
	phone := "+15559876543"
	offered := true
	updates := buildUpdates(UpdateItemRequest{ContactPhone: &phone, RewardOffered: &offered})

	assert.Equal(t, phone, updates["contactInfo.phone"])
	assert.Equal(t, true, updates["reward.offered"])
}
