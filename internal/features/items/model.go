package items

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/lostfound/internal/features/auth"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// Item type constants
const (
	TypeLost  = "lost"
	TypeFound = "found"
)

// Status constants
const (
	StatusActive   = "active"
	StatusClaimed  = "claimed"
	StatusReturned = "returned"
	StatusExpired  = "expired"
)

// Contact method constants
const (
	ContactEmail = "email"
	ContactPhone = "phone"
	ContactBoth  = "both"
)

// Categories is the fixed set a report must fall into.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Accessories",
	"Sports Equipment",
	"Keys",
	"Documents",
	"Jewelry",
	"Bags",
	"Other",
}

// SuggestedLocations feeds the client's location picker. Free text is
// still accepted; this list is advisory, not enforced.
var SuggestedLocations = []string{
	"Library",
	"Cafeteria",
	"Main Building",
	"Sports Complex",
	"Auditorium",
	"Parking Lot",
	"Hostel",
	"Other",
}

// Items expire 90 days after posting. The field is advisory; nothing
// deletes expired records automatically.
const expiryWindow = 90 * 24 * time.Hour

// ImageRef points at one stored image.
type ImageRef struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
}

// ContactInfo tells finders how to reach the reporter.
type ContactInfo struct {
	Phone           string `bson:"phone" json:"phone"`
	Email           string `bson:"email" json:"email"`
	PreferredMethod string `bson:"preferredMethod" json:"preferredMethod"`
}

// Reward is the optional bounty on a lost item.
type Reward struct {
	Offered     bool    `bson:"offered" json:"offered"`
	Amount      float64 `bson:"amount" json:"amount"`
	Description string  `bson:"description" json:"description"`
}

// Item is a single lost-or-found report.
type Item struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	Category         string             `bson:"category" json:"category"`
	Type             string             `bson:"type" json:"type"`
	Status           string             `bson:"status" json:"status"`
	Location         string             `bson:"location" json:"location"`
	SpecificLocation string             `bson:"specificLocation,omitempty" json:"specificLocation,omitempty"`
	DateOccurred     time.Time          `bson:"dateOccurred" json:"dateOccurred"`
	Images           []ImageRef         `bson:"images" json:"images"`
	ContactInfo      ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	Reward           Reward             `bson:"reward" json:"reward"`
	Tags             []string           `bson:"tags" json:"tags"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Views            int                `bson:"views" json:"views"`
	LastViewed       time.Time          `bson:"lastViewed" json:"lastViewed"`
	ExpiresAt        time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Author is joined at read time; never persisted.
	Author *Author `bson:"-" json:"author,omitempty"`

	// Score carries text-search relevance on search queries.
	Score float64 `bson:"score,omitempty" json:"-"`
}

// Author is the owner subset exposed on listings and detail pages.
// Credentials never travel through this struct.
type Author struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	Avatar    string             `json:"avatar"`
	FirstName string             `json:"firstName,omitempty"`
	LastName  string             `json:"lastName,omitempty"`
}

// AuthorFromUser builds the listing subset: username and avatar only.
func AuthorFromUser(u auth.User) *Author {
	return &Author{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

// DetailAuthorFromUser adds the name fields shown on the detail page.
func DetailAuthorFromUser(u auth.User) *Author {
	a := AuthorFromUser(u)
	a.FirstName = u.Profile.FirstName
	a.LastName = u.Profile.LastName
	return a
}

// CreateItemRequest is the multipart payload for posting a report. Files
// arrive separately under the "images" field.
type CreateItemRequest struct {
	Title             string   `form:"title"`
	Description       string   `form:"description"`
	Category          string   `form:"category"`
	Type              string   `form:"type"`
	Location          string   `form:"location"`
	SpecificLocation  string   `form:"specificLocation"`
	DateOccurred      string   `form:"dateOccurred"`
	ContactPhone      string   `form:"contactInfo.phone"`
	ContactEmail      string   `form:"contactInfo.email"`
	PreferredMethod   string   `form:"contactInfo.preferredMethod"`
	RewardOffered     bool     `form:"reward.offered"`
	RewardAmount      float64  `form:"reward.amount"`
	RewardDescription string   `form:"reward.description"`
	Tags              []string `form:"tags"`
}

// UpdateItemRequest carries partial updates; nil means "leave unchanged".
type UpdateItemRequest struct {
	Title             *string  `form:"title"`
	Description       *string  `form:"description"`
	Category          *string  `form:"category"`
	Type              *string  `form:"type"`
	Status            *string  `form:"status"`
	Location          *string  `form:"location"`
	SpecificLocation  *string  `form:"specificLocation"`
	DateOccurred      *string  `form:"dateOccurred"`
	ContactPhone      *string  `form:"contactInfo.phone"`
	ContactEmail      *string  `form:"contactInfo.email"`
	PreferredMethod   *string  `form:"contactInfo.preferredMethod"`
	RewardOffered     *bool    `form:"reward.offered"`
	RewardAmount      *float64 `form:"reward.amount"`
	RewardDescription *string  `form:"reward.description"`
	Tags              []string `form:"tags"`
}

// NewItem builds a persistable Item from a validated create request. The
// owner's account email backfills contactInfo.email when none is supplied.
func NewItem(req CreateItemRequest, owner *auth.User) *Item {
	now := time.Now()

	dateOccurred, _ := parseDate(req.DateOccurred) // validated upstream

	contactEmail := req.ContactEmail
	if contactEmail == "" {
		contactEmail = owner.Email
	}
	preferred := req.PreferredMethod
	if preferred == "" {
		preferred = ContactEmail
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Item{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Type:             req.Type,
		Status:           StatusActive,
		Location:         req.Location,
		SpecificLocation: req.SpecificLocation,
		DateOccurred:     dateOccurred,
		Images:           []ImageRef{},
		ContactInfo: ContactInfo{
			Phone:           req.ContactPhone,
			Email:           contactEmail,
			PreferredMethod: preferred,
		},
		Reward: Reward{
			Offered:     req.RewardOffered,
			Amount:      req.RewardAmount,
			Description: req.RewardDescription,
		},
		Tags:       tags,
		UserID:     owner.ID,
		Views:      0,
		LastViewed: now,
		ExpiresAt:  now.Add(expiryWindow),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOwnedBy checks report ownership; only owners may mutate or delete.
func (i *Item) IsOwnedBy(userID primitive.ObjectID) bool {
	return i.UserID == userID
}

// AuthorizeOwner returns ErrForbidden when userID does not own the report.
func (i *Item) AuthorizeOwner(userID primitive.ObjectID) error {
	if !i.IsOwnedBy(userID) {
		return errs.ErrForbidden
	}
	return nil
}
