package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. Password is empty for accounts
// created through Google sign-in.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password,omitempty" json:"-"`
	GoogleID   string             `bson:"googleId,omitempty" json:"-"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	IsVerified bool               `bson:"isVerified" json:"isVerified"`
	Profile    Profile            `bson:"profile" json:"profile"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Profile holds the optional contact details shown on a user's page.
type Profile struct {
	FirstName  string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName   string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
	College    string `bson:"college,omitempty" json:"college,omitempty"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
}

// RegisterRequest is the payload for local account registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for profile updates; nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Username *string        `json:"username" binding:"omitempty,min=3,max=30"`
	Profile  *ProfilePatch  `json:"profile"`
}

// ProfilePatch mirrors Profile with pointer fields for partial updates.
type ProfilePatch struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	College    *string `json:"college"`
	Department *string `json:"department"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Token string                 `json:"token"`
	User  map[string]interface{} `json:"user"`
}

// SetPassword hashes and stores the plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// ComparePassword checks a plaintext password against the stored hash.
// Always false for OAuth-only accounts, which have no hash.
func (u *User) ComparePassword(plain string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// CanLogin reports whether the account has a usable credential.
func (u *User) CanLogin() bool {
	return u.Password != "" || u.GoogleID != ""
}

// ToPublicUser returns the fields safe to hand to clients.
func (u *User) ToPublicUser() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"avatar":     u.Avatar,
		"isVerified": u.IsVerified,
		"profile":    u.Profile,
		"createdAt":  u.CreatedAt,
	}
}
