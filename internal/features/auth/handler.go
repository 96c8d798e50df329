package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/pkg/response"
	"github.com/xyz-asif/lostfound/internal/pkg/token"
	"github.com/xyz-asif/lostfound/internal/pkg/validator"
	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// Handler handles HTTP requests for authentication and profile management
type Handler struct {
	repo   *Repository
	config *config.Config
}

// NewHandler creates a new auth handler
func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, config: cfg}
}

func (h *Handler) issueToken(user *User) (string, error) {
	expiry := time.Duration(h.config.JWTExpireHours) * time.Hour
	return token.Generate(user.ID.Hex(), user.Email, h.config.JWTSecret, expiry)
}

// Register creates a local-credential account
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if !validator.IsValidUsername(req.Username) {
		response.BadRequest(c, "Username may only contain letters, digits, _ and -", "INVALID_USERNAME")
		return
	}

	ctx := c.Request.Context()

	// Friendlier message than the raw duplicate-key failure
	if existing, err := h.repo.GetUserByEmail(ctx, req.Email); err != nil {
		response.DatabaseError(c, "Failed to check existing users")
		return
	} else if existing != nil {
		response.Conflict(c, "Email already registered", "EMAIL_TAKEN")
		return
	}
	if existing, err := h.repo.GetUserByUsername(ctx, req.Username); err != nil {
		response.DatabaseError(c, "Failed to check existing users")
		return
	} else if existing != nil {
		response.Conflict(c, "Username already taken", "USERNAME_TAKEN")
		return
	}

	user := &User{
		Username: req.Username,
		Email:    req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		response.InternalServerError(c, "Failed to create account", "INTERNAL_ERROR")
		return
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errs.Is(err, errs.ErrDuplicate) {
			// lost the race with a concurrent registration
			response.Conflict(c, "Username or email already taken", "DUPLICATE_USER")
			return
		}
		response.DatabaseError(c, "Failed to create account")
		return
	}

	signed, err := h.issueToken(user)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Created(c, AuthResponse{Token: signed, User: user.ToPublicUser()})
}

// Login authenticates with email and password
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Login failed")
		return
	}

	// Same message for unknown email and wrong password
	if user == nil || !user.ComparePassword(req.Password) {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	signed, err := h.issueToken(user)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Success(c, AuthResponse{Token: signed, User: user.ToPublicUser()})
}

// Me returns the authenticated user's account
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}
	response.Success(c, user.ToPublicUser())
}

// UpdateProfile updates username and profile fields of the caller
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} response.SuccessResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	ctx := c.Request.Context()
	updates := bson.M{}

	if req.Username != nil && *req.Username != user.Username {
		if !validator.IsValidUsername(*req.Username) {
			response.BadRequest(c, "Username may only contain letters, digits, _ and -", "INVALID_USERNAME")
			return
		}
		taken, err := h.repo.UsernameTaken(ctx, *req.Username, user.ID)
		if err != nil {
			response.DatabaseError(c, "Failed to check username")
			return
		}
		if taken {
			response.Conflict(c, "Username already taken", "USERNAME_TAKEN")
			return
		}
		updates["username"] = *req.Username
	}

	if req.Profile != nil {
		p := req.Profile
		if p.FirstName != nil {
			updates["profile.firstName"] = *p.FirstName
		}
		if p.LastName != nil {
			updates["profile.lastName"] = *p.LastName
		}
		if p.Phone != nil {
			if *p.Phone != "" && !validator.IsValidPhone(*p.Phone) {
				response.BadRequest(c, "Invalid phone number", "INVALID_PHONE")
				return
			}
			updates["profile.phone"] = *p.Phone
		}
		if p.Address != nil {
			updates["profile.address"] = *p.Address
		}
		if p.College != nil {
			updates["profile.college"] = *p.College
		}
		if p.Department != nil {
			updates["profile.department"] = *p.Department
		}
	}

	if len(updates) == 0 {
		response.Success(c, user.ToPublicUser())
		return
	}

	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		if errs.Is(err, errs.ErrDuplicate) {
			response.Conflict(c, "Username already taken", "USERNAME_TAKEN")
			return
		}
		response.DatabaseError(c, "Failed to update profile")
		return
	}

	updated, err := h.repo.GetUserByID(ctx, user.ID.Hex())
	if err != nil {
		response.DatabaseError(c, "Failed to fetch updated profile")
		return
	}

	response.Success(c, updated.ToPublicUser())
}
