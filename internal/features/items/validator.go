package items

import (
	"strings"
	"time"

	"github.com/xyz-asif/lostfound/internal/pkg/response"
	"github.com/xyz-asif/lostfound/internal/pkg/validator"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
)

func isValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func isValidType(t string) bool {
	return t == TypeLost || t == TypeFound
}

func isValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusClaimed, StatusReturned, StatusExpired:
		return true
	}
	return false
}

func isValidContactMethod(m string) bool {
	switch m {
	case ContactEmail, ContactPhone, ContactBoth:
		return true
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	return validator.ParseDate(s)
}

// ValidateCreate checks a create request field by field. It is a pure
// function; nothing is persisted until it returns an empty list.
func ValidateCreate(req CreateItemRequest) []response.FieldError {
	var errs []response.FieldError

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, response.FieldError{Field: "title", Message: "is required"})
	} else if len(req.Title) > maxTitleLen {
		errs = append(errs, response.FieldError{Field: "title", Message: "must be at most 100 characters"})
	}

	if strings.TrimSpace(req.Description) == "" {
		errs = append(errs, response.FieldError{Field: "description", Message: "is required"})
	} else if len(req.Description) > maxDescriptionLen {
		errs = append(errs, response.FieldError{Field: "description", Message: "must be at most 1000 characters"})
	}

	if !isValidCategory(req.Category) {
		errs = append(errs, response.FieldError{Field: "category", Message: "must be one of the allowed categories"})
	}

	if !isValidType(req.Type) {
		errs = append(errs, response.FieldError{Field: "type", Message: "must be either lost or found"})
	}

	if strings.TrimSpace(req.Location) == "" {
		errs = append(errs, response.FieldError{Field: "location", Message: "is required"})
	}

	if req.DateOccurred == "" {
		errs = append(errs, response.FieldError{Field: "dateOccurred", Message: "is required"})
	} else if !validator.IsValidDate(req.DateOccurred) {
		errs = append(errs, response.FieldError{Field: "dateOccurred", Message: "must be an ISO date"})
	}

	if req.ContactEmail != "" && !validator.IsValidEmail(req.ContactEmail) {
		errs = append(errs, response.FieldError{Field: "contactInfo.email", Message: "must be a valid email"})
	}
	if req.ContactPhone != "" && !validator.IsValidPhone(req.ContactPhone) {
		errs = append(errs, response.FieldError{Field: "contactInfo.phone", Message: "must be a valid phone number"})
	}
	if req.PreferredMethod != "" && !isValidContactMethod(req.PreferredMethod) {
		errs = append(errs, response.FieldError{Field: "contactInfo.preferredMethod", Message: "must be email, phone or both"})
	}

	if req.RewardAmount < 0 {
		errs = append(errs, response.FieldError{Field: "reward.amount", Message: "must not be negative"})
	}

	return errs
}

// ValidateUpdate checks only the fields present on a partial update.
func ValidateUpdate(req UpdateItemRequest) []response.FieldError {
	var errs []response.FieldError

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			errs = append(errs, response.FieldError{Field: "title", Message: "must not be empty"})
		} else if len(*req.Title) > maxTitleLen {
			errs = append(errs, response.FieldError{Field: "title", Message: "must be at most 100 characters"})
		}
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			errs = append(errs, response.FieldError{Field: "description", Message: "must not be empty"})
		} else if len(*req.Description) > maxDescriptionLen {
			errs = append(errs, response.FieldError{Field: "description", Message: "must be at most 1000 characters"})
		}
	}

	if req.Category != nil && !isValidCategory(*req.Category) {
		errs = append(errs, response.FieldError{Field: "category", Message: "must be one of the allowed categories"})
	}

	if req.Type != nil && !isValidType(*req.Type) {
		errs = append(errs, response.FieldError{Field: "type", Message: "must be either lost or found"})
	}

	// Any enum value is settable by the owner; transitions are not policed.
	if req.Status != nil && !isValidStatus(*req.Status) {
		errs = append(errs, response.FieldError{Field: "status", Message: "must be active, claimed, returned or expired"})
	}

	if req.Location != nil && strings.TrimSpace(*req.Location) == "" {
		errs = append(errs, response.FieldError{Field: "location", Message: "must not be empty"})
	}

	if req.DateOccurred != nil && !validator.IsValidDate(*req.DateOccurred) {
		errs = append(errs, response.FieldError{Field: "dateOccurred", Message: "must be an ISO date"})
	}

	if req.ContactEmail != nil && *req.ContactEmail != "" && !validator.IsValidEmail(*req.ContactEmail) {
		errs = append(errs, response.FieldError{Field: "contactInfo.email", Message: "must be a valid email"})
	}
	if req.ContactPhone != nil && *req.ContactPhone != "" && !validator.IsValidPhone(*req.ContactPhone) {
		errs = append(errs, response.FieldError{Field: "contactInfo.phone", Message: "must be a valid phone number"})
	}
	if req.PreferredMethod != nil && !isValidContactMethod(*req.PreferredMethod) {
		errs = append(errs, response.FieldError{Field: "contactInfo.preferredMethod", Message: "must be email, phone or both"})
	}

	if req.RewardAmount != nil && *req.RewardAmount < 0 {
		errs = append(errs, response.FieldError{Field: "reward.amount", Message: "must not be negative"})
	}

	return errs
}
