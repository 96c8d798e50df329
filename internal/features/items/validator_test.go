package items

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xyz-asif/lostfound/internal/pkg/response"
)

func validCreateRequest() CreateItemRequest {
	return CreateItemRequest{
		Title:        "Lost blue backpack",
		Description:  "Left near the main library entrance",
		Category:     "Bags",
		Type:         TypeLost,
		Location:     "Main Library",
		DateOccurred: "2026-08-20",
	}
}

func fieldNames(errs []response.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateCreateAcceptsMinimalRequest(t *testing.T) {
	assert.Empty(t, ValidateCreate(validCreateRequest()))
}

func TestValidateCreateAcceptsOptionalContactAndReward(t *testing.T) {
	req := validCreateRequest()
	req.ContactEmail = "finder@example.com"
	req.ContactPhone = "+15551234567"
	req.PreferredMethod = ContactBoth
	req.RewardOffered = true
	req.RewardAmount = 25

	assert.Empty(t, ValidateCreate(req))
}

func TestValidateCreateRequiredFields(t *testing.T) {
	errs := ValidateCreate(CreateItemRequest{})

	names := fieldNames(errs)
	assert.Contains(t, names, "title")
	assert.Contains(t, names, "description")
	assert.Contains(t, names, "category")
	assert.Contains(t, names, "type")
	assert.Contains(t, names, "location")
	assert.Contains(t, names, "dateOccurred")
}

func TestValidateCreateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateItemRequest)
		field  string
	}{
		{"overlong title", func(r *CreateItemRequest) { r.Title = strings.Repeat("a", 101) }, "title"},
		{"overlong description", func(r *CreateItemRequest) { r.Description = strings.Repeat("a", 1001) }, "description"},
		{"whitespace title", func(r *CreateItemRequest) { r.Title = "   " }, "title"},
		{"unknown category", func(r *CreateItemRequest) { r.Category = "Spaceships" }, "category"},
		{"unknown type", func(r *CreateItemRequest) { r.Type = "misplaced" }, "type"},
		{"bad date", func(r *CreateItemRequest) { r.DateOccurred = "yesterday" }, "dateOccurred"},
		{"bad email", func(r *CreateItemRequest) { r.ContactEmail = "not-an-email" }, "contactInfo.email"},
		{"bad phone", func(r *CreateItemRequest) { r.ContactPhone = "abc" }, "contactInfo.phone"},
		{"bad method", func(r *CreateItemRequest) { r.PreferredMethod = "carrier-pigeon" }, "contactInfo.preferredMethod"},
		{"negative reward", func(r *CreateItemRequest) { r.RewardAmount = -5 }, "reward.amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			assert.Contains(t, fieldNames(ValidateCreate(req)), tt.field)
		})
	}
}

func TestValidateCreateAcceptsEveryCategory(t *testing.T) {
	for _, category := range Categories {
		req := validCreateRequest()
		req.Category = category
		assert.Empty(t, ValidateCreate(req), "category %q should be accepted", category)
	}
}

func TestValidateUpdateEmptyRequestIsValid(t *testing.T) {
	assert.Empty(t, ValidateUpdate(UpdateItemRequest{}))
}

func TestValidateUpdateChecksOnlyPresentFields(t *testing.T) {
	badType := "misplaced"
	errs := ValidateUpdate(UpdateItemRequest{Type: &badType})

	assert.Equal(t, []string{"type"}, fieldNames(errs))
}

func TestValidateUpdateAcceptsEveryStatus(t *testing.T) {
	for _, status := range []string{StatusActive, StatusClaimed, StatusReturned, StatusExpired} {
		s := status
		assert.Empty(t, ValidateUpdate(UpdateItemRequest{Status: &s}), "status %q should be settable", status)
	}
}

func TestValidateUpdateRejectsUnknownStatus(t *testing.T) {
	s := "vanished"
	assert.Contains(t, fieldNames(ValidateUpdate(UpdateItemRequest{Status: &s})), "status")
}

func TestValidateUpdateRejectsBlankTitle(t *testing.T) {
	blank := "  "
	assert.Contains(t, fieldNames(ValidateUpdate(UpdateItemRequest{Title: &blank})), "title")
}
