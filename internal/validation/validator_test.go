package validation

import (
	"testing"

	"rhystmorgan/triaContacts/internal/models"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name        string
		draft       models.ContactDraft
		valid       bool
		errorFields []string
	}{
		{
			name:  "complete",
			draft: models.ContactDraft{Name: "Zed", Email: "z@x.com", Phone: "000"},
			valid: true,
		},
		{
			name:        "blank fields",
			draft:       models.ContactDraft{Name: "  ", Email: "", Phone: " "},
			errorFields: []string{"name", "email", "phone"},
		},
		{
			name:        "email without at",
			draft:       models.ContactDraft{Name: "Zed", Email: "zed.example.com", Phone: "000"},
			errorFields: []string{"email"},
		},
		{
			name:        "email ending in at",
			draft:       models.ContactDraft{Name: "Zed", Email: "zed@", Phone: "000"},
			errorFields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDraft(tt.draft)

			if result.IsValid != tt.valid {
				t.Errorf("Expected IsValid %v, got %v (%+v)", tt.valid, result.IsValid, result.Errors)
			}

			if len(result.Errors) != len(tt.errorFields) {
				t.Fatalf("Expected %d errors, got %d: %+v", len(tt.errorFields), len(result.Errors), result.Errors)
			}

			for _, field := range tt.errorFields {
				if result.FieldError(field) == "" {
					t.Errorf("Expected an error for field %s", field)
				}
			}
		})
	}
}

func TestValidateDraftTooManyTagsIsOnlyAWarning(t *testing.T) {
	draft := models.ContactDraft{
		Name:  "Zed",
		Email: "z@x.com",
		Phone: "000",
		Tags:  []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
	}

	result := ValidateDraft(draft)

	if !result.IsValid {
		t.Errorf("Too many tags should not invalidate the draft: %+v", result.Errors)
	}

	if len(result.Warnings) != 1 || result.Warnings[0].Code != ErrorTooManyTags {
		t.Errorf("Expected a single too-many-tags warning, got %+v", result.Warnings)
	}
}
