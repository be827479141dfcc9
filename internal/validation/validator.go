// Package validation holds the add-contact form's checks. They are cosmetic:
// the contact store accepts any draft it is given.
package validation

import (
	"strings"

	"rhystmorgan/triaContacts/internal/models"
)

const (
	maxNameLength = 100
	maxTags       = 10
)

// ValidateDraft checks the fields the form marks as required.
func ValidateDraft(draft models.ContactDraft) ValidationResult {
	result := ValidationResult{IsValid: true}

	addError := func(field string, code ValidationErrorCode, message string) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    field,
			Code:     code,
			Message:  message,
			Severity: ValidationSeverityError,
		})
		result.IsValid = false
	}

	name := strings.TrimSpace(draft.Name)
	email := strings.TrimSpace(draft.Email)

	if name == "" {
		addError("name", ErrorNameRequired, "Name is required")
	} else if len([]rune(name)) > maxNameLength {
		addError("name", ErrorNameTooLong, "Name too long (max 100 characters)")
	}

	if email == "" {
		addError("email", ErrorEmailRequired, "Email is required")
	} else if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		addError("email", ErrorInvalidEmail, "Email must look like name@example.com")
	}

	if strings.TrimSpace(draft.Phone) == "" {
		addError("phone", ErrorPhoneRequired, "Phone is required")
	}

	if tags := models.NormalizeTags(draft.Tags); len(tags) > maxTags {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:    "tags",
			Code:     ErrorTooManyTags,
			Message:  "That is a lot of tags; consider grouping them",
			Severity: ValidationSeverityWarning,
		})
	}

	return result
}
