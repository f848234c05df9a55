package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Company":     "Company",
	"Position":    "Position",
	"Status":      "Status",
	"JobType":     "Job type",
	"JobLocation": "Job location",
	"MeetingType": "Meeting type",
}

// enumOptions lists the accepted values for the enum tags
var enumOptions = map[string]string{
	"job_status":   "pending, interview, declined",
	"job_type":     "full-time, part-time, remote, internship",
	"meeting_type": "Zoom, Skype, Office, Meet",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(getFieldLabel(e.Field()), e))
	}
	return messages
}

// FormatFieldErrors formats errors from validate.Var, which carry no field name
func FormatFieldErrors(field string, err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{fmt.Sprintf("%s: %v", getFieldLabel(field), err)}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(getFieldLabel(field), e))
	}
	return messages
}

func formatSingleError(label string, e validator.FieldError) string {
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required", "not_blank":
		return fmt.Sprintf("%s: must not be empty", label)

	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", label, param)

	case "min":
		return fmt.Sprintf("%s: must be at least %s characters", label, param)

	case "job_status", "job_type", "meeting_type":
		return fmt.Sprintf("%s: must be one of: %s", label, enumOptions[tag])

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: failed validation (%s)", label, tag)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
