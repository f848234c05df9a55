package validation

import (
	"strings"

	"job-tracker-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the job validators registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("job_status", ValidJobStatus)
	_ = v.RegisterValidation("job_type", ValidJobType)
	_ = v.RegisterValidation("meeting_type", ValidMeetingType)
}

// NotBlank rejects strings that are empty or only whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func ValidJobStatus(fl validator.FieldLevel) bool {
	return domain.JobStatus(fl.Field().String()).Valid()
}

func ValidJobType(fl validator.FieldLevel) bool {
	return domain.JobType(fl.Field().String()).Valid()
}

func ValidMeetingType(fl validator.FieldLevel) bool {
	return domain.MeetingType(fl.Field().String()).Valid()
}
