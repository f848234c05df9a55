package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SeedRecord is one mock job. CreatedAt is kept so the monthly chart has
// history; a zero value means now.
type SeedRecord struct {
	domain.JobInput
	CreatedAt time.Time `json:"createdAt"`
}

type Seeder struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewSeeder(jobRepo domain.JobRepository, validate *validator.Validate) *Seeder {
	return &Seeder{
		jobRepo:  jobRepo,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Seed replaces every job of ownerID with records. All records are
// validated before the store is touched, and the store swaps the whole set
// in one transaction, so a failure leaves the previous jobs in place.
func (s *Seeder) Seed(ctx context.Context, ownerID string, records []SeedRecord) (deleted, inserted int64, err error) {
	if ownerID == "" {
		return 0, 0, domain.ErrMissingOwner
	}

	jobs := make([]*domain.Job, 0, len(records))
	for i, rec := range records {
		if err := s.validate.Struct(rec.JobInput); err != nil {
			details := validation.FormatValidationErrors(err)
			return 0, 0, apperror.Validation(
				fmt.Sprintf("record %d: %s", i, strings.Join(details, "; ")), details)
		}

		created := rec.CreatedAt.UTC()
		if rec.CreatedAt.IsZero() {
			created = s.now()
		}
		job := &domain.Job{
			ID:          uuid.NewString(),
			Company:     rec.Company,
			Position:    rec.Position,
			Status:      rec.Status,
			JobType:     rec.JobType,
			JobLocation: rec.JobLocation,
			MeetingType: rec.MeetingType,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		applyDefaults(job)
		jobs = append(jobs, job)
	}

	deleted, err = s.jobRepo.ReplaceAllByOwner(ctx, ownerID, jobs)
	if err != nil {
		return 0, 0, err
	}
	return deleted, int64(len(jobs)), nil
}
