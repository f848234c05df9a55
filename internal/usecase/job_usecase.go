package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/paging"
	"job-tracker-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Field rules shared by create and update, so an update is validated the
// same way as the job it modifies.
const (
	companyRules     = "required,not_blank,max=50"
	positionRules    = "required,not_blank,max=100"
	jobLocationRules = "required,not_blank"
	statusRules      = "job_status"
	jobTypeRules     = "job_type"
	meetingTypeRules = "meeting_type"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *jobUsecase) ListJobs(ctx context.Context, ownerID string, query domain.JobQuery) (*domain.JobList, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("Authentication invalid")
	}
	filter := BuildJobFilter(ownerID, query)
	page := paging.Normalize(query.Page, query.Limit)

	total, err := u.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	jobs := []domain.Job{}
	// A page past the end is an empty slice; counts stay correct.
	if page.InRange(total) {
		jobs, err = u.jobRepo.Fetch(ctx, filter, page.Limit, page.Skip())
		if err != nil {
			return nil, err
		}
		if jobs == nil {
			jobs = []domain.Job{}
		}
	}

	return &domain.JobList{
		Jobs:       jobs,
		NumOfPages: paging.NumPages(total, page.Limit),
		TotalJobs:  total,
	}, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, ownerID, jobID string) (*domain.Job, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("Authentication invalid")
	}
	job, err := u.jobRepo.GetByID(ctx, ownerID, jobID)
	if err != nil {
		return nil, notFoundOr(err, jobID)
	}
	return job, nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, ownerID string, input domain.JobInput) (*domain.Job, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("Authentication invalid")
	}
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.Validation("Please provide valid job fields", validation.FormatValidationErrors(err))
	}

	now := u.now()
	job := &domain.Job{
		ID:          uuid.NewString(),
		Company:     input.Company,
		Position:    input.Position,
		Status:      input.Status,
		JobType:     input.JobType,
		JobLocation: input.JobLocation,
		MeetingType: input.MeetingType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyDefaults(job)

	// The owner comes from the caller's identity, never from the body.
	if err := u.jobRepo.Create(ctx, ownerID, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, ownerID, jobID string, patch domain.JobPatch) (*domain.Job, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("Authentication invalid")
	}
	if details := u.validatePatch(patch); len(details) > 0 {
		return nil, apperror.Validation("Please provide valid job fields", details)
	}
	if patch.IsEmpty() {
		return u.GetJob(ctx, ownerID, jobID)
	}

	job, err := u.jobRepo.Update(ctx, ownerID, jobID, patch, u.now())
	if err != nil {
		return nil, notFoundOr(err, jobID)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, ownerID, jobID string) error {
	if ownerID == "" {
		return apperror.Unauthorized("Authentication invalid")
	}
	if err := u.jobRepo.Delete(ctx, ownerID, jobID); err != nil {
		return notFoundOr(err, jobID)
	}
	return nil
}

// ShowStats summarizes all of the owner's jobs, ignoring listing filters.
func (u *jobUsecase) ShowStats(ctx context.Context, ownerID string) (*domain.JobStats, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("Authentication invalid")
	}
	records, err := u.jobRepo.FetchStatRecords(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return FormatStats(StatusHistogram(records), MonthlyApplications(records)), nil
}

// validatePatch checks every supplied field with the creation rules.
func (u *jobUsecase) validatePatch(p domain.JobPatch) []string {
	var details []string
	check := func(field string, value interface{}, rules string) {
		if err := u.validate.Var(value, rules); err != nil {
			details = append(details, validation.FormatFieldErrors(field, err)...)
		}
	}

	if p.Company != nil {
		check("Company", *p.Company, companyRules)
	}
	if p.Position != nil {
		check("Position", *p.Position, positionRules)
	}
	if p.Status != nil {
		check("Status", string(*p.Status), statusRules)
	}
	if p.JobType != nil {
		check("JobType", string(*p.JobType), jobTypeRules)
	}
	if p.JobLocation != nil {
		check("JobLocation", *p.JobLocation, jobLocationRules)
	}
	if p.MeetingType != nil {
		check("MeetingType", string(*p.MeetingType), meetingTypeRules)
	}
	return details
}

func applyDefaults(job *domain.Job) {
	if job.Status == "" {
		job.Status = domain.StatusPending
	}
	if job.JobType == "" {
		job.JobType = domain.JobTypeFullTime
	}
	if job.JobLocation == "" {
		job.JobLocation = domain.DefaultJobLocation
	}
	if job.MeetingType == "" {
		job.MeetingType = domain.MeetingZoom
	}
}

func notFoundOr(err error, jobID string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(fmt.Sprintf("No job with id %s", jobID))
	}
	return err
}
