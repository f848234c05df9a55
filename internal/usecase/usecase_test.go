package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, ownerID string, job *domain.Job) error {
	return m.Called(ctx, ownerID, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Job, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Count(ctx context.Context, filter domain.JobFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, ownerID, id string, patch domain.JobPatch, updatedAt time.Time) (*domain.Job, error) {
	args := m.Called(ctx, ownerID, id, patch, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockJobRepo) FetchStatRecords(ctx context.Context, ownerID string) ([]domain.JobStatRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobStatRecord), args.Error(1)
}

func (m *MockJobRepo) ReplaceAllByOwner(ctx context.Context, ownerID string, jobs []*domain.Job) (int64, error) {
	args := m.Called(ctx, ownerID, jobs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func strp(s string) *string { return &s }

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestListJobsPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("Should normalize page and limit and compute numOfPages", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		filter := usecase.BuildJobFilter("u1", domain.JobQuery{})
		repo.On("Count", ctx, filter).Return(int64(9), nil)
		repo.On("Fetch", ctx, filter, 4, 0).Return([]domain.Job{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}, nil)

		list, err := uc.ListJobs(ctx, "u1", domain.JobQuery{Page: -5, Limit: 0})
		require.NoError(t, err)
		assert.Len(t, list.Jobs, 4)
		assert.Equal(t, 3, list.NumOfPages)
		assert.Equal(t, int64(9), list.TotalJobs)
		repo.AssertExpectations(t)
	})

	t.Run("Should return an empty page past the end with correct totals", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		filter := usecase.BuildJobFilter("u1", domain.JobQuery{})
		repo.On("Count", ctx, filter).Return(int64(5), nil)

		list, err := uc.ListJobs(ctx, "u1", domain.JobQuery{Page: 10, Limit: 4})
		require.NoError(t, err)
		assert.NotNil(t, list.Jobs)
		assert.Empty(t, list.Jobs)
		assert.Equal(t, 2, list.NumOfPages)
		assert.Equal(t, int64(5), list.TotalJobs)
		repo.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should pass the owner-scoped filter to the store", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		repo.On("Count", ctx, mock.MatchedBy(func(f domain.JobFilter) bool {
			return f.OwnerID() == "u1" && f.Status == domain.StatusDeclined && f.JobType == ""
		})).Return(int64(0), nil)

		list, err := uc.ListJobs(ctx, "u1", domain.JobQuery{Status: "declined", JobType: "all"})
		require.NoError(t, err)
		assert.Equal(t, 0, list.NumOfPages)
		repo.AssertExpectations(t)
	})
}

func TestGetJob(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, validation.New())

	repo.On("GetByID", ctx, "u2", "job-1").Return(nil, domain.ErrNotFound)

	_, err := uc.GetJob(ctx, "u2", "job-1")
	appErr := requireAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "No job with id job-1", appErr.Message)
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply defaults and force the owner", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())
		repo.On("Create", ctx, "u1", mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(ctx, "u1", domain.JobInput{Company: "Acme", Position: "Backend Engineer"})
		require.NoError(t, err)
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, domain.StatusPending, job.Status)
		assert.Equal(t, domain.JobTypeFullTime, job.JobType)
		assert.Equal(t, domain.DefaultJobLocation, job.JobLocation)
		assert.Equal(t, domain.MeetingZoom, job.MeetingType)
		assert.False(t, job.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("Should fail if required fields are missing", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		_, err := uc.CreateJob(ctx, "u1", domain.JobInput{Company: "  "})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Len(t, appErr.Details, 2)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject enum values outside the closed set", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		_, err := uc.CreateJob(ctx, "u1", domain.JobInput{
			Company: "Acme", Position: "Dev", Status: "hired", JobType: "contract", MeetingType: "Teams",
		})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Len(t, appErr.Details, 3)
	})

	t.Run("Should accept a location longer than a hundred characters", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())
		repo.On("Create", ctx, "u1", mock.AnythingOfType("*domain.Job")).Return(nil)

		location := strings.Repeat("Remote, anywhere in the EU ", 6)
		job, err := uc.CreateJob(ctx, "u1", domain.JobInput{Company: "Acme", Position: "Dev", JobLocation: location})
		require.NoError(t, err)
		assert.Equal(t, location, job.JobLocation)
	})

	t.Run("Should reject overlong company", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		long := "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijX"
		_, err := uc.CreateJob(ctx, "u1", domain.JobInput{Company: long, Position: "Dev"})
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an empty company without touching the store", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		_, err := uc.UpdateJob(ctx, "u1", "job-1", domain.JobPatch{Company: strp("")})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Contains(t, appErr.Details[0], "Company")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject an out-of-set status", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		bogus := domain.JobStatus("hired")
		_, err := uc.UpdateJob(ctx, "u1", "job-1", domain.JobPatch{Status: &bogus})
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should report another owner's job as not found", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		status := domain.StatusInterview
		patch := domain.JobPatch{Status: &status}
		repo.On("Update", ctx, "u2", "job-1", patch, mock.AnythingOfType("time.Time")).Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateJob(ctx, "u2", "job-1", patch)
		requireAppError(t, err, http.StatusNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("Should allow any status transition", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		for _, s := range []domain.JobStatus{domain.StatusDeclined, domain.StatusPending, domain.StatusInterview, domain.StatusPending} {
			s := s
			patch := domain.JobPatch{Status: &s}
			repo.On("Update", ctx, "u1", "job-1", patch, mock.AnythingOfType("time.Time")).
				Return(&domain.Job{ID: "job-1", Status: s}, nil).Once()

			job, err := uc.UpdateJob(ctx, "u1", "job-1", patch)
			require.NoError(t, err)
			assert.Equal(t, s, job.Status)
		}
	})
	t.Run("Should return an empty patch unchanged without writing", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		repo.On("GetByID", ctx, "u1", "job-1").Return(&domain.Job{ID: "job-1", UpdatedAt: updated}, nil)

		job, err := uc.UpdateJob(ctx, "u1", "job-1", domain.JobPatch{})
		require.NoError(t, err)
		assert.Equal(t, updated, job.UpdatedAt)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should report an empty patch on another owner's job as not found", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())
		repo.On("GetByID", ctx, "u2", "job-1").Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateJob(ctx, "u2", "job-1", domain.JobPatch{})
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("Should accept a long location", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())

		location := strings.Repeat("Remote, anywhere in the EU ", 6)
		patch := domain.JobPatch{JobLocation: &location}
		repo.On("Update", ctx, "u1", "job-1", patch, mock.AnythingOfType("time.Time")).
			Return(&domain.Job{ID: "job-1", JobLocation: location}, nil)

		job, err := uc.UpdateJob(ctx, "u1", "job-1", patch)
		require.NoError(t, err)
		assert.Equal(t, location, job.JobLocation)
	})
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, validation.New())

	repo.On("Delete", ctx, "u2", "job-1").Return(domain.ErrNotFound)
	repo.On("Delete", ctx, "u1", "job-1").Return(nil)

	requireAppError(t, uc.DeleteJob(ctx, "u2", "job-1"), http.StatusNotFound)
	assert.NoError(t, uc.DeleteJob(ctx, "u1", "job-1"))
}

func TestShowStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Should summarize statuses and months", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())
		repo.On("FetchStatRecords", ctx, "u1").Return([]domain.JobStatRecord{
			rec(domain.StatusPending, 2024, time.March),
			rec(domain.StatusPending, 2024, time.March),
			rec(domain.StatusInterview, 2024, time.March),
		}, nil)

		stats, err := uc.ShowStats(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStats{Pending: 2, Interview: 1}, stats.DefaultStats)
		assert.Equal(t, []domain.MonthlyCount{{Date: "Mar 2024", Count: 3}}, stats.MonthlyApplications)
	})

	t.Run("Should return zeroed stats for an owner without jobs", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, validation.New())
		repo.On("FetchStatRecords", ctx, "u3").Return(nil, nil)

		stats, err := uc.ShowStats(ctx, "u3")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStats{}, stats.DefaultStats)
		assert.Equal(t, []domain.MonthlyCount{}, stats.MonthlyApplications)
	})
}

func TestOwnerIsRequired(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, validation.New())

	_, err := uc.ListJobs(ctx, "", domain.JobQuery{})
	requireAppError(t, err, http.StatusUnauthorized)
	_, err = uc.ShowStats(ctx, "")
	requireAppError(t, err, http.StatusUnauthorized)
	requireAppError(t, uc.DeleteJob(ctx, "", "x"), http.StatusUnauthorized)
	repo.AssertExpectations(t)
}
