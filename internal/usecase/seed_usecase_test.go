package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/sqlite"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/database"
	"job-tracker-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace the owner's jobs and keep createdAt", func(t *testing.T) {
		db, err := database.NewSQLiteConnection(ctx, ":memory:")
		require.NoError(t, err)
		defer db.Close()
		require.NoError(t, sqlite.Migrate(ctx, db))
		repo := sqlite.NewJobRepository(db)

		jobUC := usecase.NewJobUsecase(repo, validation.New())
		_, err = jobUC.CreateJob(ctx, "u1", domain.JobInput{Company: "Old", Position: "Gone"})
		require.NoError(t, err)
		_, err = jobUC.CreateJob(ctx, "u2", domain.JobInput{Company: "Other", Position: "Kept"})
		require.NoError(t, err)

		feb := time.Date(2023, time.February, 14, 9, 0, 0, 0, time.UTC)
		deleted, inserted, err := usecase.NewSeeder(repo, validation.New()).Seed(ctx, "u1", []usecase.SeedRecord{
			{JobInput: domain.JobInput{Company: "Acme", Position: "Engineer", Status: domain.StatusDeclined}, CreatedAt: feb},
			{JobInput: domain.JobInput{Company: "Globex", Position: "Analyst"}, CreatedAt: feb.AddDate(0, 1, 0)},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)
		assert.EqualValues(t, 2, inserted)

		stats, err := jobUC.ShowStats(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusStats{Pending: 1, Declined: 1}, stats.DefaultStats)
		assert.Equal(t, []domain.MonthlyCount{{Date: "Feb 2023", Count: 1}, {Date: "Mar 2023", Count: 1}}, stats.MonthlyApplications)

		other, err := jobUC.ListJobs(ctx, "u2", domain.JobQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, other.TotalJobs)
	})

	t.Run("Should delete nothing when a record is invalid", func(t *testing.T) {
		repo := new(MockJobRepo)

		_, _, err := usecase.NewSeeder(repo, validation.New()).Seed(ctx, "u1", []usecase.SeedRecord{
			{JobInput: domain.JobInput{Company: "Acme", Position: "Engineer"}},
			{JobInput: domain.JobInput{Company: "Acme", Position: "Engineer", Status: "ghosted"}},
		})
		appErr := requireAppError(t, err, 400)
		assert.Contains(t, appErr.Message, "record 1")
		repo.AssertNotCalled(t, "ReplaceAllByOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should hand the whole set to the store in one call", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("ReplaceAllByOwner", ctx, "u1", mock.MatchedBy(func(jobs []*domain.Job) bool {
			return len(jobs) == 2 && jobs[0].Status == domain.StatusPending && jobs[1].JobLocation == domain.DefaultJobLocation
		})).Return(int64(3), nil).Once()

		deleted, inserted, err := usecase.NewSeeder(repo, validation.New()).Seed(ctx, "u1", []usecase.SeedRecord{
			{JobInput: domain.JobInput{Company: "Acme", Position: "Engineer"}},
			{JobInput: domain.JobInput{Company: "Globex", Position: "Analyst"}},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, deleted)
		assert.EqualValues(t, 2, inserted)
		repo.AssertExpectations(t)
	})

	t.Run("Should report nothing inserted when the store rolls back", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("ReplaceAllByOwner", ctx, "u1", mock.Anything).Return(int64(0), errors.New("insert job 1: constraint failed"))

		deleted, inserted, err := usecase.NewSeeder(repo, validation.New()).Seed(ctx, "u1", []usecase.SeedRecord{
			{JobInput: domain.JobInput{Company: "Acme", Position: "Engineer"}},
			{JobInput: domain.JobInput{Company: "Globex", Position: "Analyst"}},
		})
		require.Error(t, err)
		assert.Zero(t, deleted)
		assert.Zero(t, inserted)
	})

	t.Run("Should require an owner", func(t *testing.T) {
		_, _, err := usecase.NewSeeder(new(MockJobRepo), validation.New()).Seed(ctx, "", nil)
		assert.ErrorIs(t, err, domain.ErrMissingOwner)
	})
}
