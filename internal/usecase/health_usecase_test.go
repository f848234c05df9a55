package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-tracker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report ok without a cache", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Ping", mock.Anything).Return(nil)

		status, ok := usecase.NewHealthUsecase(repo, nil).Check(ctx)
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"status": "ok", "store": "ok", "cache": "disabled"}, status)
	})

	t.Run("Should fail when the store is down", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Ping", mock.Anything).Return(errors.New("dial tcp: refused"))

		status, ok := usecase.NewHealthUsecase(repo, func(context.Context) error { return nil }).Check(ctx)
		assert.False(t, ok)
		assert.Equal(t, "down", status["store"])
		assert.Equal(t, "ok", status["cache"])
	})

	t.Run("Should stay healthy when only the cache is down", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Ping", mock.Anything).Return(nil)

		status, ok := usecase.NewHealthUsecase(repo, func(context.Context) error { return errors.New("timeout") }).Check(ctx)
		assert.True(t, ok)
		assert.Equal(t, "down", status["cache"])
	})
}
