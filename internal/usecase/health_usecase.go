package usecase

import (
	"context"
	"time"

	"job-tracker-backend/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

// Pinger is anything the health check can probe.
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	repo  domain.JobRepository
	cache Pinger
}

// NewHealthUsecase probes the job store and, when cache is non-nil, the
// rate limit cache. The cache is optional: its failure degrades the
// report without failing it.
func NewHealthUsecase(repo domain.JobRepository, cache Pinger) HealthUsecase {
	return &healthUsecase{repo: repo, cache: cache}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "store": "ok"}
	healthy := true

	if err := u.repo.Ping(ctx); err != nil {
		status["status"] = "unavailable"
		status["store"] = "down"
		healthy = false
	}

	switch {
	case u.cache == nil:
		status["cache"] = "disabled"
	case u.cache(ctx) != nil:
		status["cache"] = "down"
	default:
		status["cache"] = "ok"
	}

	return status, healthy
}
