package service

import (
	"context"
	"fmt"
	"time"

	"bikeshop/inventory-worker/internal/app/inventory/repository"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"
)

type CartCleanupService struct {
	repo repository.CartRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewCartCleanupService корзины старше ttl считаются брошенными
func NewCartCleanupService(repo repository.CartRepository, ttl time.Duration) *CartCleanupService {
	return &CartCleanupService{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *CartCleanupService) PurgeAbandoned(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.ttl)

	deleted, err := s.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge carts: %w", err)
	}

	metrics.WorkerCartsPurged.Add(float64(deleted))
	logger.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("Abandoned carts purged")
	return deleted, nil
}
