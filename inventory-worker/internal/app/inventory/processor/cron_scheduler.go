package processor

import (
	"context"

	"bikeshop/inventory-worker/internal/app/inventory/service"
	"bikeshop/pkg/logger"

	"github.com/robfig/cron/v3"
)

type CronScheduler struct {
	cron       *cron.Cron
	cleanupSvc service.CartCleanupServiceInterface
}

func NewCronScheduler(cleanupSvc service.CartCleanupServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		cleanupSvc: cleanupSvc,
	}
}

// Start регистрирует очистку корзин по расписанию и сразу выполняет ее один раз
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.purge(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Cron scheduler started")

	s.purge(ctx)
	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

func (s *CronScheduler) purge(ctx context.Context) {
	if _, err := s.cleanupSvc.PurgeAbandoned(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to purge abandoned carts")
	}
}
