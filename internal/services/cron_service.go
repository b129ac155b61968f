package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/database"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron   *cron.Cron
	store  database.Store
	cfg    config.CronConfig
	logger *logrus.Logger
}

// NewCronService creates a new CronService
func NewCronService(store database.Store, cfg config.CronConfig, logger *logrus.Logger) *CronService {
	// Seconds precision: "0 0 3 * * *" = 03:00:00 every day
	c := cron.New(cron.WithSeconds())

	return &CronService{
		cron:   c,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Start schedules all jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.PruneSchedule, s.pruneVideoConfigsJob)
	if err != nil {
		return fmt.Errorf("failed to schedule video config prune job: %w", err)
	}
	s.logger.WithField("schedule", s.cfg.PruneSchedule).Info("Scheduled: prune video config history")

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// Entries returns the number of scheduled jobs
func (s *CronService) Entries() int {
	return len(s.cron.Entries())
}

// pruneVideoConfigsJob keeps only the newest legacy video configs
func (s *CronService) pruneVideoConfigsJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.RunPruneNow(ctx); err != nil {
		s.logger.WithError(err).Error("[CRON] Failed to prune video configs")
	}
}

// RunPruneNow runs the prune job immediately
func (s *CronService) RunPruneNow(ctx context.Context) (int64, error) {
	start := time.Now()

	removed, err := s.store.PruneVideoConfigs(ctx, s.cfg.KeepVideoConfigs)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"removed":  removed,
		"kept":     s.cfg.KeepVideoConfigs,
		"duration": time.Since(start).String(),
	}).Info("[CRON] Pruned video config history")
	return removed, nil
}
