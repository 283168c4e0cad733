package scheduler

import (
	"context"
	"time"

	"rentlite/internal/app" // For RentCheckService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// batchTimeout bounds one full batch run. Each property's aggregator
// calls carry their own shorter timeouts; this is a safety net only.
const batchTimeout = 30 * time.Minute

// RentCheckScheduler drives the daily batch run.
type RentCheckScheduler struct {
	cronEngine   *cron.Cron
	checkService app.RentCheckService
	logger       *logrus.Entry
	cronSpec     string
}

func NewRentCheckScheduler(checkService app.RentCheckService, logger *logrus.Entry, cronSpec string) *RentCheckScheduler {
	return &RentCheckScheduler{
		cronEngine:   cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		checkService: checkService,
		logger:       logger,
		cronSpec:     cronSpec,
	}
}

func (s *RentCheckScheduler) Start() {
	s.logger.Info("Starting rent check scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily rent check.")
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		results := s.checkService.CheckAllProperties(ctx)

		failed := 0
		for _, result := range results {
			if result.Err != "" {
				failed++
			}
		}
		s.logger.WithFields(logrus.Fields{
			"checked": len(results),
			"failed":  failed,
		}).Info("Daily rent check run finished.")
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add daily rent check cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Rent check scheduler started.")
}

func (s *RentCheckScheduler) Stop() {
	s.logger.Info("Stopping rent check scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Rent check scheduler gracefully stopped.")
}
