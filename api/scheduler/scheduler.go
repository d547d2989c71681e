package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// Closer is the part of the court the expiry sweep needs
type Closer interface {
	ExpiredCases(ctx context.Context) ([]models.Case, error)
	CloseCase(ctx context.Context, caller models.Address, caseID uint64) (models.Case, error)
}

// Scheduler closes expired cases in the background on a cron schedule
type Scheduler struct {
	cron     *cron.Cron
	court    Closer
	keeper   models.Address
	schedule string
}

// NewScheduler creates a new scheduler instance. keeper is the caller
// identity recorded for sweeper closes.
func NewScheduler(c Closer, keeper models.Address, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		court:    c,
		keeper:   keeper,
		schedule: schedule,
	}
}

// Start registers the sweep and begins the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("register expiry sweep %q: %w", s.schedule, err)
	}
	s.cron.Start()
	zap.S().Infow("expiry sweeper started", "schedule", s.schedule, "keeper", s.keeper)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("expiry sweeper stopped")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	s.Sweep(ctx)
}

// Sweep closes every case whose window has elapsed and returns how many it
// closed. Cases resolved concurrently are skipped.
func (s *Scheduler) Sweep(ctx context.Context) int {
	expired, err := s.court.ExpiredCases(ctx)
	if err != nil {
		zap.S().Errorw("failed to find expired cases", "error", err)
		return 0
	}

	closed := 0
	for _, cs := range expired {
		_, err := s.court.CloseCase(ctx, s.keeper, cs.ID)
		switch {
		case err == nil:
			closed++
		case errors.Is(err, court.ErrCaseClosed), errors.Is(err, court.ErrTooEarly):
			zap.S().Debugw("skipping case during expiry sweep", "caseId", cs.ID, "error", err)
		default:
			zap.S().Errorw("failed to close expired case", "caseId", cs.ID, "error", err)
		}
	}
	if closed > 0 {
		zap.S().Infow("expiry sweep closed cases", "closed", closed)
	}
	return closed
}
