// Package worker runs background jobs on a cron schedule.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrphanCanceller cancels PENDING bookings that never received a checkout
// session and reports how many were cancelled.
type OrphanCanceller interface {
	CancelOrphanedBookings(ctx context.Context) (int64, error)
}

type Sweeper struct {
	cron     *cron.Cron
	svc      OrphanCanceller
	schedule string
	timeout  time.Duration
	log      *zap.Logger
}

func NewSweeper(svc OrphanCanceller, schedule string, log *zap.Logger) *Sweeper {
	log = log.With(zap.String("worker", "orphan-sweeper"))
	cl := cronLogger{log: log}

	return &Sweeper{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		svc:      svc,
		schedule: schedule,
		timeout:  time.Minute,
		log:      log,
	}
}

// Start registers the sweep job and starts the scheduler in its own goroutine.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return fmt.Errorf("schedule orphan sweep %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info("Orphan sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Orphan sweeper stop timed out")
	}
}

func (s *Sweeper) Sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.svc.CancelOrphanedBookings(ctx)
	if err != nil {
		s.log.Error("Orphan sweep failed", zap.Error(err))
		return
	}

	if n > 0 {
		s.log.Info("Cancelled orphaned bookings", zap.Int64("count", n))
	}
}

// cronLogger routes cron's internal logging through zap.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
