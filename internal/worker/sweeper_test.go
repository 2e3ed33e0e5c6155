package worker

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeCanceller struct {
	calls int
	n     int64
	err   error
}

func (f *fakeCanceller) CancelOrphanedBookings(ctx context.Context) (int64, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep called without deadline")
	}
	return f.n, f.err
}

func TestSweep(t *testing.T) {
	fake := &fakeCanceller{n: 3}
	s := NewSweeper(fake, "@every 5m", zap.NewNop())

	s.Sweep(context.Background())
	fake.err = errors.New("db down")
	s.Sweep(context.Background())

	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewSweeper(&fakeCanceller{}, "not a schedule", zap.NewNop())
	if err := s.Start(); err == nil {
		t.Fatal("Start() with invalid schedule returned nil error")
	}
}

func TestStartStop(t *testing.T) {
	s := NewSweeper(&fakeCanceller{}, "@every 1h", zap.NewNop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop(context.Background())
}
