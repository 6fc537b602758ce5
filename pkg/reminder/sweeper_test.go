package reminder

import (
	"Shelf-Buddy-Backend/domain"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubSweepService struct {
	ReminderService
	cycles atomic.Int32
}

func (s *stubSweepService) Sweep(_ context.Context, _ time.Time) (domain.SweepResult, error) {
	s.cycles.Add(1)
	return domain.SweepResult{}, nil
}

func TestSweeperRunsImmediatelyAndStops(t *testing.T) {
	stub := &stubSweepService{}
	sweeper := NewSweeper(stub, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	// The first cycle runs before the first tick.
	assert.Eventually(t, func() bool { return stub.cycles.Load() == 1 },
		time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestSweeperDefaultInterval(t *testing.T) {
	sweeper := NewSweeper(&stubSweepService{}, 0)
	assert.Equal(t, 24*time.Hour, sweeper.interval)
}
