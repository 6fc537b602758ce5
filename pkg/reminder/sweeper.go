package reminder

import (
	"context"
	"log"
	"time"
)

// Sweeper drives the periodic reminder batch. Each cycle queries the store
// for due reminders and delivers them; running more than one cycle for the
// same day is harmless because delivery is guarded by the reminder_sent
// flag in the store.
type Sweeper struct {
	service  ReminderService
	interval time.Duration
}

func NewSweeper(service ReminderService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Sweeper{
		service:  service,
		interval: interval,
	}
}

// Start runs sweep cycles until the context is cancelled. The first cycle
// runs immediately; a ticker does not fire until its period elapses.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("reminder sweeper started, interval %s", s.interval)

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("reminder sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	result, err := s.service.Sweep(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("sweep cycle failed: %v", err)
		return
	}
	log.Printf("sweep cycle done: attempted=%d succeeded=%d failed=%d",
		result.Attempted, result.Succeeded, result.Failed)
}
