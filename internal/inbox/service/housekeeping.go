package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/store"
)

// DefaultUnverifiedRetention is how long a lapsed sign-up lingers.
const DefaultUnverifiedRetention = 24 * time.Hour

// HousekeepingService periodically removes sign-ups that were never
// verified, freeing their usernames and e-mails.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh   chan struct{}
	doneCh   chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewHousekeepingService applies a 1h interval and DefaultUnverifiedRetention
// to non-positive values.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = DefaultUnverifiedRetention
	}
	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per Interval, until Stop.
func (s *HousekeepingService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop blocks until any in-flight sweep has finished. It is safe to call
// more than once, and before Start.
func (s *HousekeepingService) Stop() {
	first := false
	s.stopOnce.Do(func() {
		close(s.stopCh)
		first = true
	})
	if s.started.Load() {
		<-s.doneCh
	}
	if first {
		s.Logger.Info("housekeeping service stopped")
	}
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background(), time.Now())
	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background(), time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes unverified users whose code lapsed more than Retention
// before now and returns how many were removed.
func (s *HousekeepingService) Sweep(ctx context.Context, now time.Time) int64 {
	n, err := s.Store.Users().DeleteStaleUnverified(ctx, now.Add(-s.Retention))
	if err != nil {
		s.Logger.Error("failed to delete stale sign-ups", "error", err)
		return 0
	}
	if n > 0 {
		s.Logger.Info("deleted stale sign-ups", "count", n)
	}
	return n
}
