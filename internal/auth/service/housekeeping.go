package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/otp"
	"github.com/aussiebroadwan/signin/internal/auth/store"
)

// HousekeepingService periodically purges expired codes and expired or
// revoked sessions.
type HousekeepingService struct {
	Store    store.Store
	Codes    otp.CodeStore
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService returns a stopped worker. A non-positive interval
// defaults to one hour.
func NewHousekeepingService(st store.Store, codes otp.CodeStore, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Codes:    codes,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs one cleanup immediately and then one per interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())
	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass. A failure in one step does not skip the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	codes, err := s.Codes.DeleteExpired(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired codes", "error", err)
	}

	sessions, err := s.Store.Sessions().DeleteExpiredSessions(ctx, s.Now())
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed", "codes_deleted", codes, "sessions_deleted", sessions)
}
