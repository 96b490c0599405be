package scheduler

import (
	"context"
	"log/slog"
	"time"

	"likesync/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context, userID string, opts domain.SyncOptions) (*domain.SyncResult, error)
}

// UserLister returns the users that have an upstream connection.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

type Scheduler struct {
	syncer     Syncer
	users      UserLister
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(syncer Syncer, users UserLister, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:     syncer,
		users:      users,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "run_timeout", s.runTimeout)

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

// runAll syncs every connected user in turn. A run cut short by the timeout
// stays in progress and is resumed on the next tick.
func (s *Scheduler) runAll(ctx context.Context) {
	userIDs, err := s.users.ListUserIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return
	}

	var completed, paused, failed int
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return
		}

		result, err := s.runSync(ctx, userID)
		switch {
		case err != nil:
			failed++
			s.logger.Error("sync failed",
				"user_id", userID,
				"resumable", domain.IsInterruption(err),
				"error", err,
			)
		case result.Paused:
			paused++
		default:
			completed++
		}
	}

	s.logger.Info("sync round finished",
		"users", len(userIDs),
		"completed", completed,
		"paused", paused,
		"failed", failed,
	)
}

func (s *Scheduler) runSync(ctx context.Context, userID string) (*domain.SyncResult, error) {
	syncCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	return s.syncer.Sync(syncCtx, userID, domain.SyncOptions{})
}
