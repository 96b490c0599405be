package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"likesync/internal/config"
	"likesync/internal/domain"
)

// SyncService keeps a user's stored tracks in step with their upstream liked
// tracks. Runs are checkpointed after every page and resumed by the next call
// for the same user.
type SyncService struct {
	connections ConnectionStore
	tokens      TokenProvider
	source      Source
	tracks      TrackStore
	runs        SyncRunStore
	resolver    *GenreResolver
	txManager   TransactionManager
	publisher   Publisher
	logger      *slog.Logger
	config      config.SyncConfig

	now   func() time.Time
	newID func() string
}

func NewSyncService(
	connections ConnectionStore,
	tokens TokenProvider,
	source Source,
	tracks TrackStore,
	runs SyncRunStore,
	resolver *GenreResolver,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		connections: connections,
		tokens:      tokens,
		source:      source,
		tracks:      tracks,
		runs:        runs,
		resolver:    resolver,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger.With("component", "sync"),
		config:      cfg,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

// runState is what one invocation carries while driving a run.
type runState struct {
	run    *domain.SyncRun
	conn   *domain.Connection
	token  string
	prior  map[string]struct{}
	logger *slog.Logger
}

// Sync starts or resumes the user's sync run and drives it as far as this
// invocation allows. Fatal errors mark the run failed before being returned;
// interruptions leave it in progress.
func (s *SyncService) Sync(ctx context.Context, userID string, opts domain.SyncOptions) (*domain.SyncResult, error) {
	startTime := time.Now()
	logger := s.logger.With("user_id", userID)

	conn, err := s.connections.Get(ctx, userID)
	if err != nil {
		return errorResult(userID, err), fmt.Errorf("load connection: %w", err)
	}

	run, resumed, err := s.beginRun(ctx, userID, opts)
	if err != nil {
		return errorResult(userID, err), fmt.Errorf("begin run: %w", err)
	}

	st := &runState{
		run:    run,
		conn:   conn,
		logger: logger.With("run_id", run.ID, "mode", run.Mode),
	}
	if resumed {
		st.logger.Info("resuming sync run",
			"offset", run.Offset,
			"processed", run.Processed,
			"full_requested", opts.Full,
		)
	} else {
		st.logger.Info("starting sync run", "watermark", run.Watermark)
	}

	result, err := s.execute(ctx, st)
	if err != nil {
		return s.abort(ctx, st, err)
	}

	st.logger.Info("sync finished",
		"paused", result.Paused,
		"processed", result.ProcessedItems,
		"new", result.NewItems,
		"deleted", result.DeletedItems,
		"warnings", len(result.VerificationWarnings),
		"duration", time.Since(startTime),
	)

	s.publish(ctx, st, result)
	return result, nil
}

func (s *SyncService) beginRun(ctx context.Context, userID string, opts domain.SyncOptions) (*domain.SyncRun, bool, error) {
	active, err := s.runs.GetActive(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("load active run: %w", err)
	}
	if active != nil {
		return active, true, nil
	}

	previous, err := s.runs.GetLatest(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("load latest run: %w", err)
	}

	now := s.now()
	run := &domain.SyncRun{
		ID:              s.newID(),
		UserID:          userID,
		Status:          domain.SyncStatusInProgress,
		Mode:            domain.SyncModeFull,
		PreservedGenres: map[string]string{},
		StartedAt:       now,
		UpdatedAt:       now,
	}

	switch {
	case leftLibraryCleared(previous):
		// the stored tracks are only what the failed run rewrote; start over
		// from its snapshot instead of the truncated table
		run.RecoversRunID = &previous.ID
		run.PreservedGenres = maps.Clone(previous.PreservedGenres)
		run.PriorExternalIDs = slices.Clone(previous.PriorExternalIDs)
		s.logger.Warn("previous full run failed after clearing tracks, recovering",
			"user_id", userID,
			"failed_run_id", previous.ID,
			"preserved_genres", len(run.PreservedGenres),
		)
	case !opts.Full:
		latest, err := s.tracks.LatestAddedAt(ctx, userID)
		if err != nil {
			return nil, false, fmt.Errorf("load watermark: %w", err)
		}
		if latest != nil {
			run.Mode = domain.SyncModeIncremental
			run.Watermark = latest
		}
	}

	err = s.runs.Create(ctx, run)
	if errors.Is(err, domain.ErrRunInProgress) {
		// another invocation created a run first
		active, err := s.runs.GetActive(ctx, userID)
		if err != nil {
			return nil, false, fmt.Errorf("load active run: %w", err)
		}
		if active == nil {
			return nil, false, domain.ErrRunInProgress
		}
		return active, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create run: %w", err)
	}
	return run, false, nil
}

// leftLibraryCleared reports whether run is a full run that failed after its
// destructive delete, or a recovery of one that failed before redoing it.
func leftLibraryCleared(run *domain.SyncRun) bool {
	if run == nil || run.Status != domain.SyncStatusFailed || run.Mode != domain.SyncModeFull {
		return false
	}
	return run.Prepared || run.RecoversRunID != nil
}

func (s *SyncService) execute(ctx context.Context, st *runState) (*domain.SyncResult, error) {
	run := st.run

	if run.Mode == domain.SyncModeFull && !run.Prepared {
		if err := s.prepareFullSync(ctx, st); err != nil {
			return nil, err
		}
	}
	if run.Mode == domain.SyncModeFull {
		st.prior = toSet(run.PriorExternalIDs)
	}

	finished, err := s.fetchLoop(ctx, st)
	if err != nil {
		return nil, err
	}

	if !finished {
		result := resultFromRun(run)
		result.Success = true
		result.Paused = true
		result.Message = fmt.Sprintf("sync paused at offset %d, the next run resumes from there", run.Offset)
		return result, nil
	}

	return s.complete(ctx, st)
}

// fetchLoop processes pages until the collection is exhausted (true) or the
// per-invocation page budget runs out (false).
func (s *SyncService) fetchLoop(ctx context.Context, st *runState) (bool, error) {
	run := st.run

	var window *incrementalWindow
	if run.Mode == domain.SyncModeIncremental {
		if run.Watermark == nil {
			return false, fmt.Errorf("incremental run %s has no watermark", run.ID)
		}
		window = newIncrementalWindow(*run.Watermark, s.config.EarlyStopAfter)
	}

	pager := NewPager(func(ctx context.Context, offset int) (*domain.Page, error) {
		return s.fetchPage(ctx, st, offset)
	}, run.Offset)

	for pages := 0; ; pages++ {
		if pager.Done() {
			return true, nil
		}
		if s.config.MaxPagesPerRun > 0 && pages >= s.config.MaxPagesPerRun {
			return false, nil
		}

		page, err := pager.Next(ctx)
		if err != nil {
			return false, err
		}

		total := page.Total
		run.Total = &total

		items := page.Items
		if window != nil {
			items = window.filter(items)
		}

		newItems, err := s.processItems(ctx, st, items)
		if err != nil {
			return false, err
		}

		run.Offset = pager.Offset()
		run.Fetched += page.Size
		run.Processed += len(items)
		run.New += newItems

		if err := s.runs.Save(ctx, run); err != nil {
			return false, fmt.Errorf("save checkpoint: %w", err)
		}

		st.logger.Debug("checkpoint saved",
			"offset", run.Offset,
			"page_items", page.Size,
			"accepted", len(items),
			"total", page.Total,
		)

		if window != nil && window.exhausted() {
			st.logger.Info("incremental scan reached older tracks, stopping",
				"offset", run.Offset,
				"early_stop_after", s.config.EarlyStopAfter,
			)
			return true, nil
		}
	}
}

// fetchPage fetches with a valid token. An upstream 401 forces one refresh;
// a second 401 ends the run with ErrAuthExpired.
func (s *SyncService) fetchPage(ctx context.Context, st *runState, offset int) (*domain.Page, error) {
	token, err := s.tokens.ValidToken(ctx, st.conn)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	page, err := s.source.FetchPage(ctx, token, offset)
	if domain.IsUnauthorized(err) {
		st.logger.Info("upstream rejected token, forcing refresh", "offset", offset)

		token, err = s.tokens.ForceRefresh(ctx, st.conn)
		if err != nil {
			return nil, fmt.Errorf("refresh token: %w", err)
		}

		page, err = s.source.FetchPage(ctx, token, offset)
		if domain.IsUnauthorized(err) {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, domain.ErrAuthExpired)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
	}

	st.token = token
	return page, nil
}

// processItems resolves genres, applies preserved genres and writes the
// tracks. It returns how many of them are new to the user's library.
func (s *SyncService) processItems(ctx context.Context, st *runState, items []domain.Track) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	run := st.run

	genres, err := s.resolver.Resolve(ctx, run.UserID, st.token, items)
	if err != nil {
		return 0, fmt.Errorf("resolve genres: %w", err)
	}

	tracks := make([]domain.Track, len(items))
	ids := make([]string, len(items))
	for i, item := range items {
		item.UserID = run.UserID
		item.LastRunID = run.ID
		item.Genre = genres[item.ExternalID]
		tracks[i] = item
		ids[i] = item.ExternalID
	}
	applyPreserved(tracks, run.PreservedGenres)

	if run.Mode != domain.SyncModeFull {
		return s.writeTracks(ctx, tracks)
	}

	// full runs insert everything after clearing, so compare with the
	// library as it was before the run. Tracks this run already wrote were
	// counted on an earlier page.
	written, err := s.tracks.ListSeenAmong(ctx, run.UserID, run.ID, ids)
	if err != nil {
		return 0, fmt.Errorf("list written tracks: %w", err)
	}
	counted := toSet(written)
	newItems := 0
	for _, id := range ids {
		if _, ok := counted[id]; ok {
			continue
		}
		counted[id] = struct{}{}
		if _, ok := st.prior[id]; !ok {
			newItems++
		}
	}

	if _, err := s.writeTracks(ctx, tracks); err != nil {
		return 0, err
	}
	return newItems, nil
}

func (s *SyncService) writeTracks(ctx context.Context, tracks []domain.Track) (int, error) {
	batchSize := s.config.WriteBatchSize
	if batchSize <= 0 {
		batchSize = len(tracks)
	}

	inserted := 0
	for start := 0; start < len(tracks); start += batchSize {
		batch := tracks[start:min(start+batchSize, len(tracks))]
		n, err := s.tracks.UpsertBatch(ctx, batch)
		if err != nil {
			return 0, &domain.WriterError{Err: err}
		}
		inserted += n
	}
	return inserted, nil
}

func (s *SyncService) complete(ctx context.Context, st *runState) (*domain.SyncResult, error) {
	run := st.run

	if run.Mode == domain.SyncModeFull {
		deleted, err := s.reconcile(ctx, st)
		if err != nil {
			return nil, err
		}
		run.Deleted = deleted
		run.Warnings = s.verify(ctx, st)
	}

	now := s.now()
	run.Status = domain.SyncStatusCompleted
	run.CompletedAt = &now
	run.Error = nil

	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("complete run: %w", err)
	}

	result := resultFromRun(run)
	result.Success = true
	result.Message = "sync completed"
	if len(run.Warnings) > 0 {
		result.Message = fmt.Sprintf("sync completed with %d verification warnings", len(run.Warnings))
	}
	return result, nil
}

// abort records cause on the run. Interruptions leave the run resumable;
// anything else fails it for good.
func (s *SyncService) abort(ctx context.Context, st *runState, cause error) (*domain.SyncResult, error) {
	run := st.run
	result := resultFromRun(run)
	result.Error = cause.Error()

	if domain.IsInterruption(cause) {
		st.logger.Warn("sync interrupted, run stays resumable", "offset", run.Offset, "error", cause)
		result.Message = fmt.Sprintf("sync interrupted at offset %d, the next run resumes from there", run.Offset)
		return result, cause
	}

	msg := cause.Error()
	now := s.now()
	run.Status = domain.SyncStatusFailed
	run.Error = &msg
	run.CompletedAt = &now

	saveCtx := context.WithoutCancel(ctx)
	if err := s.runs.Save(saveCtx, run); err != nil {
		st.logger.Error("failed to record run failure", "error", err)
	}

	st.logger.Error("sync failed", "error", cause)
	result.Message = "sync failed"
	if errors.Is(cause, domain.ErrConnectionInvalidated) || errors.Is(cause, domain.ErrTokenUnavailable) {
		result.Message = "sync failed, user must reconnect their account"
	}

	s.publish(saveCtx, st, result)
	return result, cause
}

func (s *SyncService) publish(ctx context.Context, st *runState, result *domain.SyncResult) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, result); err != nil {
		st.logger.Warn("failed to publish sync result", "error", err)
	}
}

func resultFromRun(run *domain.SyncRun) *domain.SyncResult {
	result := &domain.SyncResult{
		UserID:               run.UserID,
		TotalItems:           run.Fetched,
		ProcessedItems:       run.Processed,
		NewItems:             run.New,
		DeletedItems:         run.Deleted,
		Mode:                 run.Mode,
		RunID:                run.ID,
		VerificationWarnings: run.Warnings,
	}
	if run.Total != nil {
		result.TotalItems = *run.Total
	}
	return result
}

func errorResult(userID string, err error) *domain.SyncResult {
	return &domain.SyncResult{
		UserID: userID,
		Error:  err.Error(),
	}
}
