package service

import (
	"context"
	"fmt"
	"maps"

	"likesync/internal/domain"
)

const snapshotPageSize = 500

// snapshotGenres collects external id -> genre for every stored track of the
// user that has a genre.
func (s *SyncService) snapshotGenres(ctx context.Context, userID string) (map[string]string, error) {
	preserved := make(map[string]string)
	after := ""

	for {
		page, err := s.tracks.ListGenres(ctx, userID, after, snapshotPageSize)
		if err != nil {
			return nil, fmt.Errorf("list genres after %q: %w", after, err)
		}
		for _, tg := range page {
			preserved[tg.ExternalID] = tg.Genre
		}
		if len(page) < snapshotPageSize {
			return preserved, nil
		}
		after = page[len(page)-1].ExternalID
	}
}

// prepareFullSync snapshots genres and prior ids onto the run and clears the
// user's tracks in one transaction. It runs once per full run; a resumed run
// keeps its snapshot. A recovery run keeps what it carried over from the
// failed run and only adds genres the failed run left behind.
func (s *SyncService) prepareFullSync(ctx context.Context, st *runState) error {
	run := st.run
	carried, carriedPrior := run.PreservedGenres, run.PriorExternalIDs

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		snapshot, err := s.snapshotGenres(txCtx, run.UserID)
		if err != nil {
			return err
		}

		stored, err := s.tracks.ListExternalIDs(txCtx, run.UserID)
		if err != nil {
			return fmt.Errorf("list stored tracks: %w", err)
		}

		preserved, prior := snapshot, stored
		if run.RecoversRunID != nil {
			preserved = mergePreserved(carried, snapshot)
			prior = carriedPrior
		}

		run.PreservedGenres = preserved
		run.PriorExternalIDs = prior
		run.Prepared = true
		if err := s.runs.Save(txCtx, run); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}

		deleted, err := s.tracks.DeleteAllForUser(txCtx, run.UserID)
		if err != nil {
			return fmt.Errorf("delete tracks: %w", err)
		}

		st.logger.Info("prepared full sync",
			"preserved_genres", len(preserved),
			"cleared_tracks", deleted,
		)
		return nil
	})
	if err != nil {
		run.Prepared = false
		run.PreservedGenres = carried
		run.PriorExternalIDs = carriedPrior
		return fmt.Errorf("prepare full sync: %w", err)
	}
	return nil
}

// mergePreserved adds the genres in extra that base does not already hold.
func mergePreserved(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	maps.Copy(merged, extra)
	maps.Copy(merged, base)
	return merged
}

// applyPreserved overrides derived genres with the genres the run preserved.
func applyPreserved(tracks []domain.Track, preserved map[string]string) {
	if len(preserved) == 0 {
		return
	}
	for i := range tracks {
		if g, ok := preserved[tracks[i].ExternalID]; ok {
			tracks[i].Genre = &g
		}
	}
}
