package service

import (
	"context"
	"fmt"
)

// reconcileDeletions returns stored - seen, in stored order.
func reconcileDeletions(stored, seen []string) []string {
	seenSet := toSet(seen)
	var stale []string
	for _, id := range stored {
		if _, ok := seenSet[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}

// reconcile deletes tracks that the current full run did not see and returns
// how many tracks disappeared relative to the library before the run.
func (s *SyncService) reconcile(ctx context.Context, st *runState) (int, error) {
	run := st.run

	stored, err := s.tracks.ListExternalIDs(ctx, run.UserID)
	if err != nil {
		return 0, fmt.Errorf("list stored tracks: %w", err)
	}
	seen, err := s.tracks.ListSeenInRun(ctx, run.UserID, run.ID)
	if err != nil {
		return 0, fmt.Errorf("list seen tracks: %w", err)
	}

	stale := reconcileDeletions(stored, seen)
	if len(stale) > 0 {
		if _, err := s.tracks.DeleteByExternalIDs(ctx, run.UserID, stale); err != nil {
			return 0, fmt.Errorf("delete stale tracks: %w", err)
		}
	}

	removed := make(map[string]struct{}, len(stale))
	for _, id := range reconcileDeletions(run.PriorExternalIDs, seen) {
		removed[id] = struct{}{}
	}
	for _, id := range stale {
		removed[id] = struct{}{}
	}

	st.logger.Info("reconciled deletions",
		"stored", len(stored),
		"seen", len(seen),
		"deleted_now", len(stale),
		"removed_upstream", len(removed),
	)
	return len(removed), nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
