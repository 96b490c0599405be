package service

import (
	"context"
	"fmt"
	"sort"
)

// verify checks that every preserved genre survived the rewrite. Tracks that
// are gone are expected to be gone. Problems come back as warnings.
func (s *SyncService) verify(ctx context.Context, st *runState) []string {
	run := st.run
	if len(run.PreservedGenres) == 0 {
		return nil
	}

	ids := make([]string, 0, len(run.PreservedGenres))
	for id := range run.PreservedGenres {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	current, err := s.tracks.GetGenres(ctx, run.UserID, ids)
	if err != nil {
		st.logger.Warn("verification skipped", "error", err)
		return []string{fmt.Sprintf("verification skipped: %v", err)}
	}

	var warnings []string
	for _, id := range ids {
		got, ok := current[id]
		if !ok {
			continue
		}
		want := run.PreservedGenres[id]
		switch {
		case got == nil:
			warnings = append(warnings, fmt.Sprintf("track %s: expected genre %q, found none", id, want))
		case *got != want:
			warnings = append(warnings, fmt.Sprintf("track %s: expected genre %q, found %q", id, want, *got))
		}
	}

	if len(warnings) > 0 {
		st.logger.Warn("preserved genres not restored", "count", len(warnings))
	}
	return warnings
}
