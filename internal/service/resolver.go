package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"golang.org/x/sync/errgroup"

	"likesync/internal/domain"
)

// GenreResolver derives a genre for tracks from their artists' raw genres.
// Artist genres are cached permanently; upstream is only asked for artists
// the cache has never seen.
type GenreResolver struct {
	source      Source
	artists     ArtistGenreStore
	mappings    GenreMappingStore
	batchSize   int
	concurrency int
	logger      *slog.Logger
}

func NewGenreResolver(
	source Source,
	artists ArtistGenreStore,
	mappings GenreMappingStore,
	batchSize int,
	concurrency int,
	logger *slog.Logger,
) *GenreResolver {
	return &GenreResolver{
		source:      source,
		artists:     artists,
		mappings:    mappings,
		batchSize:   max(batchSize, 1),
		concurrency: max(concurrency, 1),
		logger:      logger.With("component", "genre_resolver"),
	}
}

// Resolve returns external id -> genre for every track. A nil genre means no
// artist of the track had a raw genre, or its first raw genre is unmapped.
func (r *GenreResolver) Resolve(ctx context.Context, userID, token string, tracks []domain.Track) (map[string]*string, error) {
	result := make(map[string]*string, len(tracks))

	ids := distinctArtistIDs(tracks)
	if len(ids) == 0 {
		for _, t := range tracks {
			result[t.ExternalID] = nil
		}
		return result, nil
	}

	known, err := r.artists.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load artist genres: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := r.fetchMissing(ctx, token, missing)
		if err != nil {
			return nil, err
		}
		maps.Copy(known, fetched)
		r.logger.Debug("resolved artists",
			"cached", len(ids)-len(missing),
			"fetched", len(fetched),
			"unresolved", len(missing)-len(fetched),
		)
	}

	mapping, err := r.mappings.Effective(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load genre mapping: %w", err)
	}

	for _, t := range tracks {
		result[t.ExternalID] = classify(t.ArtistIDs, known, mapping)
	}
	return result, nil
}

// fetchMissing asks upstream for ids in batches. A failed batch is logged and
// skipped so its artists stay uncached and are retried by a later run. A 401
// or cancellation of ctx aborts.
func (r *GenreResolver) fetchMissing(ctx context.Context, token string, ids []string) (map[string][]string, error) {
	var mu sync.Mutex
	fetched := make(map[string][]string, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for start := 0; start < len(ids); start += r.batchSize {
		batch := ids[start:min(start+r.batchSize, len(ids))]

		g.Go(func() error {
			genres, err := r.source.FetchArtists(gctx, token, batch)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// token was validated for the page just fetched
				if domain.IsUnauthorized(err) {
					return fmt.Errorf("fetch artists: %w", domain.ErrAuthExpired)
				}
				r.logger.Warn("artist batch failed, leaving unresolved",
					"artists", len(batch),
					"error", err,
				)
				return nil
			}

			if err := r.artists.UpsertBatch(gctx, genres); err != nil {
				r.logger.Warn("failed to cache artist genres", "artists", len(genres), "error", err)
			}

			mu.Lock()
			maps.Copy(fetched, genres)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch artist genres: %w", err)
	}
	return fetched, nil
}

// classify walks artistIDs in priority order to the first artist with raw
// genres and maps that artist's first raw genre.
func classify(artistIDs []string, genres map[string][]string, mapping map[string]string) *string {
	for _, id := range artistIDs {
		raw := genres[id]
		if len(raw) == 0 {
			continue
		}
		if g, ok := mapping[raw[0]]; ok {
			return &g
		}
		return nil
	}
	return nil
}

func distinctArtistIDs(tracks []domain.Track) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, t := range tracks {
		for _, id := range t.ArtistIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
