package postgres

import (
	"context"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ArtistGenreStore caches raw genre lists per upstream artist id. Entries
// never expire.
type ArtistGenreStore struct {
	db *sqlx.DB
}

func NewArtistGenreStore(db *sqlx.DB) *ArtistGenreStore {
	return &ArtistGenreStore{db: db}
}

// GetByIDs returns cached genres for the known ids among ids.
func (s *ArtistGenreStore) GetByIDs(ctx context.Context, ids []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := GetExecutor(ctx, s.db).QueryContext(ctx,
		"SELECT artist_id, genres FROM artist_genres WHERE artist_id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var genres pq.StringArray
		if err := rows.Scan(&id, &genres); err != nil {
			return nil, err
		}
		if genres == nil {
			genres = pq.StringArray{}
		}
		result[id] = []string(genres)
	}

	return result, rows.Err()
}

func (s *ArtistGenreStore) UpsertBatch(ctx context.Context, genres map[string][]string) error {
	if len(genres) == 0 {
		return nil
	}

	ids := make([]string, 0, len(genres))
	for id := range genres {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString("INSERT INTO artist_genres (artist_id, genres) VALUES ")
	valueArgs := make([]interface{}, 0, len(ids)*2)

	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		writePlaceholders(&sb, i*2, 2)
		g := genres[id]
		if g == nil {
			g = []string{}
		}
		valueArgs = append(valueArgs, id, pq.Array(g))
	}
	sb.WriteString(" ON CONFLICT (artist_id) DO UPDATE SET genres = EXCLUDED.genres, fetched_at = NOW()")

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, sb.String(), valueArgs...)
	return err
}
