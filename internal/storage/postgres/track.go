package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"likesync/internal/domain"
)

const trackColumns = 9

type TrackStore struct {
	db *sqlx.DB
}

func NewTrackStore(db *sqlx.DB) *TrackStore {
	return &TrackStore{db: db}
}

// UpsertBatch writes tracks keyed on (user_id, external_id), overwriting
// existing rows, and returns how many rows were newly inserted. When a batch
// repeats an external id the last occurrence wins.
func (s *TrackStore) UpsertBatch(ctx context.Context, tracks []domain.Track) (int, error) {
	tracks = dedupeTracks(tracks)
	if len(tracks) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO tracks (
		user_id, external_id, title, artist_name, album_name,
		artist_ids, added_at, genre, last_seen_run_id
	) VALUES `)
	args := make([]interface{}, 0, len(tracks)*trackColumns)

	for i, t := range tracks {
		if i > 0 {
			sb.WriteString(", ")
		}
		writePlaceholders(&sb, i*trackColumns, trackColumns)

		artistIDs := t.ArtistIDs
		if artistIDs == nil {
			artistIDs = []string{}
		}
		args = append(args,
			t.UserID,
			t.ExternalID,
			t.Title,
			t.ArtistName,
			t.AlbumName,
			pq.Array(artistIDs),
			t.AddedAt,
			t.Genre,
			t.LastRunID,
		)
	}
	sb.WriteString(`
		ON CONFLICT (user_id, external_id) DO UPDATE SET
			title = EXCLUDED.title,
			artist_name = EXCLUDED.artist_name,
			album_name = EXCLUDED.album_name,
			artist_ids = EXCLUDED.artist_ids,
			added_at = EXCLUDED.added_at,
			genre = EXCLUDED.genre,
			last_seen_run_id = EXCLUDED.last_seen_run_id,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted`)

	rows, err := GetExecutor(ctx, s.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	inserted := 0
	for rows.Next() {
		var isInsert bool
		if err := rows.Scan(&isInsert); err != nil {
			return 0, err
		}
		if isInsert {
			inserted++
		}
	}

	return inserted, rows.Err()
}

func (s *TrackStore) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM tracks WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TrackStore) DeleteByExternalIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM tracks WHERE user_id = $1 AND external_id = ANY($2)",
		userID, pq.Array(ids),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TrackStore) ListExternalIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids,
		"SELECT external_id FROM tracks WHERE user_id = $1 ORDER BY external_id", userID)
	return ids, err
}

// ListSeenInRun returns the external ids last written by runID.
func (s *TrackStore) ListSeenInRun(ctx context.Context, userID, runID string) ([]string, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids,
		"SELECT external_id FROM tracks WHERE user_id = $1 AND last_seen_run_id = $2 ORDER BY external_id",
		userID, runID)
	return ids, err
}

// ListSeenAmong returns those of ids that runID has already written.
func (s *TrackStore) ListSeenAmong(ctx context.Context, userID, runID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var seen []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &seen,
		`SELECT external_id FROM tracks
		WHERE user_id = $1 AND last_seen_run_id = $2 AND external_id = ANY($3)
		ORDER BY external_id`,
		userID, runID, pq.Array(ids))
	return seen, err
}

// ListGenres pages through the user's tracks that have a genre, ordered by
// external id and starting after afterExternalID.
func (s *TrackStore) ListGenres(ctx context.Context, userID, afterExternalID string, limit int) ([]domain.TrackGenre, error) {
	query := `
		SELECT external_id, genre
		FROM tracks
		WHERE user_id = $1 AND genre IS NOT NULL AND external_id > $2
		ORDER BY external_id
		LIMIT $3`

	var genres []domain.TrackGenre
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &genres, query, userID, afterExternalID, limit)
	return genres, err
}

// GetGenres returns the genre of every stored track among ids. Ids that are
// not stored are absent from the result.
func (s *TrackStore) GetGenres(ctx context.Context, userID string, ids []string) (map[string]*string, error) {
	result := make(map[string]*string)
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := GetExecutor(ctx, s.db).QueryContext(ctx,
		"SELECT external_id, genre FROM tracks WHERE user_id = $1 AND external_id = ANY($2)",
		userID, pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var extID string
		var genre sql.NullString
		if err := rows.Scan(&extID, &genre); err != nil {
			return nil, err
		}
		if genre.Valid {
			g := genre.String
			result[extID] = &g
		} else {
			result[extID] = nil
		}
	}

	return result, rows.Err()
}

// LatestAddedAt returns the newest added_at among the user's tracks, or nil
// when the user has none.
func (s *TrackStore) LatestAddedAt(ctx context.Context, userID string) (*time.Time, error) {
	var latest sql.NullTime
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &latest,
		"SELECT MAX(added_at) FROM tracks WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	t := latest.Time.UTC()
	return &t, nil
}

type trackRow struct {
	domain.Track
	ArtistIDs pq.StringArray `db:"artist_ids"`
	ID        int64          `db:"id"`
}

// ListByUser returns the user's tracks, newest first.
func (s *TrackStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Track, error) {
	query := `
		SELECT id, user_id, external_id, title, artist_name, album_name, artist_ids,
			added_at, genre, last_seen_run_id, created_at, updated_at
		FROM tracks
		WHERE user_id = $1
		ORDER BY added_at DESC, external_id
		LIMIT $2`

	var rows []trackRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("select tracks: %w", err)
	}

	tracks := make([]domain.Track, len(rows))
	for i, r := range rows {
		tracks[i] = r.Track
		tracks[i].ArtistIDs = []string(r.ArtistIDs)
	}
	return tracks, nil
}

func dedupeTracks(tracks []domain.Track) []domain.Track {
	index := make(map[string]int, len(tracks))
	out := make([]domain.Track, 0, len(tracks))
	for _, t := range tracks {
		if i, ok := index[t.ExternalID]; ok {
			out[i] = t
			continue
		}
		index[t.ExternalID] = len(out)
		out = append(out, t)
	}
	return out
}

// writePlaceholders appends "($start+1, ..., $start+n)".
func writePlaceholders(sb *strings.Builder, start, n int) {
	sb.WriteString("(")
	for j := 1; j <= n; j++ {
		if j > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString("$")
		sb.WriteString(strconv.Itoa(start + j))
	}
	sb.WriteString(")")
}
