package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type GenreMappingStore struct {
	db *sqlx.DB
}

func NewGenreMappingStore(db *sqlx.DB) *GenreMappingStore {
	return &GenreMappingStore{db: db}
}

type genreMappingRow struct {
	RawGenre string `db:"raw_genre"`
	Genre    string `db:"genre"`
}

// Effective returns raw genre -> genre for userID: the user's override when
// present, otherwise the base mapping.
func (s *GenreMappingStore) Effective(ctx context.Context, userID string) (map[string]string, error) {
	exec := GetExecutor(ctx, s.db)

	var base []genreMappingRow
	if err := sqlx.SelectContext(ctx, exec, &base, "SELECT raw_genre, genre FROM genre_mappings"); err != nil {
		return nil, fmt.Errorf("select base mappings: %w", err)
	}

	var overrides []genreMappingRow
	if err := sqlx.SelectContext(ctx, exec, &overrides,
		"SELECT raw_genre, genre FROM user_genre_overrides WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("select user overrides: %w", err)
	}

	mapping := make(map[string]string, len(base)+len(overrides))
	for _, m := range base {
		mapping[m.RawGenre] = m.Genre
	}
	for _, m := range overrides {
		mapping[m.RawGenre] = m.Genre
	}
	return mapping, nil
}

func (s *GenreMappingStore) SetBase(ctx context.Context, rawGenre, genre string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO genre_mappings (raw_genre, genre) VALUES ($1, $2)
		ON CONFLICT (raw_genre) DO UPDATE SET genre = EXCLUDED.genre`,
		rawGenre, genre)
	return err
}

func (s *GenreMappingStore) SetOverride(ctx context.Context, userID, rawGenre, genre string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO user_genre_overrides (user_id, raw_genre, genre) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, raw_genre) DO UPDATE SET genre = EXCLUDED.genre`,
		userID, rawGenre, genre)
	return err
}
