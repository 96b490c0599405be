package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"likesync/internal/domain"
)

type ConnectionStore struct {
	db *sqlx.DB
}

func NewConnectionStore(db *sqlx.DB) *ConnectionStore {
	return &ConnectionStore{db: db}
}

// Get returns the user's connection or domain.ErrNoConnection.
func (s *ConnectionStore) Get(ctx context.Context, userID string) (*domain.Connection, error) {
	var conn domain.Connection
	query := `
		SELECT user_id, access_token, refresh_token, expires_at, provider_user_id,
			display_name, created_at, updated_at
		FROM connections
		WHERE user_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &conn, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoConnection
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// Upsert stores a connection handed over by the authorization flow.
func (s *ConnectionStore) Upsert(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO connections (user_id, access_token, refresh_token, expires_at, provider_user_id, display_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			provider_user_id = EXCLUDED.provider_user_id,
			display_name = EXCLUDED.display_name,
			updated_at = NOW()`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		conn.UserID,
		conn.AccessToken,
		conn.RefreshToken,
		conn.ExpiresAt,
		conn.ProviderUserID,
		conn.DisplayName,
	)
	return err
}

func (s *ConnectionStore) UpdateTokens(ctx context.Context, conn *domain.Connection) error {
	query := `
		UPDATE connections SET
			access_token = $2,
			refresh_token = $3,
			expires_at = $4,
			updated_at = NOW()
		WHERE user_id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		conn.UserID,
		conn.AccessToken,
		conn.RefreshToken,
		conn.ExpiresAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNoConnection
	}
	return nil
}

func (s *ConnectionStore) Delete(ctx context.Context, userID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM connections WHERE user_id = $1", userID)
	return err
}

// ListUserIDs returns every user that has a connection.
func (s *ConnectionStore) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids, "SELECT user_id FROM connections ORDER BY user_id")
	return ids, err
}
