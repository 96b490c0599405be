package domain

import "time"

// Connection holds the upstream credentials for one user.
type Connection struct {
	UserID         string    `db:"user_id"`
	AccessToken    string    `db:"access_token"`
	RefreshToken   *string   `db:"refresh_token"`
	ExpiresAt      time.Time `db:"expires_at"`
	ProviderUserID string    `db:"provider_user_id"`
	DisplayName    *string   `db:"display_name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
