package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"likesync/internal/domain"
)

type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

type ConnectionStore interface {
	UpdateTokens(ctx context.Context, conn *domain.Connection) error
	Delete(ctx context.Context, userID string) error
}

// Provider hands out bearer tokens for stored connections, refreshing them
// when they are expired or about to expire.
type Provider struct {
	refresher   Refresher
	connections ConnectionStore
	skew        time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

func NewProvider(refresher Refresher, connections ConnectionStore, skew time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		refresher:   refresher,
		connections: connections,
		skew:        skew,
		now:         time.Now,
		logger:      logger.With("component", "token_provider"),
	}
}

// ValidToken returns conn's access token, refreshing it first when
// now >= expiresAt - skew. conn is updated in place after a refresh.
func (p *Provider) ValidToken(ctx context.Context, conn *domain.Connection) (string, error) {
	if p.now().Before(conn.ExpiresAt.Add(-p.skew)) {
		return conn.AccessToken, nil
	}
	return p.ForceRefresh(ctx, conn)
}

// ForceRefresh refreshes conn regardless of its expiry.
func (p *Provider) ForceRefresh(ctx context.Context, conn *domain.Connection) (string, error) {
	if conn.RefreshToken == nil || *conn.RefreshToken == "" {
		return "", domain.ErrTokenUnavailable
	}

	p.logger.Debug("refreshing access token", "user_id", conn.UserID, "expires_at", conn.ExpiresAt)

	token, err := p.refresher.Refresh(ctx, *conn.RefreshToken)
	if err != nil {
		if errors.Is(err, errInvalidGrant) {
			p.logger.Warn("refresh token rejected, removing connection", "user_id", conn.UserID, "error", err)
			if delErr := p.connections.Delete(ctx, conn.UserID); delErr != nil {
				return "", fmt.Errorf("delete connection: %w", delErr)
			}
			return "", fmt.Errorf("%w: %v", domain.ErrConnectionInvalidated, err)
		}
		return "", &domain.TransientRefreshError{Err: err}
	}

	conn.AccessToken = token.AccessToken
	conn.ExpiresAt = p.expiresAt(token)
	// refresh tokens are only rotated sometimes
	if token.RefreshToken != "" {
		rt := token.RefreshToken
		conn.RefreshToken = &rt
	}

	// a rotated refresh token may be the only valid one left, so the new
	// tokens are used even when storing them fails
	if err := p.connections.UpdateTokens(context.WithoutCancel(ctx), conn); err != nil {
		p.logger.Error("failed to persist refreshed tokens", "user_id", conn.UserID, "error", err)
	}

	return conn.AccessToken, nil
}

// expiresAt prefers the endpoint's expires_in, measured on the provider's
// clock.
func (p *Provider) expiresAt(token *oauth2.Token) time.Time {
	if token.ExpiresIn > 0 {
		return p.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	if !token.Expiry.IsZero() {
		return token.Expiry
	}
	return p.now()
}
