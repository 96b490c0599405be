package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// errInvalidGrant marks a refresh the token endpoint rejected permanently.
var errInvalidGrant = errors.New("refresh token rejected")

// HTTPRefresher exchanges refresh tokens at the upstream accounts service.
type HTTPRefresher struct {
	config     *oauth2.Config
	httpClient *http.Client
}

func NewHTTPRefresher(tokenURL, clientID, clientSecret string, timeout time.Duration) *HTTPRefresher {
	return &HTTPRefresher{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Refresh performs the refresh_token grant. An invalid_grant answer, or any
// 400/401/403, wraps errInvalidGrant; every other failure is retryable.
func (r *HTTPRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)

	token, err := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && rejectsGrant(retrieveErr) {
			return nil, fmt.Errorf("%w: %v", errInvalidGrant, retrieveErr)
		}
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return token, nil
}

func rejectsGrant(err *oauth2.RetrieveError) bool {
	if err.ErrorCode == "invalid_grant" {
		return true
	}
	if err.Response == nil {
		return false
	}
	switch err.Response.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}
