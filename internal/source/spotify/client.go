package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"likesync/internal/domain"
)

const maxArtistIDs = 50

// Config holds upstream API client configuration.
type Config struct {
	BaseURL        string
	PageSize       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client reads a user's liked tracks and artist genres.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	pageSize       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new upstream client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		pageSize:       cfg.PageSize,
		maxAttempts:    max(cfg.MaxAttempts, 1),
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "spotify"),
	}
}

// FetchPage fetches one page of liked tracks starting at offset.
func (c *Client) FetchPage(ctx context.Context, token string, offset int) (*domain.Page, error) {
	endpoint := fmt.Sprintf("%s/me/tracks?limit=%d&offset=%d", c.baseURL, c.pageSize, offset)

	var resp SavedTracksResponse
	if err := c.get(ctx, token, endpoint, &resp); err != nil {
		return nil, err
	}

	page := &domain.Page{
		Items:   c.transform(resp.Items),
		Size:    len(resp.Items),
		Offset:  offset,
		Total:   resp.Total,
		HasNext: resp.Next != nil && len(resp.Items) > 0,
	}

	c.logger.Debug("fetched page",
		"offset", offset,
		"items", len(resp.Items),
		"total", resp.Total,
	)

	return page, nil
}

// FetchArtists returns the genre list of every artist upstream knows among ids.
// Artists without genres map to an empty slice.
func (c *Client) FetchArtists(ctx context.Context, token string, ids []string) (map[string][]string, error) {
	if len(ids) == 0 {
		return map[string][]string{}, nil
	}
	if len(ids) > maxArtistIDs {
		return nil, fmt.Errorf("fetch artists: %d ids exceeds limit of %d", len(ids), maxArtistIDs)
	}

	endpoint := fmt.Sprintf("%s/artists?ids=%s", c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	var resp ArtistsResponse
	if err := c.get(ctx, token, endpoint, &resp); err != nil {
		return nil, err
	}

	result := make(map[string][]string, len(resp.Artists))
	for _, a := range resp.Artists {
		if a == nil || a.ID == "" {
			continue
		}
		genres := a.Genres
		if genres == nil {
			genres = []string{}
		}
		result[a.ID] = genres
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, token, endpoint string, out any) error {
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var retryAfter time.Duration
		retryAfter, err = c.doRequest(ctx, token, endpoint, out)
		if err == nil {
			return nil
		}

		var upErr *domain.UpstreamError
		if !errors.As(err, &upErr) || !upErr.Temporary() || ctx.Err() != nil {
			return err
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		if retryAfter > 0 {
			backoff = min(retryAfter, c.maxBackoff)
		}
		c.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return err
}

func (c *Client) doRequest(ctx context.Context, token, endpoint string, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "likesync/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &domain.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return parseRetryAfter(resp.Header.Get("Retry-After")), &domain.UpstreamError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	return 0, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func parseRetryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func (c *Client) transform(items []SavedTrack) []domain.Track {
	tracks := make([]domain.Track, 0, len(items))

	for _, item := range items {
		// local files and removed tracks have no id
		if item.Track.ID == "" {
			continue
		}

		addedAt, err := time.Parse(time.RFC3339, item.AddedAt)
		if err != nil {
			c.logger.Warn("failed to parse added_at",
				"external_id", item.Track.ID,
				"added_at", item.AddedAt,
			)
			continue
		}

		track := domain.Track{
			ExternalID: item.Track.ID,
			Title:      item.Track.Name,
			AddedAt:    addedAt.UTC(),
		}

		if item.Track.Album != nil && item.Track.Album.Name != "" {
			album := item.Track.Album.Name
			track.AlbumName = &album
		}

		for i, a := range item.Track.Artists {
			if i == 0 {
				track.ArtistName = a.Name
			}
			if a.ID != "" {
				track.ArtistIDs = append(track.ArtistIDs, a.ID)
			}
		}

		tracks = append(tracks, track)
	}

	return tracks
}
