package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"likesync/internal/domain"
)

type ConnectionStore interface {
	Get(ctx context.Context, userID string) (*domain.Connection, error)
}

type TokenProvider interface {
	ValidToken(ctx context.Context, conn *domain.Connection) (string, error)
	ForceRefresh(ctx context.Context, conn *domain.Connection) (string, error)
}

type Source interface {
	FetchPage(ctx context.Context, token string, offset int) (*domain.Page, error)
	FetchArtists(ctx context.Context, token string, ids []string) (map[string][]string, error)
}

type TrackStore interface {
	UpsertBatch(ctx context.Context, tracks []domain.Track) (int, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
	DeleteByExternalIDs(ctx context.Context, userID string, ids []string) (int64, error)
	ListExternalIDs(ctx context.Context, userID string) ([]string, error)
	ListSeenInRun(ctx context.Context, userID, runID string) ([]string, error)
	ListSeenAmong(ctx context.Context, userID, runID string, ids []string) ([]string, error)
	ListGenres(ctx context.Context, userID, afterExternalID string, limit int) ([]domain.TrackGenre, error)
	GetGenres(ctx context.Context, userID string, ids []string) (map[string]*string, error)
	LatestAddedAt(ctx context.Context, userID string) (*time.Time, error)
}

type SyncRunStore interface {
	GetActive(ctx context.Context, userID string) (*domain.SyncRun, error)
	GetLatest(ctx context.Context, userID string) (*domain.SyncRun, error)
	Create(ctx context.Context, run *domain.SyncRun) error
	Save(ctx context.Context, run *domain.SyncRun) error
}

type ArtistGenreStore interface {
	GetByIDs(ctx context.Context, ids []string) (map[string][]string, error)
	UpsertBatch(ctx context.Context, genres map[string][]string) error
}

type GenreMappingStore interface {
	Effective(ctx context.Context, userID string) (map[string]string, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, result *domain.SyncResult) error
	Close() error
}
