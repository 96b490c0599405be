package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"likesync/internal/domain"
)

// memLibrary is an in-memory stand-in for the postgres stores.
type memLibrary struct {
	mu      sync.Mutex
	tracks  map[string]domain.Track // by external id, single user
	runs    map[string]domain.SyncRun
	created []string // run ids in creation order
	artists map[string][]string
	mapping map[string]string
	conn    *domain.Connection
}

func newMemLibrary(userID string) *memLibrary {
	return &memLibrary{
		tracks:  make(map[string]domain.Track),
		runs:    make(map[string]domain.SyncRun),
		artists: make(map[string][]string),
		mapping: make(map[string]string),
		conn:    &domain.Connection{UserID: userID, AccessToken: "tok"},
	}
}

func (m *memLibrary) Get(ctx context.Context, userID string) (*domain.Connection, error) {
	if m.conn == nil || m.conn.UserID != userID {
		return nil, domain.ErrNoConnection
	}
	return m.conn, nil
}

func (m *memLibrary) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memLibrary) UpsertBatch(ctx context.Context, tracks []domain.Track) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := 0
	for _, t := range tracks {
		if _, ok := m.tracks[t.ExternalID]; !ok {
			inserted++
		}
		if t.Genre != nil {
			g := *t.Genre
			t.Genre = &g
		}
		t.ArtistIDs = slices.Clone(t.ArtistIDs)
		m.tracks[t.ExternalID] = t
	}
	return inserted, nil
}

func (m *memLibrary) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.tracks))
	clear(m.tracks)
	return n, nil
}

func (m *memLibrary) DeleteByExternalIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := m.tracks[id]; ok {
			delete(m.tracks, id)
			n++
		}
	}
	return n, nil
}

func (m *memLibrary) ListExternalIDs(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Sorted(maps.Keys(m.tracks)), nil
}

func (m *memLibrary) ListSeenInRun(ctx context.Context, userID, runID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for id, t := range m.tracks {
		if t.LastRunID == runID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *memLibrary) ListSeenAmong(ctx context.Context, userID, runID string, ids []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var seen []string
	for _, id := range ids {
		if t, ok := m.tracks[id]; ok && t.LastRunID == runID {
			seen = append(seen, id)
		}
	}
	return seen, nil
}

func (m *memLibrary) ListGenres(ctx context.Context, userID, afterExternalID string, limit int) ([]domain.TrackGenre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.TrackGenre
	for _, id := range slices.Sorted(maps.Keys(m.tracks)) {
		t := m.tracks[id]
		if id <= afterExternalID || t.Genre == nil {
			continue
		}
		out = append(out, domain.TrackGenre{ExternalID: id, Genre: *t.Genre})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memLibrary) GetGenres(ctx context.Context, userID string, ids []string) (map[string]*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]*string)
	for _, id := range ids {
		if t, ok := m.tracks[id]; ok {
			out[id] = t.Genre
		}
	}
	return out, nil
}

func (m *memLibrary) LatestAddedAt(ctx context.Context, userID string) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *time.Time
	for _, t := range m.tracks {
		if latest == nil || t.AddedAt.After(*latest) {
			added := t.AddedAt
			latest = &added
		}
	}
	return latest, nil
}

// the run store half; returns copies like a database would

func (m *memLibrary) GetActive(ctx context.Context, userID string) (*domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, run := range m.runs {
		if run.UserID == userID && run.Status == domain.SyncStatusInProgress {
			return &run, nil
		}
	}
	return nil, nil
}

func (m *memLibrary) Create(ctx context.Context, run *domain.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.runs {
		if r.UserID == run.UserID && r.Status == domain.SyncStatusInProgress {
			return domain.ErrRunInProgress
		}
	}
	m.runs[run.ID] = *run
	m.created = append(m.created, run.ID)
	return nil
}

func (m *memLibrary) GetLatest(ctx context.Context, userID string) (*domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.created) - 1; i >= 0; i-- {
		if run := m.runs[m.created[i]]; run.UserID == userID {
			return &run, nil
		}
	}
	return nil, nil
}

func (m *memLibrary) Save(ctx context.Context, run *domain.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[run.ID]; !ok {
		return fmt.Errorf("run %s not found", run.ID)
	}
	m.runs[run.ID] = *run
	return nil
}

func (m *memLibrary) run(id string) domain.SyncRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[id]
}

func (m *memLibrary) genre(id string) *string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracks[id].Genre
}

func (m *memLibrary) seed(tracks ...domain.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tracks {
		m.tracks[t.ExternalID] = t
	}
}

// memArtists serves the artist genre cache and the genre mapping out of lib.
type memArtists struct {
	lib *memLibrary
}

func (a memArtists) GetByIDs(ctx context.Context, ids []string) (map[string][]string, error) {
	a.lib.mu.Lock()
	defer a.lib.mu.Unlock()

	out := make(map[string][]string)
	for _, id := range ids {
		if g, ok := a.lib.artists[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (a memArtists) UpsertBatch(ctx context.Context, genres map[string][]string) error {
	a.lib.mu.Lock()
	defer a.lib.mu.Unlock()

	maps.Copy(a.lib.artists, genres)
	return nil
}

func (a memArtists) Effective(ctx context.Context, userID string) (map[string]string, error) {
	a.lib.mu.Lock()
	defer a.lib.mu.Unlock()

	return maps.Clone(a.lib.mapping), nil
}

type staticTokens struct{}

func (staticTokens) ValidToken(ctx context.Context, conn *domain.Connection) (string, error) {
	return conn.AccessToken, nil
}

func (staticTokens) ForceRefresh(ctx context.Context, conn *domain.Connection) (string, error) {
	return conn.AccessToken, nil
}

// memSource serves a newest-first liked collection in fixed-size pages.
type memSource struct {
	mu       sync.Mutex
	items    []domain.Track
	artists  map[string][]string
	pageSize int
	failAt   map[int]error // offset -> error returned once
	onPage   func(offset int) // runs after a page is cut, lock held
	pages    int
	lookups  int
}

func (s *memSource) FetchPage(ctx context.Context, token string, offset int) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failAt[offset]; ok {
		delete(s.failAt, offset)
		return nil, err
	}
	s.pages++

	end := min(offset+s.pageSize, len(s.items))
	start := min(offset, end)
	items := slices.Clone(s.items[start:end])
	page := &domain.Page{
		Items:   items,
		Size:    len(items),
		Offset:  offset,
		Total:   len(s.items),
		HasNext: end < len(s.items),
	}
	if s.onPage != nil {
		s.onPage(offset)
	}
	return page, nil
}

func (s *memSource) FetchArtists(ctx context.Context, token string, ids []string) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookups++
	out := make(map[string][]string)
	for _, id := range ids {
		if g, ok := s.artists[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}
