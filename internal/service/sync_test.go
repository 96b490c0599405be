package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"likesync/internal/config"
	"likesync/internal/domain"
	"likesync/internal/service/mocks"
	"likesync/testdata/utils"
)

type SyncServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	connections *mocks.MockConnectionStore
	tokens      *mocks.MockTokenProvider
	source      *mocks.MockSource
	tracks      *mocks.MockTrackStore
	runs        *mocks.MockSyncRunStore
	artists     *mocks.MockArtistGenreStore
	mappings    *mocks.MockGenreMappingStore
	txManager   *mocks.MockTransactionManager
	publisher   *mocks.MockPublisher

	service *SyncService
	cfg     config.SyncConfig
	logger  *slog.Logger
	now     time.Time
	conn    *domain.Connection
}

func (s *SyncServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.connections = mocks.NewMockConnectionStore(s.ctrl)
	s.tokens = mocks.NewMockTokenProvider(s.ctrl)
	s.source = mocks.NewMockSource(s.ctrl)
	s.tracks = mocks.NewMockTrackStore(s.ctrl)
	s.runs = mocks.NewMockSyncRunStore(s.ctrl)
	s.artists = mocks.NewMockArtistGenreStore(s.ctrl)
	s.mappings = mocks.NewMockGenreMappingStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.cfg = config.SyncConfig{
		WriteBatchSize:        100,
		EarlyStopAfter:        1,
		EnrichmentConcurrency: 1,
	}
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.conn = &domain.Connection{UserID: "user-1", AccessToken: "tok"}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = s.newService(s.publisher)
}

func (s *SyncServiceTestSuite) newService(publisher Publisher) *SyncService {
	resolver := NewGenreResolver(s.source, s.artists, s.mappings, 50, 1, s.logger)
	svc := NewSyncService(
		s.connections,
		s.tokens,
		s.source,
		s.tracks,
		s.runs,
		resolver,
		s.txManager,
		publisher,
		s.logger,
		s.cfg,
	)
	svc.now = func() time.Time { return s.now }
	svc.newID = func() string { return "run-1" }
	return svc
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) activeRun(mode domain.SyncMode) *domain.SyncRun {
	run := &domain.SyncRun{
		ID:              "run-1",
		UserID:          "user-1",
		Status:          domain.SyncStatusInProgress,
		Mode:            mode,
		PreservedGenres: map[string]string{},
		StartedAt:       s.now,
	}
	if mode == domain.SyncModeIncremental {
		run.Watermark = utils.Ptr(s.now.Add(-24 * time.Hour))
	} else {
		run.Prepared = true
	}
	return run
}

func (s *SyncServiceTestSuite) TestSync_IncrementalCompletes() {
	ctx := context.Background()
	watermark := s.now.Add(-24 * time.Hour)

	page := &domain.Page{
		Items: []domain.Track{
			{ExternalID: "t2", Title: "New", ArtistIDs: []string{"a1"}, AddedAt: s.now.Add(-time.Hour)},
			{ExternalID: "t1", Title: "Old", ArtistIDs: []string{"a1"}, AddedAt: watermark},
		},
		Size:    2,
		Total:   2,
		HasNext: true,
	}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().GetLatest(ctx, "user-1").Return(nil, nil)
	s.tracks.EXPECT().LatestAddedAt(ctx, "user-1").Return(&watermark, nil)
	s.runs.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			s.Equal(domain.SyncModeIncremental, run.Mode)
			s.Equal(watermark, *run.Watermark)
			return nil
		},
	)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(page, nil)
	s.artists.EXPECT().GetByIDs(ctx, []string{"a1"}).Return(map[string][]string{"a1": {"bebop"}}, nil)
	s.mappings.EXPECT().Effective(ctx, "user-1").Return(map[string]string{"bebop": "Jazz"}, nil)
	s.tracks.EXPECT().UpsertBatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tracks []domain.Track) (int, error) {
			s.Require().Len(tracks, 1)
			s.Equal("t2", tracks[0].ExternalID)
			s.Equal("user-1", tracks[0].UserID)
			s.Equal("run-1", tracks[0].LastRunID)
			s.Equal("Jazz", *tracks[0].Genre)
			return 1, nil
		},
	)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.True(result.Success)
	s.False(result.Paused)
	s.Equal(domain.SyncModeIncremental, result.Mode)
	s.Equal(2, result.TotalItems)
	s.Equal(1, result.ProcessedItems)
	s.Equal(1, result.NewItems)
	s.Equal(0, result.DeletedItems)
}

func (s *SyncServiceTestSuite) TestSync_FullPreservesGenresAndCountsDeletions() {
	ctx := context.Background()

	page := &domain.Page{
		Items:   []domain.Track{{ExternalID: "t1", Title: "Kept", ArtistIDs: []string{"a1"}, AddedAt: s.now}},
		Size:    1,
		Total:   1,
		HasNext: false,
	}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().GetLatest(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	s.txManager.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	s.tracks.EXPECT().ListGenres(ctx, "user-1", "", snapshotPageSize).Return(
		[]domain.TrackGenre{{ExternalID: "t1", Genre: "Rock"}}, nil,
	)
	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return([]string{"t1", "t9"}, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			s.True(run.Prepared)
			s.Equal(map[string]string{"t1": "Rock"}, run.PreservedGenres)
			return nil
		},
	)
	s.tracks.EXPECT().DeleteAllForUser(ctx, "user-1").Return(int64(2), nil)

	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(page, nil)
	s.artists.EXPECT().GetByIDs(ctx, []string{"a1"}).Return(map[string][]string{}, nil)
	s.source.EXPECT().FetchArtists(gomock.Any(), "tok", []string{"a1"}).Return(map[string][]string{"a1": {"bebop"}}, nil)
	s.artists.EXPECT().UpsertBatch(gomock.Any(), map[string][]string{"a1": {"bebop"}}).Return(nil)
	s.mappings.EXPECT().Effective(ctx, "user-1").Return(map[string]string{}, nil)
	s.tracks.EXPECT().ListSeenAmong(ctx, "user-1", "run-1", []string{"t1"}).Return(nil, nil)
	s.tracks.EXPECT().UpsertBatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tracks []domain.Track) (int, error) {
			s.Require().Len(tracks, 1)
			s.Equal("Rock", *tracks[0].Genre)
			return 1, nil
		},
	)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return([]string{"t1"}, nil)
	s.tracks.EXPECT().ListSeenInRun(ctx, "user-1", "run-1").Return([]string{"t1"}, nil)
	s.tracks.EXPECT().GetGenres(ctx, "user-1", []string{"t1"}).Return(map[string]*string{"t1": utils.Ptr("Rock")}, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			s.Equal(domain.SyncStatusCompleted, run.Status)
			s.NotNil(run.CompletedAt)
			return nil
		},
	)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{Full: true})

	s.NoError(err)
	s.True(result.Success)
	s.Equal(domain.SyncModeFull, result.Mode)
	s.Equal(0, result.NewItems)
	s.Equal(1, result.DeletedItems)
	s.Empty(result.VerificationWarnings)
}

func (s *SyncServiceTestSuite) TestSync_ResumesFromCheckpoint() {
	ctx := context.Background()

	run := s.activeRun(domain.SyncModeFull)
	run.Offset = 50
	run.Processed = 50
	run.Fetched = 50
	run.New = 3
	run.PriorExternalIDs = []string{"t51"}

	page := &domain.Page{
		Items:   []domain.Track{{ExternalID: "t51", AddedAt: s.now}, {ExternalID: "t52", AddedAt: s.now}},
		Offset:  50,
		Size:    2,
		Total:   52,
		HasNext: false,
	}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 50).Return(page, nil)
	s.tracks.EXPECT().ListSeenAmong(ctx, "user-1", "run-1", []string{"t51", "t52"}).Return(nil, nil)
	s.tracks.EXPECT().UpsertBatch(ctx, gomock.Any()).Return(2, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)
	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return([]string{"t51", "t52"}, nil)
	s.tracks.EXPECT().ListSeenInRun(ctx, "user-1", "run-1").Return([]string{"t51", "t52"}, nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.Equal(52, run.Offset)
	s.Equal(52, result.ProcessedItems)
	s.Equal(4, result.NewItems)
	s.Equal(0, result.DeletedItems)
	s.Equal(domain.SyncStatusCompleted, run.Status)
}

func (s *SyncServiceTestSuite) TestSync_PausesAtPageLimit() {
	s.cfg.MaxPagesPerRun = 1
	s.service = s.newService(s.publisher)
	ctx := context.Background()

	run := s.activeRun(domain.SyncModeFull)
	page := &domain.Page{
		Items:   []domain.Track{{ExternalID: "t1", AddedAt: s.now}},
		Size:    1,
		Total:   10,
		HasNext: true,
	}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(page, nil)
	s.tracks.EXPECT().ListSeenAmong(ctx, "user-1", "run-1", []string{"t1"}).Return(nil, nil)
	s.tracks.EXPECT().UpsertBatch(ctx, gomock.Any()).Return(1, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, result *domain.SyncResult) error {
			s.True(result.Paused)
			return nil
		},
	)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.True(result.Success)
	s.True(result.Paused)
	s.Equal(1, run.Offset)
	s.Equal(domain.SyncStatusInProgress, run.Status)
}

func (s *SyncServiceTestSuite) TestSync_SecondUnauthorizedFailsRun() {
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeIncremental)
	unauthorized := &domain.UpstreamError{Status: http.StatusUnauthorized}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(nil, unauthorized)
	s.tokens.EXPECT().ForceRefresh(ctx, s.conn).Return("tok2", nil)
	s.source.EXPECT().FetchPage(ctx, "tok2", 0).Return(nil, unauthorized)
	s.runs.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			s.Equal(domain.SyncStatusFailed, run.Status)
			s.Require().NotNil(run.Error)
			s.Contains(*run.Error, domain.ErrAuthExpired.Error())
			return nil
		},
	)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, result *domain.SyncResult) error {
			s.False(result.Success)
			return nil
		},
	)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.ErrorIs(err, domain.ErrAuthExpired)
	s.False(result.Success)
	s.NotEmpty(result.Error)
}

func (s *SyncServiceTestSuite) TestSync_RefreshRecoversFromUnauthorized() {
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeFull)

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(nil, &domain.UpstreamError{Status: http.StatusUnauthorized})
	s.tokens.EXPECT().ForceRefresh(ctx, s.conn).Return("tok2", nil)
	s.source.EXPECT().FetchPage(ctx, "tok2", 0).Return(&domain.Page{}, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)
	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return(nil, nil)
	s.tracks.EXPECT().ListSeenInRun(ctx, "user-1", "run-1").Return(nil, nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.True(result.Success)
	s.Equal(0, result.ProcessedItems)
}

func (s *SyncServiceTestSuite) TestSync_TransientUpstreamErrorKeepsRunResumable() {
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeFull)
	run.Offset = 100

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 100).Return(nil, &domain.UpstreamError{Status: http.StatusServiceUnavailable})

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.Error(err)
	s.True(domain.IsInterruption(err))
	s.False(result.Success)
	s.Equal(domain.SyncStatusInProgress, run.Status)
	s.Equal(100, run.Offset)
}

func (s *SyncServiceTestSuite) TestSync_TransientRefreshKeepsRunResumable() {
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeFull)

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("", &domain.TransientRefreshError{Err: errors.New("timeout")})

	_, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	var refreshErr *domain.TransientRefreshError
	s.True(errors.As(err, &refreshErr))
	s.Equal(domain.SyncStatusInProgress, run.Status)
}

func (s *SyncServiceTestSuite) TestSync_InvalidatedConnectionFailsRun() {
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeFull)

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("", domain.ErrConnectionInvalidated)
	s.runs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.ErrorIs(err, domain.ErrConnectionInvalidated)
	s.Contains(result.Message, "reconnect")
	s.Equal(domain.SyncStatusFailed, run.Status)
}

func (s *SyncServiceTestSuite) TestSync_WriterFailureFailsRun() {
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeFull)
	page := &domain.Page{
		Items: []domain.Track{{ExternalID: "t1", AddedAt: s.now}},
		Size:  1,
		Total: 1,
	}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(page, nil)
	s.tracks.EXPECT().ListSeenAmong(ctx, "user-1", "run-1", []string{"t1"}).Return(nil, nil)
	s.tracks.EXPECT().UpsertBatch(ctx, gomock.Any()).Return(0, errors.New("connection reset"))
	s.runs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	var writerErr *domain.WriterError
	s.True(errors.As(err, &writerErr))
	s.Equal(domain.SyncStatusFailed, run.Status)
	s.Equal(0, run.Offset)
}

func (s *SyncServiceTestSuite) TestSync_CancelledContextKeepsRunResumable() {
	ctx, cancel := context.WithCancel(context.Background())
	run := s.activeRun(domain.SyncModeFull)

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).DoAndReturn(
		func(ctx context.Context, _ string, _ int) (*domain.Page, error) {
			cancel()
			return nil, ctx.Err()
		},
	)

	_, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.ErrorIs(err, context.Canceled)
	s.Equal(domain.SyncStatusInProgress, run.Status)
}

func (s *SyncServiceTestSuite) TestSync_NoConnection() {
	ctx := context.Background()

	s.connections.EXPECT().Get(ctx, "user-1").Return(nil, domain.ErrNoConnection)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.ErrorIs(err, domain.ErrNoConnection)
	s.False(result.Success)
	s.Equal("user-1", result.UserID)
}

func (s *SyncServiceTestSuite) TestSync_LosesCreationRace() {
	ctx := context.Background()
	winner := s.activeRun(domain.SyncModeFull)
	winner.ID = "run-other"

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().GetLatest(ctx, "user-1").Return(nil, nil)
	s.tracks.EXPECT().LatestAddedAt(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(domain.ErrRunInProgress)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(winner, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(&domain.Page{}, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)
	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return(nil, nil)
	s.tracks.EXPECT().ListSeenInRun(ctx, "user-1", "run-other").Return(nil, nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.Equal("run-other", result.RunID)
}

func (s *SyncServiceTestSuite) TestSync_WithoutPublisher() {
	s.service = s.newService(nil)
	ctx := context.Background()
	run := s.activeRun(domain.SyncModeFull)

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 0).Return(&domain.Page{}, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)
	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return(nil, nil)
	s.tracks.EXPECT().ListSeenInRun(ctx, "user-1", "run-1").Return(nil, nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.True(result.Success)
}

func (s *SyncServiceTestSuite) TestSync_FailedFullRunStartsRecovery() {
	ctx := context.Background()

	failed := s.activeRun(domain.SyncModeFull)
	failed.ID = "run-0"
	failed.Status = domain.SyncStatusFailed
	failed.PreservedGenres = map[string]string{"t1": "Custom"}
	failed.PriorExternalIDs = []string{"t1", "t2"}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().GetLatest(ctx, "user-1").Return(failed, nil)
	s.runs.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			s.Equal(domain.SyncModeFull, run.Mode)
			s.Nil(run.Watermark)
			s.False(run.Prepared)
			s.Require().NotNil(run.RecoversRunID)
			s.Equal("run-0", *run.RecoversRunID)
			s.Equal(map[string]string{"t1": "Custom"}, run.PreservedGenres)
			s.Equal([]string{"t1", "t2"}, run.PriorExternalIDs)
			return errors.New("database unavailable")
		},
	)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.Error(err)
	s.False(result.Success)
}

func (s *SyncServiceTestSuite) TestSync_FailedIncrementalRunDoesNotRecover() {
	ctx := context.Background()
	watermark := s.now.Add(-time.Hour)

	failed := s.activeRun(domain.SyncModeIncremental)
	failed.Status = domain.SyncStatusFailed

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(nil, nil)
	s.runs.EXPECT().GetLatest(ctx, "user-1").Return(failed, nil)
	s.tracks.EXPECT().LatestAddedAt(ctx, "user-1").Return(&watermark, nil)
	s.runs.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			s.Equal(domain.SyncModeIncremental, run.Mode)
			s.Nil(run.RecoversRunID)
			return errors.New("database unavailable")
		},
	)

	_, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.Error(err)
}

func (s *SyncServiceTestSuite) TestSync_ReplayedTracksAreNotCountedAsNew() {
	ctx := context.Background()

	run := s.activeRun(domain.SyncModeFull)
	run.Offset = 2
	run.New = 2
	page := &domain.Page{
		Items:   []domain.Track{{ExternalID: "t2", AddedAt: s.now}, {ExternalID: "t3", AddedAt: s.now}},
		Offset:  2,
		Size:    2,
		Total:   4,
		HasNext: false,
	}

	s.connections.EXPECT().Get(ctx, "user-1").Return(s.conn, nil)
	s.runs.EXPECT().GetActive(ctx, "user-1").Return(run, nil)
	s.tokens.EXPECT().ValidToken(ctx, s.conn).Return("tok", nil)
	s.source.EXPECT().FetchPage(ctx, "tok", 2).Return(page, nil)
	s.tracks.EXPECT().ListSeenAmong(ctx, "user-1", "run-1", []string{"t2", "t3"}).Return([]string{"t2"}, nil)
	s.tracks.EXPECT().UpsertBatch(ctx, gomock.Any()).Return(1, nil)
	s.runs.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)
	s.tracks.EXPECT().ListExternalIDs(ctx, "user-1").Return([]string{"t1", "t2", "t3"}, nil)
	s.tracks.EXPECT().ListSeenInRun(ctx, "user-1", "run-1").Return([]string{"t1", "t2", "t3"}, nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	result, err := s.service.Sync(ctx, "user-1", domain.SyncOptions{})

	s.NoError(err)
	s.Equal(3, result.NewItems)
}
