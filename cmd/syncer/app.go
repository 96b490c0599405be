package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"likesync/internal/auth"
	"likesync/internal/config"
	"likesync/internal/publisher"
	"likesync/internal/service"
	"likesync/internal/source/spotify"
	"likesync/internal/storage/postgres"
)

// app holds the wired components shared by the subcommands.
type app struct {
	db          *sqlx.DB
	connections *postgres.ConnectionStore
	runs        *postgres.SyncRunStore
	sync        *service.SyncService
	publisher   *publisher.RabbitMQ
	logger      *slog.Logger
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	a := &app{db: db, logger: logger}

	// the service takes a nil Publisher when events are disabled
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		a.publisher = rabbitMQ
		pub = rabbitMQ
	}

	// Initialize stores
	a.connections = postgres.NewConnectionStore(db)
	a.runs = postgres.NewSyncRunStore(db)
	trackStore := postgres.NewTrackStore(db)
	artistStore := postgres.NewArtistGenreStore(db)
	mappingStore := postgres.NewGenreMappingStore(db)
	txManager := postgres.NewTransactionManager(db)

	source := spotify.New(spotify.Config{
		BaseURL:        cfg.API.BaseURL,
		PageSize:       cfg.API.PageSize,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
	}, logger)

	tokens := auth.NewProvider(
		auth.NewHTTPRefresher(cfg.API.AccountsURL, cfg.API.ClientID, cfg.API.ClientSecret, cfg.API.Timeout),
		a.connections,
		cfg.Sync.TokenRefreshSkew,
		logger,
	)

	resolver := service.NewGenreResolver(
		source,
		artistStore,
		mappingStore,
		cfg.API.ArtistBatchSize,
		cfg.Sync.EnrichmentConcurrency,
		logger,
	)

	a.sync = service.NewSyncService(
		a.connections,
		tokens,
		source,
		trackStore,
		a.runs,
		resolver,
		txManager,
		pub,
		logger,
		cfg.Sync,
	)

	return a, nil
}

func (a *app) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close publisher", "error", err)
		}
	}
	a.db.Close()
}
