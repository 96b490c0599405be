package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"likesync/internal/domain"
)

const uniqueViolation = "23505"

// SyncRunStore persists sync run checkpoints.
type SyncRunStore struct {
	db *sqlx.DB
}

func NewSyncRunStore(db *sqlx.DB) *SyncRunStore {
	return &SyncRunStore{db: db}
}

type syncRunRow struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	Status           string         `db:"status"`
	Mode             string         `db:"mode"`
	LastOffset       int            `db:"last_offset"`
	FetchedCount     int            `db:"fetched_count"`
	ProcessedCount   int            `db:"processed_count"`
	NewCount         int            `db:"new_count"`
	DeletedCount     int            `db:"deleted_count"`
	TotalCount       sql.NullInt64  `db:"total_count"`
	Watermark        sql.NullTime   `db:"watermark"`
	Prepared         bool           `db:"prepared"`
	RecoversRunID    sql.NullString `db:"recovers_run_id"`
	PreservedGenres  types.JSONText `db:"preserved_genres"`
	PriorExternalIDs pq.StringArray `db:"prior_external_ids"`
	Warnings         pq.StringArray `db:"warnings"`
	ErrorMessage     sql.NullString `db:"error_message"`
	StartedAt        time.Time      `db:"started_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	CompletedAt      sql.NullTime   `db:"completed_at"`
}

const selectSyncRun = `
	SELECT id, user_id, status, mode, last_offset, fetched_count, processed_count,
		new_count, deleted_count, total_count, watermark, prepared, recovers_run_id,
		preserved_genres, prior_external_ids, warnings, error_message, started_at,
		updated_at, completed_at
	FROM sync_runs`

// GetActive returns the user's in-progress run, or nil when there is none.
func (s *SyncRunStore) GetActive(ctx context.Context, userID string) (*domain.SyncRun, error) {
	return s.getOne(ctx, selectSyncRun+" WHERE user_id = $1 AND status = 'in_progress'", userID)
}

// GetLatest returns the user's most recently started run, or nil.
func (s *SyncRunStore) GetLatest(ctx context.Context, userID string) (*domain.SyncRun, error) {
	return s.getOne(ctx, selectSyncRun+" WHERE user_id = $1 ORDER BY started_at DESC LIMIT 1", userID)
}

func (s *SyncRunStore) getOne(ctx context.Context, query string, args ...interface{}) (*domain.SyncRun, error) {
	var row syncRunRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// Create inserts a new run. It returns domain.ErrRunInProgress when the user
// already has an in-progress run.
func (s *SyncRunStore) Create(ctx context.Context, run *domain.SyncRun) error {
	row, err := fromDomain(run)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sync_runs (
			id, user_id, status, mode, last_offset, fetched_count, processed_count,
			new_count, deleted_count, total_count, watermark, prepared, recovers_run_id,
			preserved_genres, prior_external_ids, warnings, error_message, started_at,
			updated_at, completed_at
		) VALUES (
			:id, :user_id, :status, :mode, :last_offset, :fetched_count, :processed_count,
			:new_count, :deleted_count, :total_count, :watermark, :prepared, :recovers_run_id,
			:preserved_genres, :prior_external_ids, :warnings, :error_message, :started_at,
			:updated_at, :completed_at
		)`

	_, err = sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, row)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrRunInProgress
	}
	return err
}

// Save overwrites the mutable checkpoint fields of run.
func (s *SyncRunStore) Save(ctx context.Context, run *domain.SyncRun) error {
	run.UpdatedAt = time.Now().UTC()
	row, err := fromDomain(run)
	if err != nil {
		return err
	}

	query := `
		UPDATE sync_runs SET
			status = :status,
			last_offset = :last_offset,
			fetched_count = :fetched_count,
			processed_count = :processed_count,
			new_count = :new_count,
			deleted_count = :deleted_count,
			total_count = :total_count,
			prepared = :prepared,
			preserved_genres = :preserved_genres,
			prior_external_ids = :prior_external_ids,
			warnings = :warnings,
			error_message = :error_message,
			updated_at = :updated_at,
			completed_at = :completed_at
		WHERE id = :id`

	res, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, row)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("sync run %s not found", run.ID)
	}
	return nil
}

func fromDomain(run *domain.SyncRun) (*syncRunRow, error) {
	preserved := run.PreservedGenres
	if preserved == nil {
		preserved = map[string]string{}
	}
	genres, err := json.Marshal(preserved)
	if err != nil {
		return nil, fmt.Errorf("marshal preserved genres: %w", err)
	}

	row := &syncRunRow{
		ID:               run.ID,
		UserID:           run.UserID,
		Status:           string(run.Status),
		Mode:             string(run.Mode),
		LastOffset:       run.Offset,
		FetchedCount:     run.Fetched,
		ProcessedCount:   run.Processed,
		NewCount:         run.New,
		DeletedCount:     run.Deleted,
		Prepared:         run.Prepared,
		PreservedGenres:  types.JSONText(genres),
		PriorExternalIDs: pq.StringArray(nonNil(run.PriorExternalIDs)),
		Warnings:         pq.StringArray(nonNil(run.Warnings)),
		StartedAt:        run.StartedAt,
		UpdatedAt:        run.UpdatedAt,
	}
	if run.Total != nil {
		row.TotalCount = sql.NullInt64{Int64: int64(*run.Total), Valid: true}
	}
	if run.Watermark != nil {
		row.Watermark = sql.NullTime{Time: *run.Watermark, Valid: true}
	}
	if run.RecoversRunID != nil {
		row.RecoversRunID = sql.NullString{String: *run.RecoversRunID, Valid: true}
	}
	if run.Error != nil {
		row.ErrorMessage = sql.NullString{String: *run.Error, Valid: true}
	}
	if run.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *run.CompletedAt, Valid: true}
	}
	return row, nil
}

func (r *syncRunRow) toDomain() (*domain.SyncRun, error) {
	run := &domain.SyncRun{
		ID:               r.ID,
		UserID:           r.UserID,
		Status:           domain.SyncStatus(r.Status),
		Mode:             domain.SyncMode(r.Mode),
		Offset:           r.LastOffset,
		Fetched:          r.FetchedCount,
		Processed:        r.ProcessedCount,
		New:              r.NewCount,
		Deleted:          r.DeletedCount,
		Prepared:         r.Prepared,
		PriorExternalIDs: []string(r.PriorExternalIDs),
		Warnings:         []string(r.Warnings),
		StartedAt:        r.StartedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	run.PreservedGenres = map[string]string{}
	if len(r.PreservedGenres) > 0 {
		if err := r.PreservedGenres.Unmarshal(&run.PreservedGenres); err != nil {
			return nil, fmt.Errorf("unmarshal preserved genres: %w", err)
		}
	}
	if r.TotalCount.Valid {
		total := int(r.TotalCount.Int64)
		run.Total = &total
	}
	if r.Watermark.Valid {
		w := r.Watermark.Time.UTC()
		run.Watermark = &w
	}
	if r.RecoversRunID.Valid {
		id := r.RecoversRunID.String
		run.RecoversRunID = &id
	}
	if r.ErrorMessage.Valid {
		msg := r.ErrorMessage.String
		run.Error = &msg
	}
	if r.CompletedAt.Valid {
		c := r.CompletedAt.Time
		run.CompletedAt = &c
	}
	return run, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
