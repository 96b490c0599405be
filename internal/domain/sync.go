package domain

import "time"

type SyncStatus string

const (
	SyncStatusInProgress SyncStatus = "in_progress"
	SyncStatusCompleted  SyncStatus = "completed"
	SyncStatusFailed     SyncStatus = "failed"
)

type SyncMode string

const (
	SyncModeFull        SyncMode = "full"
	SyncModeIncremental SyncMode = "incremental"
)

// SyncRun is the checkpoint of one sync run. At most one run per user is
// in progress at any time.
type SyncRun struct {
	ID        string
	UserID    string
	Status    SyncStatus
	Mode      SyncMode
	Offset    int
	Fetched   int
	Processed int
	New       int
	Deleted   int
	Total     *int
	// Watermark is the added_at of the newest stored track when an
	// incremental run was created. Nil for full runs.
	Watermark *time.Time
	// Prepared is set once a full run has snapshotted genres and cleared
	// the user's tracks.
	Prepared         bool
	// RecoversRunID names the failed full run whose genre snapshot and
	// prior ids this run carries over.
	RecoversRunID    *string
	PreservedGenres  map[string]string
	PriorExternalIDs []string
	Warnings         []string
	Error            *string
	StartedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

// SyncResult is what a single sync invocation reports to its caller.
type SyncResult struct {
	Success              bool     `json:"success"`
	Message              string   `json:"message,omitempty"`
	UserID               string   `json:"userId"`
	TotalItems           int      `json:"totalItems"`
	ProcessedItems       int      `json:"processedItems"`
	NewItems             int      `json:"newItems"`
	DeletedItems         int      `json:"deletedItems"`
	Mode                 SyncMode `json:"mode,omitempty"`
	RunID                string   `json:"runId,omitempty"`
	Paused               bool     `json:"paused,omitempty"`
	VerificationWarnings []string `json:"verificationWarnings,omitempty"`
	Error                string   `json:"error,omitempty"`
}

// SyncOptions controls a single sync invocation.
type SyncOptions struct {
	Full bool
}
