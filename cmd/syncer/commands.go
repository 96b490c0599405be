package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"likesync/internal/domain"
	"likesync/internal/scheduler"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync every connected user on a fixed interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, logger)
			if err != nil {
				logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			sched := scheduler.NewScheduler(a.sync, a.connections, cfg.Sync.Interval, cfg.Sync.RunTimeout, logger)

			logger.Info("starting library syncer",
				"interval", cfg.Sync.Interval,
				"max_pages_per_run", cfg.Sync.MaxPagesPerRun,
				"events", cfg.RabbitMQ.Enabled,
			)

			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler error", "error", err)
				return err
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
}

func newSyncCmd(configPath *string) *cobra.Command {
	var (
		userID string
		full   bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Start or resume one sync run for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, logger)
			if err != nil {
				logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			if cfg.Sync.RunTimeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, cfg.Sync.RunTimeout)
				defer cancel()
			}

			result, syncErr := a.sync.Sync(ctx, userID, domain.SyncOptions{Full: full})
			if err := printJSON(result); err != nil {
				return err
			}
			return syncErr
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user to sync")
	cmd.Flags().BoolVar(&full, "full", false, "rebuild the library from scratch instead of fetching new tracks only")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newStatusCmd(configPath *string) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest sync run of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, logger)
			if err != nil {
				logger.Error("failed to start", "error", err)
				return err
			}
			defer a.Close()

			run, err := a.runs.GetLatest(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("load latest run: %w", err)
			}
			if run == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "no sync runs for user %s\n", userID)
				return nil
			}
			return printJSON(runStatus(run))
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user to inspect")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// statusView is the status command's output. Snapshot fields are reported
// as counts.
type statusView struct {
	ID              string            `json:"id"`
	Status          domain.SyncStatus `json:"status"`
	Mode            domain.SyncMode   `json:"mode"`
	Offset          int               `json:"offset"`
	Total           *int              `json:"total,omitempty"`
	Fetched         int               `json:"fetched"`
	Processed       int               `json:"processed"`
	New             int               `json:"new"`
	Deleted         int               `json:"deleted"`
	RecoversRunID   *string           `json:"recoversRunId,omitempty"`
	PreservedGenres int               `json:"preservedGenres"`
	Warnings        []string          `json:"warnings,omitempty"`
	Error           *string           `json:"error,omitempty"`
	StartedAt       string            `json:"startedAt"`
	CompletedAt     *string           `json:"completedAt,omitempty"`
}

func runStatus(run *domain.SyncRun) statusView {
	view := statusView{
		ID:              run.ID,
		Status:          run.Status,
		Mode:            run.Mode,
		Offset:          run.Offset,
		Total:           run.Total,
		Fetched:         run.Fetched,
		Processed:       run.Processed,
		New:             run.New,
		Deleted:         run.Deleted,
		RecoversRunID:   run.RecoversRunID,
		PreservedGenres: len(run.PreservedGenres),
		Warnings:        run.Warnings,
		Error:           run.Error,
		StartedAt:       run.StartedAt.Format(time.RFC3339),
	}
	if run.CompletedAt != nil {
		completed := run.CompletedAt.Format(time.RFC3339)
		view.CompletedAt = &completed
	}
	return view
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
