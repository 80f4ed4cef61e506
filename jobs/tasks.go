// Package jobs contains the background task definitions and the Asynq
// worker wiring.
package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyhall/studyhall/internal/content"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsPurge removes expired session audit rows from postgres.
	// Redis expires the live entries itself; this keeps the audit table
	// from growing unbounded.
	TaskSessionsPurge = "sessions:purge"
	// TaskContentReindex rebuilds the content store cache from disk.
	TaskContentReindex = "content:reindex"
)

// NewSessionsPurgeTask constructs an Asynq task.
func NewSessionsPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskSessionsPurge, nil)
}

// NewContentReindexTask constructs an Asynq task.
func NewContentReindexTask() *asynq.Task {
	return asynq.NewTask(TaskContentReindex, nil)
}

// NewSessionsPurgeHandler returns the handler for TaskSessionsPurge.
func NewSessionsPurgeHandler(pool *pgxpool.Pool, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tag, err := pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
		if err != nil {
			return err
		}
		logger.Info("purged expired sessions", slog.Int64("rows", tag.RowsAffected()))
		return nil
	}
}

// NewContentReindexHandler returns the handler for TaskContentReindex.
func NewContentReindexHandler(store *content.Store, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		count, err := store.Reindex(ctx)
		if err != nil {
			return err
		}
		logger.Info("content reindexed", slog.Int("documents", count))
		return nil
	}
}
