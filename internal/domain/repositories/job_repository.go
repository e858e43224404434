package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// JobRepository is the durable, deduplicated briefing job queue.
type JobRepository interface {
	// Enqueue submits a job. If a live job with the same dedup key already
	// exists, the existing job is returned instead of creating a new one.
	Enqueue(ctx context.Context, job *entities.BriefingJob) (*entities.BriefingJob, error)

	GetByID(ctx context.Context, jobID uuid.UUID) (*entities.BriefingJob, error)
	GetLiveByDedupKey(ctx context.Context, dedupKey string) (*entities.BriefingJob, error)

	// GetDueJobs returns queued/retrying jobs whose next_run_at has passed
	GetDueJobs(ctx context.Context, limit int) ([]entities.BriefingJob, error)

	// ClaimJob atomically transitions a due job to running and counts the
	// attempt. Returns nil when another worker already claimed it.
	ClaimJob(ctx context.Context, jobID uuid.UUID) (*entities.BriefingJob, error)

	ScheduleRetry(ctx context.Context, jobID uuid.UUID, errMsg string, delay time.Duration) error
	MarkCompleted(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error

	// PruneCompleted removes completed jobs older than maxAge, always keeping
	// the most recent keepCount. Failed jobs are retained until ClearFailed.
	PruneCompleted(ctx context.Context, maxAge time.Duration, keepCount int) (int64, error)
	ClearFailed(ctx context.Context) (int64, error)
}
