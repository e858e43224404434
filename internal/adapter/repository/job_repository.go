package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

var liveJobStatuses = []entities.BriefingJobStatus{
	entities.BriefingJobStatusQueued,
	entities.BriefingJobStatusRunning,
	entities.BriefingJobStatusRetrying,
}

// JobRepository handles briefing job queue operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Enqueue submits a job, deduplicating on the dedup key: if a live job with
// the same key exists, that job is returned and no new row is created.
func (r *JobRepository) Enqueue(ctx context.Context, job *entities.BriefingJob) (*entities.BriefingJob, error) {
	if job == nil {
		return nil, errors.New("job cannot be nil")
	}

	var result *entities.BriefingJob
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.BriefingJob
		err := tx.Where("dedup_key = ? AND status IN ?", job.DedupKey, liveJobStatuses).
			Order("created_at DESC").
			First(&existing).Error
		if err == nil {
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(job).Error; err != nil {
			return err
		}
		result = job
		return nil
	})
	if err != nil {
		// Losing the insert race to a concurrent enqueue means the live job
		// now exists; resolve to it instead of failing the caller.
		if strings.Contains(err.Error(), "duplicate key") {
			return r.GetLiveByDedupKey(ctx, job.DedupKey)
		}
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (*entities.BriefingJob, error) {
	var job entities.BriefingJob
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetLiveByDedupKey retrieves the live job occupying a dedup slot, if any
func (r *JobRepository) GetLiveByDedupKey(ctx context.Context, dedupKey string) (*entities.BriefingJob, error) {
	var job entities.BriefingJob
	if err := r.db.WithContext(ctx).
		Where("dedup_key = ? AND status IN ?", dedupKey, liveJobStatuses).
		Order("created_at DESC").
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetDueJobs retrieves queued/retrying jobs whose next_run_at has passed
func (r *JobRepository) GetDueJobs(ctx context.Context, limit int) ([]entities.BriefingJob, error) {
	if limit == 0 {
		limit = 10
	}
	var jobs []entities.BriefingJob
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND next_run_at <= ?",
			[]entities.BriefingJobStatus{entities.BriefingJobStatusQueued, entities.BriefingJobStatusRetrying},
			time.Now()).
		Order("next_run_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ClaimJob atomically transitions a due job to running and counts the attempt.
// Only one worker succeeds if multiple workers see the same job; the others
// get nil.
func (r *JobRepository) ClaimJob(ctx context.Context, jobID uuid.UUID) (*entities.BriefingJob, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.BriefingJob{}).
		Where("id = ? AND status IN ?", jobID,
			[]entities.BriefingJobStatus{entities.BriefingJobStatusQueued, entities.BriefingJobStatusRetrying}).
		Updates(map[string]interface{}{
			"status":        entities.BriefingJobStatusRunning,
			"attempt_count": gorm.Expr("attempt_count + 1"),
			"started_at":    gorm.Expr("COALESCE(started_at, ?)", now),
			"updated_at":    now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, jobID)
}

// ScheduleRetry records the failure and delays the next attempt
func (r *JobRepository) ScheduleRetry(ctx context.Context, jobID uuid.UUID, errMsg string, delay time.Duration) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.BriefingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":      entities.BriefingJobStatusRetrying,
			"last_error":  errMsg,
			"next_run_at": now.Add(delay),
			"updated_at":  now,
		}).Error
}

// MarkCompleted marks a job as completed successfully
func (r *JobRepository) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.BriefingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.BriefingJobStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// MarkFailed marks a job as terminally failed with error message
func (r *JobRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.BriefingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.BriefingJobStatusFailed,
			"last_error":   errMsg,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// PruneCompleted removes completed jobs older than maxAge, keeping the most
// recent keepCount regardless of age. Failed jobs are never pruned here.
func (r *JobRepository) PruneCompleted(ctx context.Context, maxAge time.Duration, keepCount int) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	keep := r.db.Model(&entities.BriefingJob{}).
		Select("id").
		Where("status = ?", entities.BriefingJobStatusCompleted).
		Order("completed_at DESC").
		Limit(keepCount)

	result := r.db.WithContext(ctx).
		Where("status = ? AND completed_at < ? AND id NOT IN (?)",
			entities.BriefingJobStatusCompleted, cutoff, keep).
		Delete(&entities.BriefingJob{})
	return result.RowsAffected, result.Error
}

// ClearFailed removes failed job records after inspection
func (r *JobRepository) ClearFailed(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ?", entities.BriefingJobStatusFailed).
		Delete(&entities.BriefingJob{})
	return result.RowsAffected, result.Error
}
