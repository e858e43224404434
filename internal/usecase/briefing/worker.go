package briefing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/internal/domain/repositories"
	"github.com/johnquangdev/briefing-assistant/pkg/config"
	"github.com/johnquangdev/briefing-assistant/pkg/jobcontext"
)

// Observer receives job lifecycle notifications for logging/metrics
type Observer interface {
	OnCompleted(jobID uuid.UUID)
	OnFailed(jobID uuid.UUID, err error)
}

// LogObserver is the default observer, logging lifecycle events via zap
type LogObserver struct {
	Logger *zap.Logger
}

func (o *LogObserver) OnCompleted(jobID uuid.UUID) {
	o.Logger.Info("✅ Briefing job completed", zap.String("job_id", jobID.String()))
}

func (o *LogObserver) OnFailed(jobID uuid.UUID, err error) {
	o.Logger.Error("❌ Briefing job failed", zap.String("job_id", jobID.String()), zap.Error(err))
}

// PipelineRunner executes one job's enrichment pipeline
type PipelineRunner interface {
	Run(ctx context.Context, job *entities.BriefingJob) error
}

// WorkerPool services the durable job queue with a bounded number of parallel
// workers. A rolling-window rate limiter caps how many pipeline executions may
// start per minute, independent of the concurrency cap, so a full queue cannot
// burst-overload the downstream providers.
type WorkerPool struct {
	jobs      repositories.JobRepository
	briefings repositories.BriefingRepository
	pipeline  PipelineRunner
	cfg       config.WorkerConfig
	limiter   *rate.Limiter
	observer  Observer
	logger    *zap.Logger

	mu        sync.Mutex
	isRunning bool
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewWorkerPool creates a worker pool. A nil observer defaults to LogObserver.
func NewWorkerPool(
	jobs repositories.JobRepository,
	briefings repositories.BriefingRepository,
	pipeline PipelineRunner,
	cfg config.WorkerConfig,
	observer Observer,
	logger *zap.Logger,
) *WorkerPool {
	if observer == nil {
		observer = &LogObserver{Logger: logger}
	}
	return &WorkerPool{
		jobs:      jobs,
		briefings: briefings,
		pipeline:  pipeline,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(float64(cfg.MaxStartsPerMinute)/60.0), 1),
		observer:  observer,
		logger:    logger,
	}
}

// Start launches the worker goroutines and the completed-job prune loop
func (wp *WorkerPool) Start(ctx context.Context) error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.isRunning {
		return fmt.Errorf("worker pool already running")
	}

	wp.isRunning = true
	wp.stopChan = make(chan struct{})

	wp.logger.Info("🚀 Starting briefing worker pool",
		zap.Int("worker_count", wp.cfg.Concurrency),
		zap.Int("max_starts_per_minute", wp.cfg.MaxStartsPerMinute),
	)

	for i := 0; i < wp.cfg.Concurrency; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}

	wp.wg.Add(1)
	go wp.pruneWorker(ctx)

	return nil
}

// Stop gracefully stops all worker goroutines. In-flight jobs run to
// completion; there is no mid-flight cancel.
func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.isRunning {
		return fmt.Errorf("worker pool not running")
	}

	wp.logger.Info("🛑 Stopping briefing worker pool...")

	close(wp.stopChan)
	wp.wg.Wait()
	wp.isRunning = false

	wp.logger.Info("✅ Briefing worker pool stopped")
	return nil
}

// worker polls for due jobs, claims one atomically and runs its pipeline
func (wp *WorkerPool) worker(parentCtx context.Context, workerID int) {
	defer wp.wg.Done()

	ticker := time.NewTicker(wp.cfg.PollInterval)
	defer ticker.Stop()

	wp.logger.Info("👷 Worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-wp.stopChan:
			wp.logger.Info("👷 Worker stopping", zap.Int("worker_id", workerID))
			return

		case <-ticker.C:
			due, err := wp.jobs.GetDueJobs(parentCtx, wp.cfg.Concurrency)
			if err != nil {
				wp.logger.Error("❌ Failed to poll jobs",
					zap.Int("worker_id", workerID), zap.Error(err))
				continue
			}
			if len(due) == 0 {
				continue
			}

			// Wait for a start slot before claiming so a claimed job never
			// sits idle behind the rate limiter
			if err := wp.waitForStartSlot(parentCtx); err != nil {
				continue
			}

			// Atomically claim the first available job; losing the race to
			// another worker is normal
			claimed := wp.claimFirst(parentCtx, due, workerID)
			if claimed == nil {
				continue
			}

			wp.runJob(parentCtx, claimed, workerID)
		}
	}
}

// waitForStartSlot blocks on the rolling-window limiter until a job execution
// may start, aborting early on shutdown
func (wp *WorkerPool) waitForStartSlot(parentCtx context.Context) error {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	go func() {
		select {
		case <-wp.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return wp.limiter.Wait(ctx)
}

func (wp *WorkerPool) claimFirst(ctx context.Context, due []entities.BriefingJob, workerID int) *entities.BriefingJob {
	for i := range due {
		claimed, err := wp.jobs.ClaimJob(ctx, due[i].ID)
		if err != nil {
			wp.logger.Error("❌ Failed to claim job",
				zap.String("job_id", due[i].ID.String()), zap.Error(err))
			continue
		}
		if claimed == nil {
			// Another worker got there first
			continue
		}

		wp.logger.Info("👷 Worker claimed job",
			zap.Int("worker_id", workerID),
			zap.String("job_id", claimed.ID.String()),
			zap.String("dedup_key", claimed.DedupKey),
			zap.Int("attempt", claimed.AttemptCount),
		)
		return claimed
	}
	return nil
}

// runJob executes one claimed job to completion, retry scheduling or terminal
// failure
func (wp *WorkerPool) runJob(parentCtx context.Context, job *entities.BriefingJob, workerID int) {
	jobCtx, cancel := jobcontext.JobBegin(parentCtx, job.ID, job.DedupKey, workerID, job.AttemptCount, wp.cfg.JobTimeout)
	defer cancel()

	err := jobcontext.Execute(jobCtx, func(ctx context.Context) error {
		return wp.pipeline.Run(ctx, job)
	})

	if err == nil {
		if markErr := wp.jobs.MarkCompleted(parentCtx, job.ID); markErr != nil {
			wp.logger.Error("❌ Failed to mark job completed",
				zap.String("job_id", job.ID.String()), zap.Error(markErr))
		}
		wp.observer.OnCompleted(job.ID)
		return
	}

	if jobcontext.IsNonRetryableError(err) || job.AttemptsExhausted() {
		wp.failJob(parentCtx, job, err)
		return
	}

	delay := jobcontext.CalculateBackoff(job.AttemptCount, wp.cfg.BackoffBase)
	if retryErr := wp.jobs.ScheduleRetry(parentCtx, job.ID, err.Error(), delay); retryErr != nil {
		wp.logger.Error("❌ Failed to schedule retry",
			zap.String("job_id", job.ID.String()), zap.Error(retryErr))
		return
	}

	wp.logger.Warn("🔄 Job scheduled for retry",
		zap.String("job_id", job.ID.String()),
		zap.Int("attempt", job.AttemptCount),
		zap.Int("max_attempts", job.MaxAttempts),
		zap.Duration("delay", delay),
		zap.Error(err),
	)
}

// failJob finalizes a job and its briefing record after a permanent error or
// exhausted attempts. Earlier stages' partial results remain intact.
func (wp *WorkerPool) failJob(ctx context.Context, job *entities.BriefingJob, cause error) {
	if err := wp.jobs.MarkFailed(ctx, job.ID, cause.Error()); err != nil {
		wp.logger.Error("❌ Failed to mark job failed",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	patch := entities.BriefingPatch{
		Status: entities.StatusPtr(entities.BriefingStatusFailed),
		Error:  entities.StringPtr(cause.Error()),
	}
	if err := wp.briefings.Upsert(ctx, job.OwnerID, job.MeetingID, patch); err != nil {
		wp.logger.Error("❌ Failed to update briefing record after job failure",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	wp.observer.OnFailed(job.ID, cause)
}

// pruneWorker periodically removes old completed jobs. Failed jobs are kept
// for inspection until explicitly cleared.
func (wp *WorkerPool) pruneWorker(ctx context.Context) {
	defer wp.wg.Done()

	ticker := time.NewTicker(wp.cfg.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-wp.stopChan:
			wp.logger.Info("👷 Prune worker stopping")
			return

		case <-ticker.C:
			pruned, err := wp.jobs.PruneCompleted(ctx, wp.cfg.PruneAge, wp.cfg.PruneKeep)
			if err != nil {
				wp.logger.Error("❌ Failed to prune completed jobs", zap.Error(err))
				continue
			}
			if pruned > 0 {
				wp.logger.Info("🔄 Pruned completed jobs", zap.Int64("count", pruned))
			}
		}
	}
}
