package briefing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/internal/domain/repositories"
	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/briefing-assistant/internal/usecase/errors"
)

// Service is the request-facing briefing use case: enqueue generation jobs
// and serve briefing records and meeting snapshots to pollers.
type Service interface {
	GenerateBriefing(ctx context.Context, ownerID, meetingID string, settings entities.EnrichmentSettings) (uuid.UUID, error)
	GetBriefing(ctx context.Context, ownerID, meetingID string) (*entities.BriefingRecord, error)
	ListMeetings(ctx context.Context, ownerID string, from, to time.Time) ([]entities.Meeting, error)
}

type service struct {
	jobs        repositories.JobRepository
	briefings   repositories.BriefingRepository
	meetings    repositories.MeetingRepository
	cache       *cache.Service
	cacheTTL    time.Duration
	maxAttempts int
	logger      *zap.Logger
}

// NewService creates the briefing service. maxAttempts <= 0 falls back to the
// default attempt cap.
func NewService(
	jobs repositories.JobRepository,
	briefings repositories.BriefingRepository,
	meetings repositories.MeetingRepository,
	cacheService *cache.Service,
	cacheTTL time.Duration,
	maxAttempts int,
	logger *zap.Logger,
) Service {
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultTTL
	}
	return &service{
		jobs:        jobs,
		briefings:   briefings,
		meetings:    meetings,
		cache:       cacheService,
		cacheTTL:    cacheTTL,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// GenerateBriefing enqueues a briefing generation job for the meeting and
// returns the job ID synchronously. A resubmission while a job for the same
// (owner, meeting) pair is live returns the live job's ID instead of creating
// a duplicate.
func (s *service) GenerateBriefing(ctx context.Context, ownerID, meetingID string, settings entities.EnrichmentSettings) (uuid.UUID, error) {
	if ownerID == "" {
		return uuid.Nil, usecaseErrors.ErrOwnerRequired
	}
	if meetingID == "" {
		return uuid.Nil, usecaseErrors.ErrInvalidInput
	}

	meeting, err := s.meetings.Get(ctx, ownerID, meetingID)
	if err != nil {
		return uuid.Nil, err
	}
	if meeting == nil {
		return uuid.Nil, usecaseErrors.ErrMeetingNotFound
	}

	settings.Normalize()

	newJob := entities.NewBriefingJob(ownerID, meetingID, settings)
	if s.maxAttempts > 0 {
		newJob.MaxAttempts = s.maxAttempts
	}

	job, err := s.jobs.Enqueue(ctx, newJob)
	if err != nil {
		s.logger.Error("❌ Failed to enqueue briefing job",
			zap.String("owner_id", ownerID),
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		return uuid.Nil, usecaseErrors.ErrQueueUnavailable
	}

	// Deduplicated onto an existing live job: that job's submission already
	// reset the record, so touching it again could flip a record the live job
	// just finalized back to processing
	if job.ID != newJob.ID {
		return job.ID, nil
	}

	// Create or reset the record under the same key; regeneration transitions
	// a completed/failed record back to processing
	patch := entities.BriefingPatch{
		Status: entities.StatusPtr(entities.BriefingStatusProcessing),
		JobID:  entities.StringPtr(job.ID.String()),
	}
	if err := s.briefings.Upsert(ctx, ownerID, meetingID, patch); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("🔄 Briefing job enqueued",
		zap.String("owner_id", ownerID),
		zap.String("meeting_id", meetingID),
		zap.String("job_id", job.ID.String()),
		zap.String("quality", string(settings.BriefingQuality)),
	)
	return job.ID, nil
}

// GetBriefing returns the current briefing record for polling
func (s *service) GetBriefing(ctx context.Context, ownerID, meetingID string) (*entities.BriefingRecord, error) {
	if ownerID == "" {
		return nil, usecaseErrors.ErrOwnerRequired
	}

	record, err := s.briefings.Get(ctx, ownerID, meetingID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, usecaseErrors.ErrBriefingNotFound
	}
	return record, nil
}

// ListMeetings returns the owner's meeting snapshots in a time range with a
// read-through cache. Staleness is evaluated against the entry's write time,
// so a long-lived store entry past the TTL is bypassed, not served.
func (s *service) ListMeetings(ctx context.Context, ownerID string, from, to time.Time) ([]entities.Meeting, error) {
	if ownerID == "" {
		return nil, usecaseErrors.ErrOwnerRequired
	}

	key := cache.BuildKey("meetings", ownerID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	var cached []entities.Meeting
	if storedAt, hit := s.cache.Get(ctx, key, &cached); hit {
		if time.Since(storedAt) <= s.cacheTTL {
			return cached, nil
		}
	}

	meetings, err := s.meetings.ListByRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, meetings, s.cacheTTL)
	return meetings, nil
}
