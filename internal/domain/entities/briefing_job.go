package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BriefingJobStatus represents the status of a briefing generation job
type BriefingJobStatus string

const (
	BriefingJobStatusQueued    BriefingJobStatus = "queued"    // Waiting for a worker
	BriefingJobStatusRunning   BriefingJobStatus = "running"   // Claimed by a worker
	BriefingJobStatusRetrying  BriefingJobStatus = "retrying"  // Failed, scheduled for another attempt
	BriefingJobStatusCompleted BriefingJobStatus = "completed" // Pipeline finished
	BriefingJobStatusFailed    BriefingJobStatus = "failed"    // Attempts exhausted or permanent error
)

// DefaultMaxAttempts is the total attempt cap per job, including the first run
const DefaultMaxAttempts = 5

// BriefingJob is one durable briefing generation job. The dedup key guarantees
// at most one live job per (owner, meeting) pair.
type BriefingJob struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID   string            `json:"owner_id" gorm:"type:varchar(128);not null;index"`
	MeetingID string            `json:"meeting_id" gorm:"type:varchar(255);not null"`
	DedupKey  string            `json:"dedup_key" gorm:"type:varchar(512);not null;index"`
	Status    BriefingJobStatus `json:"status" gorm:"type:varchar(20);not null;index;default:'queued'"`

	Settings datatypes.JSONType[EnrichmentSettings] `json:"settings" gorm:"type:jsonb"`

	AttemptCount int     `json:"attempt_count" gorm:"type:integer;default:0"`
	MaxAttempts  int     `json:"max_attempts" gorm:"type:integer;default:5"`
	LastError    *string `json:"last_error,omitempty" gorm:"type:text"`

	NextRunAt   time.Time  `json:"next_run_at" gorm:"not null;index"`
	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// DedupKeyFor derives the deterministic dedup key for an (owner, meeting) pair
func DedupKeyFor(ownerID, meetingID string) string {
	return fmt.Sprintf("%s:%s:briefing", ownerID, meetingID)
}

// NewBriefingJob creates a new queued briefing job
func NewBriefingJob(ownerID, meetingID string, settings EnrichmentSettings) *BriefingJob {
	settings.Normalize()
	now := time.Now()
	return &BriefingJob{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		MeetingID:   meetingID,
		DedupKey:    DedupKeyFor(ownerID, meetingID),
		Status:      BriefingJobStatusQueued,
		Settings:    datatypes.NewJSONType(settings),
		MaxAttempts: DefaultMaxAttempts,
		NextRunAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsLive reports whether the job occupies its dedup slot
func (j *BriefingJob) IsLive() bool {
	switch j.Status {
	case BriefingJobStatusQueued, BriefingJobStatusRunning, BriefingJobStatusRetrying:
		return true
	}
	return false
}

// AttemptsExhausted reports whether the attempt cap has been reached
func (j *BriefingJob) AttemptsExhausted() bool {
	return j.AttemptCount >= j.MaxAttempts
}

// MarkRunning marks the job as claimed by a worker and counts the attempt
func (j *BriefingJob) MarkRunning() {
	j.Status = BriefingJobStatusRunning
	j.AttemptCount++
	now := time.Now()
	if j.StartedAt == nil {
		j.StartedAt = &now
	}
	j.UpdatedAt = now
}

// ScheduleRetry records the failure and delays the next attempt
func (j *BriefingJob) ScheduleRetry(errMsg string, delay time.Duration) {
	j.Status = BriefingJobStatusRetrying
	j.LastError = &errMsg
	now := time.Now()
	j.NextRunAt = now.Add(delay)
	j.UpdatedAt = now
}

// MarkCompleted marks the job as completed successfully
func (j *BriefingJob) MarkCompleted() {
	j.Status = BriefingJobStatusCompleted
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkFailed marks the job as terminally failed
func (j *BriefingJob) MarkFailed(errMsg string) {
	j.Status = BriefingJobStatusFailed
	j.LastError = &errMsg
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// TableName specifies the table name for GORM
func (BriefingJob) TableName() string {
	return "briefing_jobs"
}
