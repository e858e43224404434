package briefing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/pkg/ai"
)

// fakeBriefingRepo is an in-memory result store applying field-merge patches
type fakeBriefingRepo struct {
	mu      sync.Mutex
	records map[string]*entities.BriefingRecord
	patches []entities.BriefingPatch
	failGet bool
}

func newFakeBriefingRepo() *fakeBriefingRepo {
	return &fakeBriefingRepo{records: make(map[string]*entities.BriefingRecord)}
}

func briefingKey(ownerID, meetingID string) string {
	return ownerID + "/" + meetingID
}

func (r *fakeBriefingRepo) Get(_ context.Context, ownerID, meetingID string) (*entities.BriefingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet {
		return nil, fmt.Errorf("store unavailable")
	}
	rec, ok := r.records[briefingKey(ownerID, meetingID)]
	if !ok {
		return nil, nil
	}
	cloned := *rec
	return &cloned, nil
}

func (r *fakeBriefingRepo) Upsert(_ context.Context, ownerID, meetingID string, patch entities.BriefingPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, patch)

	key := briefingKey(ownerID, meetingID)
	rec, ok := r.records[key]
	if !ok {
		rec = &entities.BriefingRecord{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			MeetingID: meetingID,
			Status:    entities.BriefingStatusProcessing,
		}
		r.records[key] = rec
	}
	patch.Apply(rec)
	return nil
}

func (r *fakeBriefingRepo) record(ownerID, meetingID string) *entities.BriefingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[briefingKey(ownerID, meetingID)]
}

// fakeMeetingRepo serves a fixed set of meetings
type fakeMeetingRepo struct {
	meetings  map[string]*entities.Meeting
	listCalls int
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	repo := &fakeMeetingRepo{meetings: make(map[string]*entities.Meeting)}
	for _, m := range meetings {
		repo.meetings[briefingKey(m.OwnerID, m.MeetingID)] = m
	}
	return repo
}

func (r *fakeMeetingRepo) Get(_ context.Context, ownerID, meetingID string) (*entities.Meeting, error) {
	return r.meetings[briefingKey(ownerID, meetingID)], nil
}

func (r *fakeMeetingRepo) Upsert(_ context.Context, meeting *entities.Meeting) error {
	r.meetings[briefingKey(meeting.OwnerID, meeting.MeetingID)] = meeting
	return nil
}

func (r *fakeMeetingRepo) ListByRange(_ context.Context, ownerID string, _, _ time.Time) ([]entities.Meeting, error) {
	r.listCalls++
	var out []entities.Meeting
	for _, m := range r.meetings {
		if m.OwnerID == ownerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

// scriptedLLM returns canned responses in call order and records the requests
type scriptedLLM struct {
	mu        sync.Mutex
	responses []llmResponse
	requests  []ai.ChatRequest
}

type llmResponse struct {
	content string
	err     error
}

func (l *scriptedLLM) ChatCompletion(_ context.Context, request ai.ChatRequest) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, request)

	if len(l.responses) == 0 {
		return "", fmt.Errorf("no scripted response left")
	}
	next := l.responses[0]
	l.responses = l.responses[1:]
	return next.content, next.err
}

// fakeLookup returns fixed logo/snippet results
type fakeLookup struct {
	logoURL string
	snippet string
}

func (f *fakeLookup) LookupLogoURL(_ context.Context, _ string) string {
	return f.logoURL
}

func (f *fakeLookup) FetchHomepageSnippet(_ context.Context, _ string) string {
	return f.snippet
}

// fakeJobRepo is an in-memory job queue with dedup semantics
type fakeJobRepo struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]*entities.BriefingJob
	enqueueErr error
	retries    []time.Duration
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*entities.BriefingJob)}
}

func (r *fakeJobRepo) Enqueue(_ context.Context, job *entities.BriefingJob) (*entities.BriefingJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enqueueErr != nil {
		return nil, r.enqueueErr
	}
	for _, existing := range r.jobs {
		if existing.DedupKey == job.DedupKey && existing.IsLive() {
			return existing, nil
		}
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, jobID uuid.UUID) (*entities.BriefingJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[jobID], nil
}

func (r *fakeJobRepo) GetLiveByDedupKey(_ context.Context, dedupKey string) (*entities.BriefingJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.DedupKey == dedupKey && job.IsLive() {
			return job, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) GetDueJobs(_ context.Context, limit int) ([]entities.BriefingJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var due []entities.BriefingJob
	for _, job := range r.jobs {
		if len(due) >= limit {
			break
		}
		if (job.Status == entities.BriefingJobStatusQueued || job.Status == entities.BriefingJobStatusRetrying) &&
			!job.NextRunAt.After(now) {
			due = append(due, *job)
		}
	}
	return due, nil
}

func (r *fakeJobRepo) ClaimJob(_ context.Context, jobID uuid.UUID) (*entities.BriefingJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, nil
	}
	if job.Status != entities.BriefingJobStatusQueued && job.Status != entities.BriefingJobStatusRetrying {
		return nil, nil
	}
	job.MarkRunning()
	cloned := *job
	return &cloned, nil
}

func (r *fakeJobRepo) ScheduleRetry(_ context.Context, jobID uuid.UUID, errMsg string, delay time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retries = append(r.retries, delay)
	if job, ok := r.jobs[jobID]; ok {
		job.ScheduleRetry(errMsg, delay)
	}
	return nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[jobID]; ok {
		job.MarkCompleted()
	}
	return nil
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, jobID uuid.UUID, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[jobID]; ok {
		job.MarkFailed(errMsg)
	}
	return nil
}

func (r *fakeJobRepo) PruneCompleted(_ context.Context, _ time.Duration, _ int) (int64, error) {
	return 0, nil
}

func (r *fakeJobRepo) ClearFailed(_ context.Context) (int64, error) {
	return 0, nil
}

// recordingObserver captures lifecycle notifications
type recordingObserver struct {
	mu        sync.Mutex
	completed []uuid.UUID
	failed    []uuid.UUID
}

func (o *recordingObserver) OnCompleted(jobID uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed = append(o.completed, jobID)
}

func (o *recordingObserver) OnFailed(jobID uuid.UUID, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, jobID)
}
