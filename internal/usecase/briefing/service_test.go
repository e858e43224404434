package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/briefing-assistant/internal/usecase/errors"
)

func newTestService(jobs *fakeJobRepo, briefings *fakeBriefingRepo, meetings *fakeMeetingRepo) Service {
	cacheService := cache.NewService(cache.NewMemoryStore(), time.Minute, zap.NewNop())
	return NewService(jobs, briefings, meetings, cacheService, time.Minute, 0, zap.NewNop())
}

func TestGenerateBriefing(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	svc := newTestService(jobs, briefings, meetings)

	jobID, err := svc.GenerateBriefing(context.Background(), "owner-1", "mtg-1", entities.EnrichmentSettings{})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, jobID)

	rec := briefings.record("owner-1", "mtg-1")
	require.NotNil(t, rec)
	assert.Equal(t, entities.BriefingStatusProcessing, rec.Status)
	assert.Equal(t, jobID.String(), rec.JobID)

	job, _ := jobs.GetByID(context.Background(), jobID)
	require.NotNil(t, job)
	assert.Equal(t, "owner-1:mtg-1:briefing", job.DedupKey)
	assert.Equal(t, entities.DefaultMaxAttempts, job.MaxAttempts)
	assert.Equal(t, entities.BriefingQualityStandard, job.Settings.Data().BriefingQuality,
		"empty quality tier normalizes to standard")
}

func TestGenerateBriefingAppliesConfiguredMaxAttempts(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	cacheService := cache.NewService(cache.NewMemoryStore(), time.Minute, zap.NewNop())
	svc := NewService(jobs, briefings, meetings, cacheService, time.Minute, 3, zap.NewNop())

	jobID, err := svc.GenerateBriefing(context.Background(), "owner-1", "mtg-1", entities.EnrichmentSettings{})
	require.NoError(t, err)

	job, _ := jobs.GetByID(context.Background(), jobID)
	require.NotNil(t, job)
	assert.Equal(t, 3, job.MaxAttempts)
}

func TestGenerateBriefingDuplicateReturnsLiveJob(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	svc := newTestService(jobs, briefings, meetings)

	first, err := svc.GenerateBriefing(context.Background(), "owner-1", "mtg-1", entities.EnrichmentSettings{})
	require.NoError(t, err)

	second, err := svc.GenerateBriefing(context.Background(), "owner-1", "mtg-1", entities.EnrichmentSettings{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the duplicate must not touch the record: a resubmission racing the live
	// job's completion could otherwise flip a finalized record back to
	// processing with no job left to run
	assert.Len(t, briefings.patches, 1, "only the first submission writes the record")
	rec := briefings.record("owner-1", "mtg-1")
	require.NotNil(t, rec)
	assert.Equal(t, first.String(), rec.JobID)
}

func TestGenerateBriefingValidation(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	svc := newTestService(jobs, briefings, meetings)

	_, err := svc.GenerateBriefing(context.Background(), "", "mtg-1", entities.EnrichmentSettings{})
	assert.ErrorIs(t, err, usecaseErrors.ErrOwnerRequired)

	_, err = svc.GenerateBriefing(context.Background(), "owner-1", "", entities.EnrichmentSettings{})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	_, err = svc.GenerateBriefing(context.Background(), "owner-1", "no-such-meeting", entities.EnrichmentSettings{})
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)
}

func TestGenerateBriefingQueueUnavailable(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.enqueueErr = errors.New("dial tcp: connection refused")
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	svc := newTestService(jobs, briefings, meetings)

	_, err := svc.GenerateBriefing(context.Background(), "owner-1", "mtg-1", entities.EnrichmentSettings{})
	assert.ErrorIs(t, err, usecaseErrors.ErrQueueUnavailable)
	assert.Nil(t, briefings.record("owner-1", "mtg-1"), "no record is created when enqueue fails")
}

func TestGetBriefing(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	svc := newTestService(jobs, briefings, meetings)

	_, err := svc.GetBriefing(context.Background(), "owner-1", "mtg-1")
	assert.ErrorIs(t, err, usecaseErrors.ErrBriefingNotFound)

	_, err = svc.GenerateBriefing(context.Background(), "owner-1", "mtg-1", entities.EnrichmentSettings{})
	require.NoError(t, err)

	rec, err := svc.GetBriefing(context.Background(), "owner-1", "mtg-1")
	require.NoError(t, err)
	assert.Equal(t, entities.BriefingStatusProcessing, rec.Status)
}

func TestListMeetingsReadThroughCache(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	svc := newTestService(jobs, briefings, meetings)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	first, err := svc.ListMeetings(context.Background(), "owner-1", from, to)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, meetings.listCalls)

	second, err := svc.ListMeetings(context.Background(), "owner-1", from, to)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, meetings.listCalls, "second read is served from cache")

	// a different range is a different key
	_, err = svc.ListMeetings(context.Background(), "owner-1", from, to.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, meetings.listCalls)
}

func TestListMeetingsBypassesStaleCacheEntry(t *testing.T) {
	jobs := newFakeJobRepo()
	briefings := newFakeBriefingRepo()
	meetings := newFakeMeetingRepo(testMeeting("owner-1", "mtg-1"))
	store := cache.NewMemoryStore()
	cacheService := cache.NewService(store, time.Minute, zap.NewNop())
	svc := NewService(jobs, briefings, meetings, cacheService, time.Minute, 0, zap.NewNop())

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	_, err := svc.ListMeetings(context.Background(), "owner-1", from, to)
	require.NoError(t, err)
	require.Equal(t, 1, meetings.listCalls)

	// age the cached envelope past the TTL while the store entry stays alive;
	// freshness is computed from the stored-at timestamp, not store eviction
	key := cache.BuildKey("meetings", "owner-1",
		from.Format(time.RFC3339), to.Format(time.RFC3339))
	raw, found, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, found)

	var env struct {
		StoredAt time.Time       `json:"storedAt"`
		Value    json.RawMessage `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	env.StoredAt = time.Now().Add(-2 * time.Minute)
	aged, err := json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), key, string(aged), time.Hour))

	listed, err := svc.ListMeetings(context.Background(), "owner-1", from, to)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, 2, meetings.listCalls, "stale entry is bypassed and refetched")
}
