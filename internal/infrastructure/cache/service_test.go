package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestService() *Service {
	return NewService(NewMemoryStore(), time.Minute, zap.NewNop())
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "meetings:owner-1:list", BuildKey("meetings", "owner-1", "list"))
}

func TestSetGetRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	before := time.Now().UTC()
	svc.Set(ctx, "k", sample{Name: "acme", Count: 3}, 0)

	var got sample
	storedAt, hit := svc.Get(ctx, "k", &got)
	require.True(t, hit)
	assert.Equal(t, "acme", got.Name)
	assert.Equal(t, 3, got.Count)
	assert.False(t, storedAt.Before(before.Add(-time.Second)))
}

func TestGetMiss(t *testing.T) {
	svc := newTestService()

	var got sample
	_, hit := svc.Get(context.Background(), "missing", &got)
	assert.False(t, hit)
}

func TestGetCorruptEntryIsMiss(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, time.Minute, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "bad", "not-json", time.Minute))

	var got sample
	_, hit := svc.Get(ctx, "bad", &got)
	assert.False(t, hit)

	// corrupt entry is dropped from the store
	_, found, err := store.Get(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, time.Minute, zap.NewNop())
	ctx := context.Background()

	svc.Set(ctx, "k", sample{Name: "gone"}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	var got sample
	_, hit := svc.Get(ctx, "k", &got)
	assert.False(t, hit)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Set(ctx, "k", sample{Name: "x"}, 0)
	svc.Delete(ctx, "k")

	_, hit := svc.Get(ctx, "k", nil)
	assert.False(t, hit)
}

func TestDeletePattern(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Set(ctx, BuildKey("meetings", "owner-1", "list"), sample{}, 0)
	svc.Set(ctx, BuildKey("meetings", "owner-1", "detail"), sample{}, 0)
	svc.Set(ctx, BuildKey("meetings", "owner-2", "list"), sample{}, 0)

	svc.DeletePattern(ctx, "meetings:owner-1:*")

	_, hit := svc.Get(ctx, "meetings:owner-1:list", nil)
	assert.False(t, hit)
	_, hit = svc.Get(ctx, "meetings:owner-1:detail", nil)
	assert.False(t, hit)
	_, hit = svc.Get(ctx, "meetings:owner-2:list", nil)
	assert.True(t, hit, "other owner's keys must survive")
}
