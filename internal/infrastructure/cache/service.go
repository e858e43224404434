package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is the cache expiry applied when the caller passes 0
const DefaultTTL = 900 * time.Second

// envelope wraps cached values with their write time so readers can apply
// their own staleness window on top of the store's TTL
type envelope struct {
	StoredAt time.Time       `json:"storedAt"`
	Value    json.RawMessage `json:"value"`
}

// Service is the application-facing cache layer. All failures are absorbed:
// a broken cache degrades to a miss, never to a request error.
type Service struct {
	store      Store
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewService creates a cache service over the given store
func NewService(store Store, defaultTTL time.Duration, logger *zap.Logger) *Service {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Service{
		store:      store,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// BuildKey joins key parts with ":" (e.g. "meetings", ownerID, "list")
func BuildKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get reads a cached value into dest. Returns the write time and whether the
// key was a hit. Store errors and corrupt entries count as misses.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) (time.Time, bool) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("❌ Cache read failed", zap.String("key", key), zap.Error(err))
		return time.Time{}, false
	}
	if !found {
		return time.Time{}, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		s.logger.Warn("❌ Cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		_ = s.store.Delete(ctx, key)
		return time.Time{}, false
	}

	if dest != nil {
		if err := json.Unmarshal(env.Value, dest); err != nil {
			s.logger.Warn("❌ Cache value decode failed", zap.String("key", key), zap.Error(err))
			return time.Time{}, false
		}
	}

	return env.StoredAt, true
}

// Set writes a value with the given TTL (0 uses the default). Failures are
// logged, not returned.
func (s *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("❌ Cache value encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	env := envelope{StoredAt: time.Now().UTC(), Value: raw}
	encoded, err := json.Marshal(env)
	if err != nil {
		s.logger.Warn("❌ Cache envelope encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.store.Set(ctx, key, string(encoded), ttl); err != nil {
		s.logger.Warn("❌ Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a single key
func (s *Service) Delete(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("❌ Cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// DeletePattern removes all keys matching a glob pattern
func (s *Service) DeletePattern(ctx context.Context, pattern string) {
	if err := s.store.DeletePattern(ctx, pattern); err != nil {
		s.logger.Warn("❌ Cache pattern delete failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
