package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

const (
	// SchedulePattern matches every cached schedule.
	SchedulePattern = "schedule:*"
	// ScheduleGenerationKey counts schedule invalidations. It sits outside
	// SchedulePattern so invalidation never resets it.
	ScheduleGenerationKey = "schedule_generation"
)

// ScheduleCacheKey names the cached resolution of a student for a week (or
// all weeks) as computed under cache generation gen.
func ScheduleCacheKey(studentID string, week *int, gen int64) string {
	w := "all"
	if week != nil {
		w = fmt.Sprintf("%d", *week)
	}
	return fmt.Sprintf("schedule:student:%s:week:%s:gen:%d", studentID, w, gen)
}

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// CacheService orchestrates cache operations and related metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
// Backend failures are logged and reported as misses.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Set stores the value in cache. Failures are logged only.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// ScheduleGeneration reads the current schedule cache generation. A reader
// takes it before loading storage and caches under it, so a result computed
// before a concurrent invalidation is never served afterwards. ok is false
// when caching is off or the generation cannot be read.
func (s *CacheService) ScheduleGeneration(ctx context.Context) (gen int64, ok bool) {
	if !s.Enabled() {
		return 0, false
	}
	gen, err := s.repo.Counter(ctx, ScheduleGenerationKey)
	if err != nil {
		s.logger.Warn("cache generation read failed", zap.Error(err))
		return 0, false
	}
	return gen, true
}

// InvalidateSchedules moves to a new cache generation and drops every cached
// schedule after a mutation.
func (s *CacheService) InvalidateSchedules(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	if _, err := s.repo.Incr(ctx, ScheduleGenerationKey); err != nil {
		s.logger.Warn("cache generation bump failed", zap.String("key", ScheduleGenerationKey), zap.Error(err))
	}
	removed, err := s.repo.DeleteByPattern(ctx, SchedulePattern)
	if err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", SchedulePattern), zap.Error(err))
		return
	}
	s.logger.Debug("schedule cache invalidated", zap.Int("keys", removed))
}
