package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	"github.com/grigorev-dev/timetable-api/internal/repository"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

type statisticsStore interface {
	Statistics(groupID int64) (*models.Statistics, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// StatisticsService aggregates a group's quota consumption, caching the
// result in Redis. Cache failures never fail the request.
type StatisticsService struct {
	store  statisticsStore
	cache  statsCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatisticsService constructs a StatisticsService. A nil cache disables
// caching entirely.
func NewStatisticsService(store statisticsStore, cache statsCache, ttl time.Duration, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatisticsService{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Get returns the group's statistics, served from cache when fresh.
func (s *StatisticsService) Get(ctx context.Context, groupID int64) (*models.Statistics, error) {
	key := repository.StatsCacheKey(groupID)
	if s.cache != nil {
		var cached models.Statistics
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !appErrors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("statistics cache read failed", zap.Int64("group_id", groupID), zap.Error(err))
		}
	}

	stats, err := s.store.Statistics(groupID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.ttl); err != nil {
			s.logger.Warn("statistics cache write failed", zap.Int64("group_id", groupID), zap.Error(err))
		}
	}
	return stats, nil
}

// Invalidate drops the cached statistics for one group.
func (s *StatisticsService) Invalidate(ctx context.Context, groupID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, repository.StatsCacheKey(groupID)); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Int64("group_id", groupID), zap.Error(err))
	}
}

// InvalidateAll drops every cached statistics payload. Used on mutations with
// cross-group reach, like deleting a teacher.
func (s *StatisticsService) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, repository.StatsCachePattern); err != nil {
		s.logger.Warn("statistics cache flush failed", zap.Error(err))
	}
}
