package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bible-study/internal/cache"
	"bible-study/internal/domain"
	"bible-study/internal/logger"
)

// ErrAnalyticsNotCached is returned when derived data for a user is not in the cache.
var ErrAnalyticsNotCached = errors.New("analytics not found in cache")

// AnalyticsCache stores a user's derived metrics and learning plan. Entries
// are dropped whenever the user's history changes.
type AnalyticsCache interface {
	GetMetrics(ctx context.Context, userID string) (*domain.PerformanceMetrics, error)
	PutMetrics(ctx context.Context, userID string, metrics *domain.PerformanceMetrics) error
	GetPlan(ctx context.Context, userID string) (*domain.LearningPlanData, error)
	PutPlan(ctx context.Context, userID string, plan *domain.LearningPlanData) error
	Invalidate(ctx context.Context, userID string) error
}

type analyticsCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewAnalyticsCache wraps a generic cache. A nil cache yields a no-op implementation.
func NewAnalyticsCache(c domain.Cache, ttl time.Duration) AnalyticsCache {
	if c == nil {
		logger.Get().Warn("AnalyticsCache initialized with nil cache. Service will be no-op.")
		return noopAnalyticsCache{}
	}
	return &analyticsCacheImpl{cache: c, ttl: ttl}
}

func (s *analyticsCacheImpl) GetMetrics(ctx context.Context, userID string) (*domain.PerformanceMetrics, error) {
	var m domain.PerformanceMetrics
	if err := s.get(ctx, cache.MetricsKey(userID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *analyticsCacheImpl) PutMetrics(ctx context.Context, userID string, metrics *domain.PerformanceMetrics) error {
	if metrics == nil {
		return domain.NewInvalidInputError("cannot cache nil metrics")
	}
	return s.put(ctx, cache.MetricsKey(userID), metrics)
}

func (s *analyticsCacheImpl) GetPlan(ctx context.Context, userID string) (*domain.LearningPlanData, error) {
	var p domain.LearningPlanData
	if err := s.get(ctx, cache.LearningPlanKey(userID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *analyticsCacheImpl) PutPlan(ctx context.Context, userID string, plan *domain.LearningPlanData) error {
	if plan == nil {
		return domain.NewInvalidInputError("cannot cache nil learning plan")
	}
	return s.put(ctx, cache.LearningPlanKey(userID), plan)
}

func (s *analyticsCacheImpl) Invalidate(ctx context.Context, userID string) error {
	keys := cache.UserAnalyticsKeys(userID)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Error("Failed to invalidate analytics cache", zap.Error(err), zap.String("user_id", userID))
		return domain.NewInternalError(fmt.Sprintf("failed to invalidate analytics cache for user %s", userID), err)
	}
	logger.Get().Debug("Invalidated analytics cache", zap.Strings("keys", keys))
	return nil
}

func (s *analyticsCacheImpl) get(ctx context.Context, key string, dst interface{}) error {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Analytics cache miss", zap.String("key", key))
			return ErrAnalyticsNotCached
		}
		logger.Get().Error("Failed to get analytics from cache", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to get analytics from cache for key %s", key), err)
	}
	if data == "" {
		return ErrAnalyticsNotCached
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		logger.Get().Error("Failed to unmarshal analytics from cache", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to unmarshal analytics from cache for key %s", key), err)
	}
	return nil
}

func (s *analyticsCacheImpl) put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return domain.NewInternalError("failed to marshal analytics for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache analytics", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set analytics to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached analytics", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

type noopAnalyticsCache struct{}

func (noopAnalyticsCache) GetMetrics(context.Context, string) (*domain.PerformanceMetrics, error) {
	return nil, ErrAnalyticsNotCached
}

func (noopAnalyticsCache) PutMetrics(context.Context, string, *domain.PerformanceMetrics) error {
	return nil
}

func (noopAnalyticsCache) GetPlan(context.Context, string) (*domain.LearningPlanData, error) {
	return nil, ErrAnalyticsNotCached
}

func (noopAnalyticsCache) PutPlan(context.Context, string, *domain.LearningPlanData) error {
	return nil
}

func (noopAnalyticsCache) Invalidate(context.Context, string) error { return nil }
