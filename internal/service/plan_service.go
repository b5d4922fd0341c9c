package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"bible-study/internal/analytics"
	"bible-study/internal/domain"
	"bible-study/internal/logger"
	"bible-study/internal/planner"
)

// PlanService computes a user's performance metrics and learning plan from
// their history. Both are cached until the history changes. A result built
// while part of the history could not be read is served but never cached.
type PlanService struct {
	history *HistoryService
	cache   AnalyticsCache
	sfGroup singleflight.Group
	now     func() time.Time
}

func NewPlanService(history *HistoryService, cache AnalyticsCache) *PlanService {
	if cache == nil {
		cache = noopAnalyticsCache{}
	}
	return &PlanService{history: history, cache: cache, now: time.Now}
}

// Metrics returns the user's performance metrics, or the fallback defaults
// for an empty history.
func (s *PlanService) Metrics(ctx context.Context, userID string) domain.PerformanceMetrics {
	if cached, err := s.cache.GetMetrics(ctx, userID); err == nil {
		return *cached
	} else if !errors.Is(err, ErrAnalyticsNotCached) {
		logger.Get().Warn("Metrics cache lookup failed", zap.Error(err), zap.String("user_id", userID))
	}

	// the shared computation outlives any one caller's request
	sfCtx := context.WithoutCancel(ctx)
	v, _, _ := s.sfGroup.Do("metrics:"+userID, func() (interface{}, error) {
		results, readErr := s.history.quizResults(sfCtx, userID)
		metrics := analytics.Aggregate(results)
		if readErr != nil {
			logger.Get().Warn("Not caching metrics built without quiz history", zap.String("user_id", userID))
			return metrics, nil
		}
		if err := s.cache.PutMetrics(sfCtx, userID, &metrics); err != nil {
			logger.Get().Warn("Failed to cache metrics", zap.Error(err), zap.String("user_id", userID))
		}
		return metrics, nil
	})
	return v.(domain.PerformanceMetrics)
}

// LearningPlan returns the user's learning plan. The four history lists are
// loaded concurrently; any that fail to load count as empty.
func (s *PlanService) LearningPlan(ctx context.Context, userID string) domain.LearningPlanData {
	if cached, err := s.cache.GetPlan(ctx, userID); err == nil {
		return *cached
	} else if !errors.Is(err, ErrAnalyticsNotCached) {
		logger.Get().Warn("Learning plan cache lookup failed", zap.Error(err), zap.String("user_id", userID))
	}

	sfCtx := context.WithoutCancel(ctx)
	v, _, _ := s.sfGroup.Do("plan:"+userID, func() (interface{}, error) {
		in := planner.Input{Now: s.now()}
		// a plain group: one failed read must not cancel the others
		var g errgroup.Group
		g.Go(func() (err error) {
			in.Reading, err = s.history.readingProgress(sfCtx, userID)
			return err
		})
		g.Go(func() (err error) {
			in.Journal, err = s.history.journalEntries(sfCtx, userID)
			return err
		})
		g.Go(func() (err error) {
			in.Sessions, err = s.history.studySessions(sfCtx, userID)
			return err
		})
		g.Go(func() (err error) {
			in.Results, err = s.history.quizResults(sfCtx, userID)
			return err
		})
		readErr := g.Wait()

		in.Metrics = analytics.Aggregate(in.Results)
		plan := planner.Recommend(in)
		logger.Get().Debug("Computed learning plan",
			zap.String("user_id", userID),
			zap.Int("recommended_books", len(plan.RecommendedBooks)),
			zap.Bool("partial", readErr != nil))
		if readErr != nil {
			logger.Get().Warn("Not caching learning plan built from partial history", zap.String("user_id", userID))
			return plan, nil
		}
		if err := s.cache.PutPlan(sfCtx, userID, &plan); err != nil {
			logger.Get().Warn("Failed to cache learning plan", zap.Error(err), zap.String("user_id", userID))
		}
		return plan, nil
	})
	return v.(domain.LearningPlanData)
}
