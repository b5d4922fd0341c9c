package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bible-study/internal/domain"
)

func sampleResults(userID string) []domain.QuizResult {
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return []domain.QuizResult{
		{
			ID: "r1", UserID: userID, Difficulty: domain.DifficultyEasyToGo,
			Score: 5, TotalPossible: 10, CorrectAnswers: 1, TotalQuestions: 2,
			Categories: []string{"Law"}, Topics: []string{"Creation"},
			Outcomes: []domain.QuestionOutcome{
				{QuestionID: "q1", Book: "Genesis", Category: "Law", Topic: "Creation", IsCorrect: true, PointsEarned: 5, PointsPossible: 5},
				{QuestionID: "q2", Book: "Genesis", Category: "Law", Topic: "Creation", PointsPossible: 5},
			},
			StartedAt: at, CompletedAt: at.Add(time.Minute),
		},
	}
}

func TestPlanService_Metrics(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the store", func(t *testing.T) {
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetMetrics", ctx, "u1").Return(&domain.PerformanceMetrics{TotalQuizzes: 9}, nil).Once()

		svc := NewPlanService(NewHistoryService(store, ac), ac)
		assert.Equal(t, 9, svc.Metrics(ctx, "u1").TotalQuizzes)
		store.AssertNotCalled(t, "ListQuizResults", mock.Anything, mock.Anything)
	})

	t.Run("miss computes and caches", func(t *testing.T) {
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetMetrics", ctx, "u1").Return(nil, ErrAnalyticsNotCached).Once()
		store.On("ListQuizResults", mock.Anything, "u1").Return(sampleResults("u1"), nil).Once()
		ac.On("PutMetrics", mock.Anything, "u1", mock.MatchedBy(func(m *domain.PerformanceMetrics) bool {
			return m.TotalQuizzes == 1
		})).Return(nil).Once()

		m := NewPlanService(NewHistoryService(store, ac), ac).Metrics(ctx, "u1")
		assert.Equal(t, 1, m.TotalQuizzes)
		assert.False(t, m.IsFallback)
		assert.InDelta(t, 50.0, m.AverageScore, 1e-9)
		ac.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("store and cache down yields the fallback", func(t *testing.T) {
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetMetrics", ctx, "u1").Return(nil, errors.New("redis down")).Once()
		store.On("ListQuizResults", mock.Anything, "u1").Return(nil, errors.New("db down")).Once()

		m := NewPlanService(NewHistoryService(store, ac), ac).Metrics(ctx, "u1")
		assert.True(t, m.IsFallback)
		ac.AssertNotCalled(t, "PutMetrics", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a failed read is not cached over the next one", func(t *testing.T) {
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetMetrics", ctx, "u1").Return(nil, ErrAnalyticsNotCached).Twice()
		store.On("ListQuizResults", mock.Anything, "u1").Return(nil, errors.New("db down")).Once()
		store.On("ListQuizResults", mock.Anything, "u1").Return(sampleResults("u1"), nil).Once()
		ac.On("PutMetrics", mock.Anything, "u1", mock.Anything).Return(nil).Once()

		svc := NewPlanService(NewHistoryService(store, ac), ac)
		assert.True(t, svc.Metrics(ctx, "u1").IsFallback)
		assert.Equal(t, 1, svc.Metrics(ctx, "u1").TotalQuizzes)
		ac.AssertNumberOfCalls(t, "PutMetrics", 1)
		store.AssertExpectations(t)
	})

	t.Run("a canceled caller still gets metrics and the cache is filled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetMetrics", canceled, "u1").Return(nil, ErrAnalyticsNotCached).Once()
		store.On("ListQuizResults", mock.MatchedBy(func(c context.Context) bool {
			return c.Err() == nil
		}), "u1").Return(sampleResults("u1"), nil).Once()
		ac.On("PutMetrics", mock.Anything, "u1", mock.Anything).Return(nil).Once()

		m := NewPlanService(NewHistoryService(store, ac), ac).Metrics(canceled, "u1")
		assert.Equal(t, 1, m.TotalQuizzes)
		store.AssertExpectations(t)
		ac.AssertExpectations(t)
	})
}

func TestPlanService_LearningPlan(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("cache hit", func(t *testing.T) {
		ac := new(MockAnalyticsCache)
		ac.On("GetPlan", ctx, "u1").Return(&domain.LearningPlanData{ReviewTopics: []string{"Exodus"}}, nil).Once()

		plan := NewPlanService(NewHistoryService(new(MockHistoryStore), ac), ac).LearningPlan(ctx, "u1")
		assert.Equal(t, []string{"Exodus"}, plan.ReviewTopics)
	})

	t.Run("miss loads all history and caches", func(t *testing.T) {
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetPlan", ctx, "u1").Return(nil, ErrAnalyticsNotCached).Once()
		store.On("ListQuizResults", mock.Anything, "u1").Return(sampleResults("u1"), nil).Once()
		store.On("ListReadingProgress", mock.Anything, "u1").Return([]domain.ReadingProgress{
			{UserID: "u1", Book: "Genesis", Chapter: 1, Completed: true, LastReadAt: now.Add(-24 * time.Hour)},
		}, nil).Once()
		store.On("ListJournalEntries", mock.Anything, "u1").Return([]domain.JournalEntry{}, nil).Once()
		store.On("ListStudySessions", mock.Anything, "u1").Return([]domain.StudySession{
			{UserID: "u1", DurationMinutes: 20, StartedAt: now.Add(-48 * time.Hour)},
		}, nil).Once()
		ac.On("PutPlan", mock.Anything, "u1", mock.Anything).Return(nil).Once()

		svc := NewPlanService(NewHistoryService(store, ac), ac)
		svc.now = func() time.Time { return now }
		plan := svc.LearningPlan(ctx, "u1")

		assert.True(t, plan.GeneratedAt.Equal(now))
		assert.Equal(t, 1, plan.QuizSummary.TotalQuizzes)
		store.AssertExpectations(t)
		ac.AssertExpectations(t)
	})

	t.Run("a partial history is served but not cached", func(t *testing.T) {
		store := new(MockHistoryStore)
		ac := new(MockAnalyticsCache)
		ac.On("GetPlan", ctx, "u1").Return(nil, ErrAnalyticsNotCached).Once()
		store.On("ListQuizResults", mock.Anything, "u1").Return(sampleResults("u1"), nil).Once()
		store.On("ListReadingProgress", mock.Anything, "u1").Return([]domain.ReadingProgress{
			{UserID: "u1", Book: "Genesis", Chapter: 1, Completed: true, LastReadAt: now.Add(-24 * time.Hour)},
		}, nil).Once()
		store.On("ListJournalEntries", mock.Anything, "u1").Return(nil, errors.New("db down")).Once()
		store.On("ListStudySessions", mock.Anything, "u1").Return([]domain.StudySession{
			{UserID: "u1", DurationMinutes: 20, StartedAt: now.Add(-48 * time.Hour)},
		}, nil).Once()

		svc := NewPlanService(NewHistoryService(store, ac), ac)
		svc.now = func() time.Time { return now }
		plan := svc.LearningPlan(ctx, "u1")

		assert.True(t, plan.GeneratedAt.Equal(now))
		assert.Equal(t, 1, plan.QuizSummary.TotalQuizzes)
		assert.Equal(t, 1, plan.StudyHabits.TotalSessions)
		assert.NotEmpty(t, plan.WeeklySchedule)
		store.AssertExpectations(t)
		ac.AssertNotCalled(t, "PutPlan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty history still yields a plan", func(t *testing.T) {
		store := new(MockHistoryStore)
		store.On("ListQuizResults", mock.Anything, "new").Return([]domain.QuizResult{}, nil)
		store.On("ListReadingProgress", mock.Anything, "new").Return([]domain.ReadingProgress{}, nil)
		store.On("ListJournalEntries", mock.Anything, "new").Return([]domain.JournalEntry{}, nil)
		store.On("ListStudySessions", mock.Anything, "new").Return([]domain.StudySession{}, nil)

		svc := NewPlanService(NewHistoryService(store, nil), nil)
		plan := svc.LearningPlan(ctx, "new")
		require.NotNil(t, plan.WeeklySchedule)
		assert.Equal(t, 0, plan.QuizSummary.TotalQuizzes)
	})
}
