package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bible-study/internal/domain"
)

// --- MockHistoryStore ---
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) SaveQuizResult(ctx context.Context, result *domain.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockHistoryStore) ListQuizResults(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizResult), args.Error(1)
}

func (m *MockHistoryStore) UpsertReadingProgress(ctx context.Context, progress *domain.ReadingProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockHistoryStore) ListReadingProgress(ctx context.Context, userID string) ([]domain.ReadingProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReadingProgress), args.Error(1)
}

func (m *MockHistoryStore) CreateJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryStore) UpdateJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryStore) ListJournalEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockHistoryStore) SaveStudySession(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockHistoryStore) ListStudySessions(ctx context.Context, userID string) ([]domain.StudySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudySession), args.Error(1)
}

// --- MockQuestionStore ---
type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) SaveQuestions(ctx context.Context, questions []domain.QuizQuestion) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionStore) ListQuestions(ctx context.Context) ([]domain.QuizQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizQuestion), args.Error(1)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) ([]domain.QuizQuestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizQuestion), args.Error(1)
}

// --- MockEmbeddingService ---
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockAnalyticsCache ---
type MockAnalyticsCache struct {
	mock.Mock
}

func (m *MockAnalyticsCache) GetMetrics(ctx context.Context, userID string) (*domain.PerformanceMetrics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PerformanceMetrics), args.Error(1)
}

func (m *MockAnalyticsCache) PutMetrics(ctx context.Context, userID string, metrics *domain.PerformanceMetrics) error {
	args := m.Called(ctx, userID, metrics)
	return args.Error(0)
}

func (m *MockAnalyticsCache) GetPlan(ctx context.Context, userID string) (*domain.LearningPlanData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningPlanData), args.Error(1)
}

func (m *MockAnalyticsCache) PutPlan(ctx context.Context, userID string, plan *domain.LearningPlanData) error {
	args := m.Called(ctx, userID, plan)
	return args.Error(0)
}

func (m *MockAnalyticsCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
