package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"bible-study/internal/config"
	"bible-study/internal/domain"
	"bible-study/internal/engine"
	"bible-study/internal/handler"
	"bible-study/internal/middleware"
	"bible-study/internal/service"
	"bible-study/internal/validation"
)

// --- Manual Mocks ---

type MockSessionManager struct {
	StartFunc        func(ctx context.Context, userID string, req service.StartSessionRequest) (engine.Snapshot, error)
	GetFunc          func(userID, sessionID string) (engine.Snapshot, error)
	SubmitAnswerFunc func(userID, sessionID, questionID, answer string) (engine.Snapshot, bool, error)
	NextFunc         func(userID, sessionID string) (engine.Snapshot, error)
	PreviousFunc     func(userID, sessionID string) (engine.Snapshot, error)
	FinishFunc       func(ctx context.Context, userID, sessionID string) (*domain.QuizResult, error)
	ResultFunc       func(userID, sessionID string) (*domain.QuizResult, error)
	AbandonFunc      func(userID, sessionID string) error
}

func (m *MockSessionManager) Start(ctx context.Context, userID string, req service.StartSessionRequest) (engine.Snapshot, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, req)
	}
	panic("MockSessionManager.StartFunc not implemented")
}
func (m *MockSessionManager) Get(userID, sessionID string) (engine.Snapshot, error) {
	if m.GetFunc != nil {
		return m.GetFunc(userID, sessionID)
	}
	panic("MockSessionManager.GetFunc not implemented")
}
func (m *MockSessionManager) SubmitAnswer(userID, sessionID, questionID, answer string) (engine.Snapshot, bool, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(userID, sessionID, questionID, answer)
	}
	panic("MockSessionManager.SubmitAnswerFunc not implemented")
}
func (m *MockSessionManager) Next(userID, sessionID string) (engine.Snapshot, error) {
	if m.NextFunc != nil {
		return m.NextFunc(userID, sessionID)
	}
	panic("MockSessionManager.NextFunc not implemented")
}
func (m *MockSessionManager) Previous(userID, sessionID string) (engine.Snapshot, error) {
	if m.PreviousFunc != nil {
		return m.PreviousFunc(userID, sessionID)
	}
	panic("MockSessionManager.PreviousFunc not implemented")
}
func (m *MockSessionManager) Finish(ctx context.Context, userID, sessionID string) (*domain.QuizResult, error) {
	if m.FinishFunc != nil {
		return m.FinishFunc(ctx, userID, sessionID)
	}
	panic("MockSessionManager.FinishFunc not implemented")
}
func (m *MockSessionManager) Result(userID, sessionID string) (*domain.QuizResult, error) {
	if m.ResultFunc != nil {
		return m.ResultFunc(userID, sessionID)
	}
	panic("MockSessionManager.ResultFunc not implemented")
}
func (m *MockSessionManager) Abandon(userID, sessionID string) error {
	if m.AbandonFunc != nil {
		return m.AbandonFunc(userID, sessionID)
	}
	panic("MockSessionManager.AbandonFunc not implemented")
}

type MockQuestionCatalog struct {
	QueryFunc func(filter domain.QuestionFilter) []domain.QuizQuestion
	BooksFunc func() []string
}

func (m *MockQuestionCatalog) Query(filter domain.QuestionFilter) []domain.QuizQuestion {
	if m.QueryFunc != nil {
		return m.QueryFunc(filter)
	}
	panic("MockQuestionCatalog.QueryFunc not implemented")
}
func (m *MockQuestionCatalog) Books() []string {
	if m.BooksFunc != nil {
		return m.BooksFunc()
	}
	panic("MockQuestionCatalog.BooksFunc not implemented")
}

type MockQuestionGenerator struct {
	GenerateFunc func(ctx context.Context, req domain.GenerationRequest) ([]domain.QuizQuestion, error)
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.QuizQuestion, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockQuestionGenerator.GenerateFunc not implemented")
}

type MockHistoryRecorder struct {
	SaveQuizResultFunc     func(ctx context.Context, result *domain.QuizResult) error
	QuizResultsFunc        func(ctx context.Context, userID string) []domain.QuizResult
	RecordReadingFunc      func(ctx context.Context, p *domain.ReadingProgress) error
	ReadingProgressFunc    func(ctx context.Context, userID string) []domain.ReadingProgress
	SaveJournalEntryFunc   func(ctx context.Context, e *domain.JournalEntry) error
	JournalEntriesFunc     func(ctx context.Context, userID string) []domain.JournalEntry
	RecordStudySessionFunc func(ctx context.Context, session *domain.StudySession) error
	StudySessionsFunc      func(ctx context.Context, userID string) []domain.StudySession
}

func (m *MockHistoryRecorder) SaveQuizResult(ctx context.Context, result *domain.QuizResult) error {
	if m.SaveQuizResultFunc != nil {
		return m.SaveQuizResultFunc(ctx, result)
	}
	panic("MockHistoryRecorder.SaveQuizResultFunc not implemented")
}
func (m *MockHistoryRecorder) QuizResults(ctx context.Context, userID string) []domain.QuizResult {
	if m.QuizResultsFunc != nil {
		return m.QuizResultsFunc(ctx, userID)
	}
	panic("MockHistoryRecorder.QuizResultsFunc not implemented")
}
func (m *MockHistoryRecorder) RecordReading(ctx context.Context, p *domain.ReadingProgress) error {
	if m.RecordReadingFunc != nil {
		return m.RecordReadingFunc(ctx, p)
	}
	panic("MockHistoryRecorder.RecordReadingFunc not implemented")
}
func (m *MockHistoryRecorder) ReadingProgress(ctx context.Context, userID string) []domain.ReadingProgress {
	if m.ReadingProgressFunc != nil {
		return m.ReadingProgressFunc(ctx, userID)
	}
	panic("MockHistoryRecorder.ReadingProgressFunc not implemented")
}
func (m *MockHistoryRecorder) SaveJournalEntry(ctx context.Context, e *domain.JournalEntry) error {
	if m.SaveJournalEntryFunc != nil {
		return m.SaveJournalEntryFunc(ctx, e)
	}
	panic("MockHistoryRecorder.SaveJournalEntryFunc not implemented")
}
func (m *MockHistoryRecorder) JournalEntries(ctx context.Context, userID string) []domain.JournalEntry {
	if m.JournalEntriesFunc != nil {
		return m.JournalEntriesFunc(ctx, userID)
	}
	panic("MockHistoryRecorder.JournalEntriesFunc not implemented")
}
func (m *MockHistoryRecorder) RecordStudySession(ctx context.Context, session *domain.StudySession) error {
	if m.RecordStudySessionFunc != nil {
		return m.RecordStudySessionFunc(ctx, session)
	}
	panic("MockHistoryRecorder.RecordStudySessionFunc not implemented")
}
func (m *MockHistoryRecorder) StudySessions(ctx context.Context, userID string) []domain.StudySession {
	if m.StudySessionsFunc != nil {
		return m.StudySessionsFunc(ctx, userID)
	}
	panic("MockHistoryRecorder.StudySessionsFunc not implemented")
}

type MockAnalyticsProvider struct {
	MetricsFunc      func(ctx context.Context, userID string) domain.PerformanceMetrics
	LearningPlanFunc func(ctx context.Context, userID string) domain.LearningPlanData
}

func (m *MockAnalyticsProvider) Metrics(ctx context.Context, userID string) domain.PerformanceMetrics {
	if m.MetricsFunc != nil {
		return m.MetricsFunc(ctx, userID)
	}
	panic("MockAnalyticsProvider.MetricsFunc not implemented")
}
func (m *MockAnalyticsProvider) LearningPlan(ctx context.Context, userID string) domain.LearningPlanData {
	if m.LearningPlanFunc != nil {
		return m.LearningPlanFunc(ctx, userID)
	}
	panic("MockAnalyticsProvider.LearningPlanFunc not implemented")
}

// --- Test setup ---

const testUserID = "user-1"

type testDeps struct {
	sessions  *MockSessionManager
	catalog   *MockQuestionCatalog
	generator *MockQuestionGenerator
	history   *MockHistoryRecorder
	analytics *MockAnalyticsProvider
}

type testApp struct {
	app   *fiber.App
	token string
}

func setupApp(t *testing.T, deps testDeps, generationPerMinute int) *testApp {
	t.Helper()
	auth, err := service.NewAuthService(config.AuthConfig{JWTSecret: "test-secret"})
	require.NoError(t, err)
	token, err := auth.CreateJWT(context.Background(), testUserID, time.Hour)
	require.NoError(t, err)

	v := validation.NewValidator(50)
	var generator handler.QuestionGenerator
	if deps.generator != nil {
		generator = deps.generator
	}
	quiz := handler.NewQuizHandler(deps.sessions, deps.catalog, generator, v)
	user := handler.NewUserHandler(deps.history, deps.analytics, v)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, quiz, user, handler.RouteConfig{
		Auth:                auth,
		Validator:           v,
		GenerationPerMinute: generationPerMinute,
	})
	return &testApp{app: app, token: token}
}

func (ta *testApp) do(t *testing.T, method, path string, body interface{}, authenticated bool) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+ta.token)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeError(t *testing.T, data []byte) middleware.ErrorResponse {
	t.Helper()
	var out middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

var errBoom = errors.New("boom")
