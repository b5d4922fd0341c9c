package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"bible-study/internal/domain"
	"bible-study/internal/dto"
	"bible-study/internal/middleware"
	"bible-study/internal/validation"
)

// HistoryRecorder records and lists a user's study history.
type HistoryRecorder interface {
	SaveQuizResult(ctx context.Context, result *domain.QuizResult) error
	QuizResults(ctx context.Context, userID string) []domain.QuizResult
	RecordReading(ctx context.Context, p *domain.ReadingProgress) error
	ReadingProgress(ctx context.Context, userID string) []domain.ReadingProgress
	SaveJournalEntry(ctx context.Context, e *domain.JournalEntry) error
	JournalEntries(ctx context.Context, userID string) []domain.JournalEntry
	RecordStudySession(ctx context.Context, session *domain.StudySession) error
	StudySessions(ctx context.Context, userID string) []domain.StudySession
}

// AnalyticsProvider derives metrics and learning plans from history.
type AnalyticsProvider interface {
	Metrics(ctx context.Context, userID string) domain.PerformanceMetrics
	LearningPlan(ctx context.Context, userID string) domain.LearningPlanData
}

// UserHandler handles the authenticated user's history and analytics
type UserHandler struct {
	history   HistoryRecorder
	analytics AnalyticsProvider
	validator *validation.Validator
}

func NewUserHandler(history HistoryRecorder, analytics AnalyticsProvider, validator *validation.Validator) *UserHandler {
	return &UserHandler{history: history, analytics: analytics, validator: validator}
}

// SaveQuizResult godoc
// @Summary Save a quiz result
// @Description Appends a result computed elsewhere to the user's history. Results of server-run quizzes are saved automatically.
// @Tags history
// @Accept json
// @Produce json
// @Param request body domain.QuizResult true "Quiz result"
// @Success 201 {object} domain.QuizResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/results [post]
func (h *UserHandler) SaveQuizResult(c *fiber.Ctx) error {
	var result domain.QuizResult
	if err := c.BodyParser(&result); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	// ids are assigned by the store
	result.ID = ""
	result.UserID = middleware.UserID(c)
	if err := h.history.SaveQuizResult(c.UserContext(), &result); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetQuizResults godoc
// @Summary List quiz results
// @Tags history
// @Produce json
// @Success 200 {object} dto.ListResponse[domain.QuizResult]
// @Security ApiKeyAuth
// @Router /users/me/results [get]
func (h *UserHandler) GetQuizResults(c *fiber.Ctx) error {
	return c.JSON(dto.NewListResponse(h.history.QuizResults(c.UserContext(), middleware.UserID(c))))
}

// RecordReading godoc
// @Summary Record reading progress
// @Description Marks a chapter as read. Sending completed=false unmarks it.
// @Tags history
// @Accept json
// @Produce json
// @Param request body dto.ReadingProgressRequest true "Reading progress"
// @Success 200 {object} domain.ReadingProgress
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/reading [put]
func (h *UserHandler) RecordReading(c *fiber.Ctx) error {
	var req dto.ReadingProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateReadingProgress(&req); len(errs) > 0 {
		return errs
	}

	progress := domain.ReadingProgress{
		UserID:    middleware.UserID(c),
		Book:      req.Book,
		Chapter:   req.Chapter,
		Completed: req.Completed == nil || *req.Completed,
	}
	if err := h.history.RecordReading(c.UserContext(), &progress); err != nil {
		return err
	}
	return c.JSON(progress)
}

// GetReadingProgress godoc
// @Summary List reading progress
// @Tags history
// @Produce json
// @Success 200 {object} dto.ListResponse[domain.ReadingProgress]
// @Security ApiKeyAuth
// @Router /users/me/reading [get]
func (h *UserHandler) GetReadingProgress(c *fiber.Ctx) error {
	return c.JSON(dto.NewListResponse(h.history.ReadingProgress(c.UserContext(), middleware.UserID(c))))
}

// CreateJournalEntry godoc
// @Summary Create a journal entry
// @Tags history
// @Accept json
// @Produce json
// @Param request body dto.JournalEntryRequest true "Journal entry"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/journal [post]
func (h *UserHandler) CreateJournalEntry(c *fiber.Ctx) error {
	entry, err := h.journalEntry(c, "")
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateJournalEntry godoc
// @Summary Update a journal entry
// @Tags history
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param request body dto.JournalEntryRequest true "Journal entry"
// @Success 200 {object} domain.JournalEntry
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/journal/{entryID} [put]
func (h *UserHandler) UpdateJournalEntry(c *fiber.Ctx) error {
	id := c.Params("entryID")
	if id == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("entry_id")}
	}
	entry, err := h.journalEntry(c, id)
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

func (h *UserHandler) journalEntry(c *fiber.Ctx, id string) (*domain.JournalEntry, error) {
	var req dto.JournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateJournalEntry(&req); len(errs) > 0 {
		return nil, errs
	}

	entry := &domain.JournalEntry{
		ID:      id,
		UserID:  middleware.UserID(c),
		Book:    req.Book,
		Chapter: req.Chapter,
		Content: req.Content,
	}
	if err := h.history.SaveJournalEntry(c.UserContext(), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetJournalEntries godoc
// @Summary List journal entries
// @Tags history
// @Produce json
// @Success 200 {object} dto.ListResponse[domain.JournalEntry]
// @Security ApiKeyAuth
// @Router /users/me/journal [get]
func (h *UserHandler) GetJournalEntries(c *fiber.Ctx) error {
	return c.JSON(dto.NewListResponse(h.history.JournalEntries(c.UserContext(), middleware.UserID(c))))
}

// RecordStudySession godoc
// @Summary Record a study session
// @Tags history
// @Accept json
// @Produce json
// @Param request body dto.StudySessionRequest true "Study session"
// @Success 201 {object} domain.StudySession
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/study-sessions [post]
func (h *UserHandler) RecordStudySession(c *fiber.Ctx) error {
	var req dto.StudySessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStudySession(&req); len(errs) > 0 {
		return errs
	}

	session := domain.StudySession{
		UserID:          middleware.UserID(c),
		DurationMinutes: req.DurationMinutes,
		Book:            req.Book,
		Chapter:         req.Chapter,
		Score:           req.Score,
	}
	if req.StartedAt != nil {
		session.StartedAt = *req.StartedAt
	}
	if err := h.history.RecordStudySession(c.UserContext(), &session); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetStudySessions godoc
// @Summary List study sessions
// @Tags history
// @Produce json
// @Success 200 {object} dto.ListResponse[domain.StudySession]
// @Security ApiKeyAuth
// @Router /users/me/study-sessions [get]
func (h *UserHandler) GetStudySessions(c *fiber.Ctx) error {
	return c.JSON(dto.NewListResponse(h.history.StudySessions(c.UserContext(), middleware.UserID(c))))
}

// GetMyMetrics godoc
// @Summary Get performance metrics
// @Description Aggregates the user's quiz history. is_fallback is true when there is no history.
// @Tags analytics
// @Produce json
// @Success 200 {object} domain.PerformanceMetrics
// @Security ApiKeyAuth
// @Router /users/me/metrics [get]
func (h *UserHandler) GetMyMetrics(c *fiber.Ctx) error {
	return c.JSON(h.analytics.Metrics(c.UserContext(), middleware.UserID(c)))
}

// GetMyLearningPlan godoc
// @Summary Get a learning plan
// @Description Builds a plan from quiz results, reading progress, journal entries and study sessions
// @Tags analytics
// @Produce json
// @Success 200 {object} domain.LearningPlanData
// @Security ApiKeyAuth
// @Router /users/me/learning-plan [get]
func (h *UserHandler) GetMyLearningPlan(c *fiber.Ctx) error {
	return c.JSON(h.analytics.LearningPlan(c.UserContext(), middleware.UserID(c)))
}
