package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bible-study/internal/domain"
	"bible-study/internal/dto"
	"bible-study/internal/engine"
	"bible-study/internal/logger"
	"bible-study/internal/middleware"
	"bible-study/internal/service"
	"bible-study/internal/validation"
)

// SessionManager runs timed quiz sessions.
type SessionManager interface {
	Start(ctx context.Context, userID string, req service.StartSessionRequest) (engine.Snapshot, error)
	Get(userID, sessionID string) (engine.Snapshot, error)
	SubmitAnswer(userID, sessionID, questionID, answer string) (engine.Snapshot, bool, error)
	Next(userID, sessionID string) (engine.Snapshot, error)
	Previous(userID, sessionID string) (engine.Snapshot, error)
	Finish(ctx context.Context, userID, sessionID string) (*domain.QuizResult, error)
	Result(userID, sessionID string) (*domain.QuizResult, error)
	Abandon(userID, sessionID string) error
}

// QuestionCatalog is the read side of the question bank.
type QuestionCatalog interface {
	Query(filter domain.QuestionFilter) []domain.QuizQuestion
	Books() []string
}

// QuestionGenerator adds AI generated questions to the bank.
type QuestionGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.QuizQuestion, error)
}

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	sessions  SessionManager
	catalog   QuestionCatalog
	generator QuestionGenerator
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance. generator may be nil,
// in which case generation requests answer 503.
func NewQuizHandler(sessions SessionManager, catalog QuestionCatalog, generator QuestionGenerator, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		sessions:  sessions,
		catalog:   catalog,
		generator: generator,
		validator: validator,
	}
}

// ListBooks godoc
// @Summary List books with questions
// @Description Returns the books the question bank covers, in canonical order
// @Tags questions
// @Produce json
// @Success 200 {object} dto.BooksResponse
// @Router /books [get]
func (h *QuizHandler) ListBooks(c *fiber.Ctx) error {
	return c.JSON(dto.BooksResponse{Books: h.catalog.Books()})
}

// ListQuestions godoc
// @Summary List bank questions
// @Description Returns bank questions matching the optional filters. Answers are not included.
// @Tags questions
// @Produce json
// @Param book query string false "Book"
// @Param difficulty query string false "Difficulty"
// @Param type query string false "Question type"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /questions [get]
func (h *QuizHandler) ListQuestions(c *fiber.Ctx) error {
	filter, errs := h.validator.ValidateQuestionQuery(c.Query("book"), c.Query("difficulty"), c.Query("type"))
	if len(errs) > 0 {
		return errs
	}
	return c.JSON(dto.NewQuestionsResponse(h.catalog.Query(filter)))
}

// StartSession godoc
// @Summary Start a quiz
// @Description Starts a timed quiz over the selected books and difficulty
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Quiz selection"
// @Success 201 {object} engine.Snapshot
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions [post]
func (h *QuizHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	difficulty, questionType, errs := h.validator.ValidateStartSession(&req)
	if len(errs) > 0 {
		return errs
	}

	snap, err := h.sessions.Start(c.UserContext(), middleware.UserID(c), service.StartSessionRequest{
		Books:      req.Books,
		Difficulty: difficulty,
		Type:       questionType,
		Count:      req.Count,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// GetSession godoc
// @Summary Get quiz state
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} engine.Snapshot
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID} [get]
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	snap, err := h.sessions.Get(middleware.UserID(c), c.Params(middleware.SessionIDParam))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// SubmitAnswer godoc
// @Summary Answer the current question
// @Description Records an answer for the current question. accepted is false when the answer came too late or for another question.
// @Tags quiz
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID}/answers [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswer(&req); len(errs) > 0 {
		return errs
	}

	snap, accepted, err := h.sessions.SubmitAnswer(middleware.UserID(c), c.Params(middleware.SessionIDParam), req.QuestionID, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmitAnswerResponse{Accepted: accepted, Session: snap})
}

// NextQuestion godoc
// @Summary Skip to the next question
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} engine.Snapshot
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID}/next [post]
func (h *QuizHandler) NextQuestion(c *fiber.Ctx) error {
	snap, err := h.sessions.Next(middleware.UserID(c), c.Params(middleware.SessionIDParam))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// PreviousQuestion godoc
// @Summary Go back one question
// @Description Accepted for client compatibility; quizzes never move backwards.
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} engine.Snapshot
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID}/previous [post]
func (h *QuizHandler) PreviousQuestion(c *fiber.Ctx) error {
	snap, err := h.sessions.Previous(middleware.UserID(c), c.Params(middleware.SessionIDParam))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// FinishSession godoc
// @Summary Finish a quiz
// @Description Ends the quiz and stores its result. Calling it again retries a failed save.
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.QuizResult
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID}/finish [post]
func (h *QuizHandler) FinishSession(c *fiber.Ctx) error {
	result, err := h.sessions.Finish(c.UserContext(), middleware.UserID(c), c.Params(middleware.SessionIDParam))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetResult godoc
// @Summary Get a quiz result
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.QuizResult
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID}/result [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.sessions.Result(middleware.UserID(c), c.Params(middleware.SessionIDParam))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// AbandonSession godoc
// @Summary Abandon a quiz
// @Description Stops a running quiz without recording a result
// @Tags quiz
// @Param sessionID path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/sessions/{sessionID} [delete]
func (h *QuizHandler) AbandonSession(c *fiber.Ctx) error {
	if err := h.sessions.Abandon(middleware.UserID(c), c.Params(middleware.SessionIDParam)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateQuestions godoc
// @Summary Generate questions with AI
// @Description Generates questions from a passage and adds the new ones to the bank
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 201 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuestions(c *fiber.Ctx) error {
	if h.generator == nil {
		return domain.NewUnavailableError("the quiz generator", nil)
	}
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	genReq, errs := h.validator.ValidateGenerate(&req)
	if len(errs) > 0 {
		return errs
	}

	questions, err := h.generator.Generate(c.UserContext(), genReq)
	if err != nil {
		return err
	}
	logger.Get().Info("Generated questions",
		zap.String("user_id", middleware.UserID(c)),
		zap.String("book", genReq.Book),
		zap.Int("added", len(questions)))
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuestionsResponse(questions))
}
