package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"bible-study/internal/middleware"
	"bible-study/internal/service"
	"bible-study/internal/validation"
)

// RouteConfig holds what SetupRoutes needs besides the handlers.
type RouteConfig struct {
	Auth                service.AuthService
	Validator           *validation.Validator
	GenerationPerMinute int // 0 disables the limit
}

// SetupRoutes mounts the API under /api.
func SetupRoutes(app *fiber.App, quiz *QuizHandler, user *UserHandler, cfg RouteConfig) {
	api := app.Group("/api")
	protected := middleware.Protected(cfg.Auth)
	validate := middleware.NewValidationMiddleware(cfg.Validator)

	// Bank browsing is public
	api.Get("/books", quiz.ListBooks)
	api.Get("/questions", quiz.ListQuestions)

	quizzes := api.Group("/quizzes", protected)
	quizzes.Post("/generate", generationLimiter(cfg.GenerationPerMinute), quiz.GenerateQuestions)

	sessions := quizzes.Group("/sessions")
	sessions.Post("/", quiz.StartSession)
	byID := sessions.Group("/:"+middleware.SessionIDParam, validate.ValidateSessionID())
	byID.Get("/", quiz.GetSession)
	byID.Delete("/", quiz.AbandonSession)
	byID.Post("/answers", quiz.SubmitAnswer)
	byID.Post("/next", quiz.NextQuestion)
	byID.Post("/previous", quiz.PreviousQuestion)
	byID.Post("/finish", quiz.FinishSession)
	byID.Get("/result", quiz.GetResult)

	me := api.Group("/users/me", protected)
	me.Post("/results", user.SaveQuizResult)
	me.Get("/results", user.GetQuizResults)
	me.Put("/reading", user.RecordReading)
	me.Get("/reading", user.GetReadingProgress)
	me.Post("/journal", user.CreateJournalEntry)
	me.Put("/journal/:entryID", user.UpdateJournalEntry)
	me.Get("/journal", user.GetJournalEntries)
	me.Post("/study-sessions", user.RecordStudySession)
	me.Get("/study-sessions", user.GetStudySessions)
	me.Get("/metrics", user.GetMyMetrics)
	me.Get("/learning-plan", user.GetMyLearningPlan)
}

// generationLimiter limits AI generation per user. It must run after Protected.
func generationLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return middleware.UserID(c)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(middleware.ErrorResponse{
				Code:      "RATE_LIMITED",
				Message:   "Too many generation requests, please wait a minute",
				Status:    fiber.StatusTooManyRequests,
				Retryable: true,
			})
		},
	})
}
