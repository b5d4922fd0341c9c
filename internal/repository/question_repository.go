package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bible-study/internal/domain"
	"bible-study/internal/logger"
	"bible-study/internal/repository/models"
	"bible-study/internal/util"
)

// sqlxQuestionRepository persists questions added at runtime.
type sqlxQuestionRepository struct {
	db *sqlx.DB
	tm domain.TransactionManager
}

func NewQuestionRepository(db *sqlx.DB) domain.QuestionStore {
	return &sqlxQuestionRepository{db: db, tm: NewTransactionManagerAdapter(db)}
}

func fromDomainQuestion(q *domain.QuizQuestion, createdAt time.Time) models.Question {
	return models.Question{
		ID:            q.ID,
		Book:          q.Source.Book,
		Chapter:       q.Source.Chapter,
		Verse:         util.IntPtrToNullInt64(q.Source.Verse),
		Prompt:        q.Prompt,
		Type:          string(q.Type),
		Options:       models.StringSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   util.StringToNullString(q.Explanation),
		Difficulty:    q.Difficulty.String(),
		TimeLimit:     util.IntPtrToNullInt64(q.TimeLimit),
		Points:        util.IntPtrToNullInt64(q.Points),
		Category:      util.StringToNullString(q.Category),
		Topic:         util.StringToNullString(q.Topic),
		CreatedAt:     createdAt.UTC(),
	}
}

func toDomainQuestion(m *models.Question) (domain.QuizQuestion, error) {
	difficulty, err := domain.ParseDifficulty(m.Difficulty)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("question %s: %w", m.ID, err)
	}
	q := domain.QuizQuestion{
		ID: m.ID,
		Source: domain.SourceRef{
			Book:    m.Book,
			Chapter: m.Chapter,
			Verse:   util.NullInt64ToIntPtr(m.Verse),
		},
		Prompt:        m.Prompt,
		Type:          domain.QuestionType(m.Type),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		Difficulty:    difficulty,
		TimeLimit:     util.NullInt64ToIntPtr(m.TimeLimit),
		Points:        util.NullInt64ToIntPtr(m.Points),
		Category:      m.Category.String,
		Topic:         m.Topic.String,
	}
	if len(m.Options) > 0 {
		q.Options = []string(m.Options)
	}
	return q, nil
}

// SaveQuestions inserts questions in one transaction; existing IDs are left untouched.
func (r *sqlxQuestionRepository) SaveQuestions(ctx context.Context, questions []domain.QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	now := time.Now()
	return r.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)
		query := `INSERT INTO questions (id, book, chapter, verse, prompt, type, options, correct_answer, explanation, difficulty, time_limit, points, category, topic, created_at)
		          VALUES (:id, :book, :chapter, :verse, :prompt, :type, :options, :correct_answer, :explanation, :difficulty, :time_limit, :points, :category, :topic, :created_at)
		          ON CONFLICT (id) DO NOTHING`
		for i := range questions {
			if questions[i].ID == "" {
				questions[i].ID = util.NewULID()
			}
			row := fromDomainQuestion(&questions[i], now)
			if _, err := exec.NamedExecContext(txCtx, query, row); err != nil {
				return fmt.Errorf("failed to insert question %s: %w", questions[i].ID, err)
			}
		}
		return nil
	})
}

// ListQuestions returns stored questions oldest first. Rows with an unknown
// difficulty are logged and left out.
func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context) ([]domain.QuizQuestion, error) {
	var rows []models.Question
	query := `SELECT id, book, chapter, verse, prompt, type, options, correct_answer, explanation, difficulty, time_limit, points, category, topic, created_at
	          FROM questions ORDER BY created_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	out := make([]domain.QuizQuestion, 0, len(rows))
	for i := range rows {
		q, err := toDomainQuestion(&rows[i])
		if err != nil {
			logger.Get().Warn("Skipping unreadable stored question", zap.String("question_id", rows[i].ID), zap.Error(err))
			continue
		}
		out = append(out, q)
	}
	return out, nil
}
