package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bible-study/internal/domain"
	"bible-study/internal/repository/models"
	"bible-study/internal/util"
)

// sqlxHistoryRepository implements domain.HistoryStore on SQLite.
type sqlxHistoryRepository struct {
	db *sqlx.DB
	tm domain.TransactionManager
}

// NewHistoryRepository creates the sqlx-backed history store.
func NewHistoryRepository(db *sqlx.DB) domain.HistoryStore {
	return &sqlxHistoryRepository{db: db, tm: NewTransactionManagerAdapter(db)}
}

func fromDomainQuizResult(r *domain.QuizResult) (*models.QuizResult, []models.QuestionOutcome) {
	result := &models.QuizResult{
		ID:             r.ID,
		UserID:         r.UserID,
		Difficulty:     r.Difficulty.String(),
		Score:          r.Score,
		TotalPossible:  r.TotalPossible,
		CorrectAnswers: r.CorrectAnswers,
		TotalQuestions: r.TotalQuestions,
		TimeSpent:      r.TimeSpent,
		Categories:     models.StringSlice(r.Categories),
		Topics:         models.StringSlice(r.Topics),
		StartedAt:      util.TimeToNullTime(r.StartedAt.UTC()),
		CompletedAt:    r.CompletedAt.UTC(),
	}

	outcomes := make([]models.QuestionOutcome, 0, len(r.Outcomes))
	for i, o := range r.Outcomes {
		outcomes = append(outcomes, models.QuestionOutcome{
			ResultID:        r.ID,
			Position:        i,
			QuestionID:      o.QuestionID,
			Book:            o.Book,
			Category:        util.StringToNullString(o.Category),
			Topic:           util.StringToNullString(o.Topic),
			SubmittedAnswer: o.SubmittedAnswer,
			CorrectAnswer:   o.CorrectAnswer,
			IsCorrect:       o.IsCorrect,
			PointsEarned:    o.PointsEarned,
			PointsPossible:  o.PointsPossible,
			TimeSpent:       o.TimeSpent,
		})
	}
	return result, outcomes
}

func toDomainQuizResult(m *models.QuizResult, outcomes []models.QuestionOutcome) domain.QuizResult {
	difficulty, _ := domain.ParseDifficulty(m.Difficulty)
	r := domain.QuizResult{
		ID:             m.ID,
		UserID:         m.UserID,
		Difficulty:     difficulty,
		Score:          m.Score,
		TotalPossible:  m.TotalPossible,
		CorrectAnswers: m.CorrectAnswers,
		TotalQuestions: m.TotalQuestions,
		TimeSpent:      m.TimeSpent,
		Categories:     []string(m.Categories),
		Topics:         []string(m.Topics),
		CompletedAt:    m.CompletedAt,
		Outcomes:       make([]domain.QuestionOutcome, 0, len(outcomes)),
	}
	if m.StartedAt.Valid {
		r.StartedAt = m.StartedAt.Time
	}
	for _, o := range outcomes {
		r.Outcomes = append(r.Outcomes, domain.QuestionOutcome{
			QuestionID:      o.QuestionID,
			Book:            o.Book,
			Category:        o.Category.String,
			Topic:           o.Topic.String,
			SubmittedAnswer: o.SubmittedAnswer,
			CorrectAnswer:   o.CorrectAnswer,
			IsCorrect:       o.IsCorrect,
			PointsEarned:    o.PointsEarned,
			PointsPossible:  o.PointsPossible,
			TimeSpent:       o.TimeSpent,
		})
	}
	return r
}

// SaveQuizResult inserts a result and its outcomes atomically.
func (r *sqlxHistoryRepository) SaveQuizResult(ctx context.Context, result *domain.QuizResult) error {
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}
	row, outcomes := fromDomainQuizResult(result)

	return r.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)
		query := `INSERT INTO quiz_results (id, user_id, difficulty, score, total_possible, correct_answers, total_questions, time_spent, categories, topics, started_at, completed_at)
		          VALUES (:id, :user_id, :difficulty, :score, :total_possible, :correct_answers, :total_questions, :time_spent, :categories, :topics, :started_at, :completed_at)`
		if _, err := exec.NamedExecContext(txCtx, query, row); err != nil {
			if isUniqueViolation(err) {
				return domain.NewInvalidInputError(fmt.Sprintf("quiz result %s already exists", result.ID))
			}
			return fmt.Errorf("failed to insert quiz result: %w", err)
		}

		outcomeQuery := `INSERT INTO quiz_result_outcomes (result_id, position, question_id, book, category, topic, submitted_answer, correct_answer, is_correct, points_earned, points_possible, time_spent)
		                 VALUES (:result_id, :position, :question_id, :book, :category, :topic, :submitted_answer, :correct_answer, :is_correct, :points_earned, :points_possible, :time_spent)`
		for i := range outcomes {
			if _, err := exec.NamedExecContext(txCtx, outcomeQuery, &outcomes[i]); err != nil {
				return fmt.Errorf("failed to insert quiz outcome %d: %w", i, err)
			}
		}
		return nil
	})
}

// ListQuizResults returns a user's results oldest first, outcomes in question order.
func (r *sqlxHistoryRepository) ListQuizResults(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.QuizResult
	query := `SELECT id, user_id, difficulty, score, total_possible, correct_answers, total_questions, time_spent, categories, topics, started_at, completed_at
	          FROM quiz_results WHERE user_id = ? ORDER BY completed_at ASC, id ASC`
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}
	if len(rows) == 0 {
		return []domain.QuizResult{}, nil
	}

	var outcomes []models.QuestionOutcome
	outcomeQuery := `SELECT o.result_id, o.position, o.question_id, o.book, o.category, o.topic, o.submitted_answer, o.correct_answer, o.is_correct, o.points_earned, o.points_possible, o.time_spent
	                 FROM quiz_result_outcomes o JOIN quiz_results r ON r.id = o.result_id
	                 WHERE r.user_id = ? ORDER BY o.result_id, o.position`
	if err := exec.SelectContext(ctx, &outcomes, outcomeQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz outcomes: %w", err)
	}
	byResult := make(map[string][]models.QuestionOutcome, len(rows))
	for _, o := range outcomes {
		byResult[o.ResultID] = append(byResult[o.ResultID], o)
	}

	results := make([]domain.QuizResult, 0, len(rows))
	for i := range rows {
		results = append(results, toDomainQuizResult(&rows[i], byResult[rows[i].ID]))
	}
	return results, nil
}

// UpsertReadingProgress keeps one row per user, book and chapter.
func (r *sqlxHistoryRepository) UpsertReadingProgress(ctx context.Context, p *domain.ReadingProgress) error {
	if p.LastReadAt.IsZero() {
		p.LastReadAt = time.Now()
	}
	row := models.ReadingProgress{
		UserID:     p.UserID,
		Book:       p.Book,
		Chapter:    p.Chapter,
		Completed:  p.Completed,
		LastReadAt: p.LastReadAt.UTC(),
	}
	query := `INSERT INTO reading_progress (user_id, book, chapter, completed, last_read_at)
	          VALUES (:user_id, :book, :chapter, :completed, :last_read_at)
	          ON CONFLICT (user_id, book, chapter) DO UPDATE SET completed = excluded.completed, last_read_at = excluded.last_read_at`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert reading progress: %w", err)
	}
	return nil
}

// ListReadingProgress returns rows in the order chapters were first recorded.
func (r *sqlxHistoryRepository) ListReadingProgress(ctx context.Context, userID string) ([]domain.ReadingProgress, error) {
	var rows []models.ReadingProgress
	query := `SELECT user_id, book, chapter, completed, last_read_at FROM reading_progress WHERE user_id = ? ORDER BY rowid`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list reading progress: %w", err)
	}
	out := make([]domain.ReadingProgress, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ReadingProgress(row))
	}
	return out, nil
}

func (r *sqlxHistoryRepository) CreateJournalEntry(ctx context.Context, e *domain.JournalEntry) error {
	now := time.Now()
	if e.ID == "" {
		e.ID = util.NewULID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	row := models.JournalEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		Book:      e.Book,
		Chapter:   e.Chapter,
		Content:   e.Content,
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
	query := `INSERT INTO journal_entries (id, user_id, book, chapter, content, created_at, updated_at)
	          VALUES (:id, :user_id, :book, :chapter, :content, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return domain.NewInvalidInputError(fmt.Sprintf("journal entry %s already exists", e.ID))
		}
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// UpdateJournalEntry rewrites the content of an existing entry owned by the
// same user and fills in its CreatedAt. It never creates an entry.
func (r *sqlxHistoryRepository) UpdateJournalEntry(ctx context.Context, e *domain.JournalEntry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	exec := GetExecutor(ctx, r.db)
	res, err := exec.ExecContext(ctx,
		`UPDATE journal_entries SET book = ?, chapter = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		e.Book, e.Chapter, e.Content, e.UpdatedAt.UTC(), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("journal entry not found: %s", e.ID))
	}
	var createdAt time.Time
	if err := exec.GetContext(ctx, &createdAt, `SELECT created_at FROM journal_entries WHERE id = ?`, e.ID); err != nil {
		return fmt.Errorf("failed to read journal entry %s: %w", e.ID, err)
	}
	e.CreatedAt = createdAt
	return nil
}

func (r *sqlxHistoryRepository) ListJournalEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	var rows []models.JournalEntry
	query := `SELECT id, user_id, book, chapter, content, created_at, updated_at FROM journal_entries WHERE user_id = ? ORDER BY created_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	out := make([]domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.JournalEntry(row))
	}
	return out, nil
}

// SaveStudySession stores StartedAt in UTC together with its zone offset, so
// the time of day the user studied survives the round trip.
func (r *sqlxHistoryRepository) SaveStudySession(ctx context.Context, s *domain.StudySession) error {
	if s.ID == "" {
		s.ID = util.NewULID()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	_, offset := s.StartedAt.Zone()
	row := models.StudySession{
		ID:              s.ID,
		UserID:          s.UserID,
		DurationMinutes: s.DurationMinutes,
		StartedAt:       s.StartedAt.UTC(),
		TZOffset:        offset,
		Book:            util.StringToNullString(s.Book),
		Chapter:         util.IntPtrToNullInt64(s.Chapter),
		Score:           util.FloatPtrToNullFloat64(s.Score),
	}
	query := `INSERT INTO study_sessions (id, user_id, duration_minutes, started_at, tz_offset, book, chapter, score)
	          VALUES (:id, :user_id, :duration_minutes, :started_at, :tz_offset, :book, :chapter, :score)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save study session: %w", err)
	}
	return nil
}

func (r *sqlxHistoryRepository) ListStudySessions(ctx context.Context, userID string) ([]domain.StudySession, error) {
	var rows []models.StudySession
	query := `SELECT id, user_id, duration_minutes, started_at, tz_offset, book, chapter, score FROM study_sessions WHERE user_id = ? ORDER BY started_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list study sessions: %w", err)
	}
	out := make([]domain.StudySession, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StudySession{
			ID:              row.ID,
			UserID:          row.UserID,
			DurationMinutes: row.DurationMinutes,
			StartedAt:       sessionClock(row.StartedAt, row.TZOffset),
			Book:            row.Book.String,
			Chapter:         util.NullInt64ToIntPtr(row.Chapter),
			Score:           util.NullFloat64ToFloatPtr(row.Score),
		})
	}
	return out, nil
}

// sessionClock restores the wall clock a study session was recorded in.
func sessionClock(startedAt time.Time, offset int) time.Time {
	if offset == 0 {
		return startedAt.UTC()
	}
	return startedAt.In(time.FixedZone("", offset))
}
