package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-study/internal/database"
	"bible-study/internal/domain"
)

// setupSQLiteDB opens a migrated in-memory database.
func setupSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return db
}

// setupMockDB creates a sqlx.DB backed by sqlmock for failure paths.
func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func at(hour int) time.Time { return time.Date(2026, 2, 1, hour, 0, 0, 0, time.UTC) }

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	db, mock := setupMockDB(t)
	tm := NewTransactionManagerAdapter(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := tm.WithTransaction(ctx, func(txCtx context.Context) error {
		_, isTx := GetExecutor(txCtx, db).(*sqlx.Tx)
		assert.True(t, isTx)
		// Nested calls join the outer transaction.
		return tm.WithTransaction(txCtx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = tm.WithTransaction(ctx, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	mock.ExpectBegin().WillReturnError(errors.New("locked"))
	err = tm.WithTransaction(ctx, func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "failed to begin transaction")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_DefaultsToDB(t *testing.T) {
	db, _ := setupMockDB(t)
	assert.Same(t, db, GetExecutor(context.Background(), db))
}

func TestHistoryRepository_QuizResultRoundTrip(t *testing.T) {
	repo := NewHistoryRepository(setupSQLiteDB(t))
	ctx := context.Background()

	first := &domain.QuizResult{
		UserID:         "u1",
		Difficulty:     domain.DifficultyEasyToGo,
		Score:          5,
		TotalPossible:  10,
		CorrectAnswers: 1,
		TotalQuestions: 2,
		TimeSpent:      10,
		Categories:     []string{"Gospels"},
		Topics:         []string{"Miracles"},
		StartedAt:      at(8),
		CompletedAt:    at(9),
		Outcomes: []domain.QuestionOutcome{
			{QuestionID: "q1", Book: "John", Category: "Gospels", Topic: "Miracles", SubmittedAnswer: "Wine", CorrectAnswer: "Wine", IsCorrect: true, PointsEarned: 5, PointsPossible: 5, TimeSpent: 3},
			{QuestionID: "q2", Book: "Ruth", SubmittedAnswer: "", CorrectAnswer: "Boaz", PointsPossible: 5, TimeSpent: 7},
		},
	}
	second := &domain.QuizResult{UserID: "u1", Difficulty: domain.DifficultyGraniteHard, CompletedAt: at(7)}
	other := &domain.QuizResult{UserID: "u2", Difficulty: domain.DifficultyGraniteHard, CompletedAt: at(6)}

	require.NoError(t, repo.SaveQuizResult(ctx, first))
	require.NoError(t, repo.SaveQuizResult(ctx, second))
	require.NoError(t, repo.SaveQuizResult(ctx, other))
	assert.NotEmpty(t, first.ID)

	results, err := repo.ListQuizResults(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, second.ID, results[0].ID, "oldest first")
	got := results[1]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, domain.DifficultyEasyToGo, got.Difficulty)
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, []string{"Gospels"}, got.Categories)
	assert.True(t, got.StartedAt.Equal(at(8)))
	assert.True(t, got.CompletedAt.Equal(at(9)))
	require.Len(t, got.Outcomes, 2)
	assert.Equal(t, "Miracles", got.Outcomes[0].Topic)
	assert.True(t, got.Outcomes[0].IsCorrect)
	assert.Equal(t, "", got.Outcomes[1].Category)
	assert.Equal(t, 7, got.Outcomes[1].TimeSpent)
	assert.Empty(t, results[0].Outcomes)

	none, err := repo.ListQuizResults(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestHistoryRepository_DuplicateQuizResultIsInvalidInput(t *testing.T) {
	repo := NewHistoryRepository(setupSQLiteDB(t))
	ctx := context.Background()

	first := &domain.QuizResult{ID: "r-1", UserID: "u1", Difficulty: domain.DifficultyEasyToGo, CompletedAt: at(9)}
	require.NoError(t, repo.SaveQuizResult(ctx, first))

	again := &domain.QuizResult{ID: "r-1", UserID: "u2", Difficulty: domain.DifficultyEasyToGo, CompletedAt: at(10)}
	err := repo.SaveQuizResult(ctx, again)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr), "got %v", err)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.False(t, domainErr.Retryable())

	others, err := repo.ListQuizResults(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestHistoryRepository_SaveQuizResultRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHistoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quiz_results")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quiz_result_outcomes")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.SaveQuizResult(context.Background(), &domain.QuizResult{
		UserID:     "u1",
		Difficulty: domain.DifficultyEasyToGo,
		Outcomes:   []domain.QuestionOutcome{{QuestionID: "q1", Book: "Jude"}},
	})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepository_ListErrorsPropagate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewHistoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM quiz_results")).WillReturnError(errors.New("no such table"))
	_, err := repo.ListQuizResults(context.Background(), "u1")
	assert.ErrorContains(t, err, "failed to list quiz results")

	mock.ExpectQuery(regexp.QuoteMeta("FROM reading_progress")).WillReturnError(errors.New("no such table"))
	_, err = repo.ListReadingProgress(context.Background(), "u1")
	assert.ErrorContains(t, err, "failed to list reading progress")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepository_ReadingProgressUpsert(t *testing.T) {
	repo := NewHistoryRepository(setupSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertReadingProgress(ctx, &domain.ReadingProgress{UserID: "u1", Book: "Mark", Chapter: 1, LastReadAt: at(1)}))
	require.NoError(t, repo.UpsertReadingProgress(ctx, &domain.ReadingProgress{UserID: "u1", Book: "Acts", Chapter: 2, Completed: true, LastReadAt: at(2)}))
	require.NoError(t, repo.UpsertReadingProgress(ctx, &domain.ReadingProgress{UserID: "u1", Book: "Mark", Chapter: 1, Completed: true, LastReadAt: at(3)}))

	progress, err := repo.ListReadingProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "Mark", progress[0].Book, "first recorded chapter stays first")
	assert.True(t, progress[0].Completed)
	assert.True(t, progress[0].LastReadAt.Equal(at(3)))
	assert.Equal(t, "Acts", progress[1].Book)
}

func TestHistoryRepository_JournalEntries(t *testing.T) {
	repo := NewHistoryRepository(setupSQLiteDB(t))
	ctx := context.Background()

	entry := &domain.JournalEntry{UserID: "u1", Book: "Psalms", Chapter: 23, Content: "The Lord is my shepherd", CreatedAt: at(1), UpdatedAt: at(1)}
	require.NoError(t, repo.CreateJournalEntry(ctx, entry))
	require.NotEmpty(t, entry.ID)

	update := &domain.JournalEntry{ID: entry.ID, UserID: "u1", Book: "Psalms", Chapter: 23, Content: "Still waters", UpdatedAt: at(5)}
	require.NoError(t, repo.UpdateJournalEntry(ctx, update))
	assert.True(t, update.CreatedAt.Equal(at(1)), "update reports the original creation time")

	hijack := &domain.JournalEntry{ID: entry.ID, UserID: "u2", Book: "Psalms", Chapter: 1, Content: "mine now"}
	err := repo.UpdateJournalEntry(ctx, hijack)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// updating an unknown id must not create it
	unknown := &domain.JournalEntry{ID: "01HZX3J8Q5Y1V0K6T2M9N4P7ZZ", UserID: "u1", Book: "Psalms", Chapter: 1, Content: "new?"}
	err = repo.UpdateJournalEntry(ctx, unknown)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	dup := &domain.JournalEntry{ID: entry.ID, UserID: "u1", Book: "Psalms", Chapter: 1, Content: "again"}
	err = repo.CreateJournalEntry(ctx, dup)
	assert.True(t, errors.Is(err, &domain.DomainError{Code: domain.CodeInvalidInput}))

	entries, err := repo.ListJournalEntries(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Still waters", entries[0].Content)
	assert.True(t, entries[0].UpdatedAt.Equal(at(5)))
	assert.True(t, entries[0].CreatedAt.Equal(at(1)))

	others, err := repo.ListJournalEntries(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestHistoryRepository_StudySessions(t *testing.T) {
	repo := NewHistoryRepository(setupSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveStudySession(ctx, &domain.StudySession{UserID: "u1", DurationMinutes: 20, StartedAt: at(19), Book: "Romans", Chapter: intPtr(8), Score: floatPtr(92.5)}))
	require.NoError(t, repo.SaveStudySession(ctx, &domain.StudySession{UserID: "u1", DurationMinutes: 10, StartedAt: at(7)}))

	sessions, err := repo.ListStudySessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, 10, sessions[0].DurationMinutes)
	assert.Nil(t, sessions[0].Chapter)
	assert.Nil(t, sessions[0].Score)
	assert.Equal(t, "", sessions[0].Book)

	assert.Equal(t, "Romans", sessions[1].Book)
	assert.Equal(t, 8, *sessions[1].Chapter)
	assert.Equal(t, 92.5, *sessions[1].Score)
	assert.True(t, sessions[1].StartedAt.Equal(at(19)))
}

func TestHistoryRepository_StudySessionKeepsLocalClock(t *testing.T) {
	repo := NewHistoryRepository(setupSQLiteDB(t))
	ctx := context.Background()
	est := time.FixedZone("EST", -5*60*60)
	ist := time.FixedZone("IST", 5*60*60+30*60)

	require.NoError(t, repo.SaveStudySession(ctx, &domain.StudySession{UserID: "u1", DurationMinutes: 30, StartedAt: time.Date(2026, 2, 2, 8, 0, 0, 0, est), Score: floatPtr(90)}))
	require.NoError(t, repo.SaveStudySession(ctx, &domain.StudySession{UserID: "u1", DurationMinutes: 15, StartedAt: time.Date(2026, 2, 2, 6, 0, 0, 0, ist)}))

	sessions, err := repo.ListStudySessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// ordered by the instant, not the wall clock
	assert.Equal(t, 15, sessions[0].DurationMinutes)
	assert.Equal(t, 6, sessions[0].StartedAt.Hour())
	_, offset := sessions[0].StartedAt.Zone()
	assert.Equal(t, 19800, offset)

	assert.Equal(t, 8, sessions[1].StartedAt.Hour())
	assert.True(t, sessions[1].StartedAt.Equal(time.Date(2026, 2, 2, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.TimeOfDayMorning, domain.BucketForHour(sessions[1].StartedAt.Hour()))
}

func TestQuestionRepository_RoundTrip(t *testing.T) {
	repo := NewQuestionRepository(setupSQLiteDB(t))
	ctx := context.Background()

	questions := []domain.QuizQuestion{
		{
			Source:        domain.SourceRef{Book: "John", Chapter: 3, Verse: intPtr(16)},
			Prompt:        "For God so loved the ____",
			Type:          domain.QuestionTypeFillInBlank,
			CorrectAnswer: "world",
			Difficulty:    domain.DifficultyEasyToGo,
			Topic:         "Salvation",
		},
		{
			ID:            "fixed-id",
			Source:        domain.SourceRef{Book: "Daniel", Chapter: 6},
			Prompt:        "Where was Daniel cast?",
			Type:          domain.QuestionTypeMultipleChoice,
			Options:       []string{"A den of lions", "A furnace"},
			CorrectAnswer: "A den of lions",
			Explanation:   "Daniel 6:16",
			Difficulty:    domain.DifficultyCrackMyHead,
			TimeLimit:     intPtr(12),
			Points:        intPtr(30),
			Category:      "Major Prophets",
		},
	}
	require.NoError(t, repo.SaveQuestions(ctx, questions))
	require.NotEmpty(t, questions[0].ID)

	// Saving the same IDs again is ignored.
	require.NoError(t, repo.SaveQuestions(ctx, questions[1:]))

	stored, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	byID := map[string]domain.QuizQuestion{}
	for _, q := range stored {
		byID[q.ID] = q
	}
	assert.Equal(t, questions[0], byID[questions[0].ID])
	assert.Equal(t, questions[1], byID["fixed-id"])
}

func TestQuestionRepository_EmptySaveIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewQuestionRepository(db)
	require.NoError(t, repo.SaveQuestions(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
