package models

import (
	"database/sql"
	"time"
)

type QuizResult struct {
	ID             string       `db:"id"`
	UserID         string       `db:"user_id"`
	Difficulty     string       `db:"difficulty"`
	Score          int          `db:"score"`
	TotalPossible  int          `db:"total_possible"`
	CorrectAnswers int          `db:"correct_answers"`
	TotalQuestions int          `db:"total_questions"`
	TimeSpent      int          `db:"time_spent"`
	Categories     StringSlice  `db:"categories"`
	Topics         StringSlice  `db:"topics"`
	StartedAt      sql.NullTime `db:"started_at"`
	CompletedAt    time.Time    `db:"completed_at"`
}

type QuestionOutcome struct {
	ResultID        string         `db:"result_id"`
	Position        int            `db:"position"`
	QuestionID      string         `db:"question_id"`
	Book            string         `db:"book"`
	Category        sql.NullString `db:"category"`
	Topic           sql.NullString `db:"topic"`
	SubmittedAnswer string         `db:"submitted_answer"`
	CorrectAnswer   string         `db:"correct_answer"`
	IsCorrect       bool           `db:"is_correct"`
	PointsEarned    int            `db:"points_earned"`
	PointsPossible  int            `db:"points_possible"`
	TimeSpent       int            `db:"time_spent"`
}

type ReadingProgress struct {
	UserID     string    `db:"user_id"`
	Book       string    `db:"book"`
	Chapter    int       `db:"chapter"`
	Completed  bool      `db:"completed"`
	LastReadAt time.Time `db:"last_read_at"`
}

type JournalEntry struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Book      string    `db:"book"`
	Chapter   int       `db:"chapter"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type StudySession struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	DurationMinutes int             `db:"duration_minutes"`
	StartedAt       time.Time       `db:"started_at"`
	TZOffset        int             `db:"tz_offset"`
	Book            sql.NullString  `db:"book"`
	Chapter         sql.NullInt64   `db:"chapter"`
	Score           sql.NullFloat64 `db:"score"`
}

type Question struct {
	ID            string         `db:"id"`
	Book          string         `db:"book"`
	Chapter       int            `db:"chapter"`
	Verse         sql.NullInt64  `db:"verse"`
	Prompt        string         `db:"prompt"`
	Type          string         `db:"type"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	Difficulty    string         `db:"difficulty"`
	TimeLimit     sql.NullInt64  `db:"time_limit"`
	Points        sql.NullInt64  `db:"points"`
	Category      sql.NullString `db:"category"`
	Topic         sql.NullString `db:"topic"`
	CreatedAt     time.Time      `db:"created_at"`
}
