package domain

import (
	"context"
	"strings"
	"time"
)

// ReadingProgress marks a chapter a user has read. One record per user/book/chapter.
type ReadingProgress struct {
	UserID     string    `json:"user_id"`
	Book       string    `json:"book"`
	Chapter    int       `json:"chapter"`
	Completed  bool      `json:"completed"`
	LastReadAt time.Time `json:"last_read_at"`
}

// Validate validates the reading progress record
func (p *ReadingProgress) Validate() error {
	if p.UserID == "" {
		return NewValidationError("user ID is required")
	}
	if BookIndex(p.Book) < 0 {
		return NewValidationError("book must be a canonical book name")
	}
	if p.Chapter <= 0 {
		return NewValidationError("chapter must be positive")
	}
	return nil
}

// JournalEntry is a free-text note attached to a chapter.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Book      string    `json:"book"`
	Chapter   int       `json:"chapter"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates the journal entry
func (j *JournalEntry) Validate() error {
	if j.UserID == "" {
		return NewValidationError("user ID is required")
	}
	if BookIndex(j.Book) < 0 {
		return NewValidationError("book must be a canonical book name")
	}
	if j.Chapter <= 0 {
		return NewValidationError("chapter must be positive")
	}
	if strings.TrimSpace(j.Content) == "" {
		return NewValidationError("content is required")
	}
	return nil
}

// StudySession is one recorded study sitting. Book, chapter and score are optional.
type StudySession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DurationMinutes int       `json:"duration_minutes"`
	StartedAt       time.Time `json:"started_at"`
	Book            string    `json:"book,omitempty"`
	Chapter         *int      `json:"chapter,omitempty"`
	Score           *float64  `json:"score,omitempty"`
}

// Validate validates the study session
func (s *StudySession) Validate() error {
	if s.UserID == "" {
		return NewValidationError("user ID is required")
	}
	if s.DurationMinutes < 0 {
		return NewValidationError("duration must not be negative")
	}
	if s.Book != "" && BookIndex(s.Book) < 0 {
		return NewValidationError("book must be a canonical book name")
	}
	if s.Score != nil && (*s.Score < 0 || *s.Score > 100) {
		return NewValidationError("score must be between 0 and 100")
	}
	return nil
}

// HistoryStore persists everything the analytics and the learning plan are computed from.
type HistoryStore interface {
	SaveQuizResult(ctx context.Context, result *QuizResult) error
	ListQuizResults(ctx context.Context, userID string) ([]QuizResult, error)

	UpsertReadingProgress(ctx context.Context, progress *ReadingProgress) error
	ListReadingProgress(ctx context.Context, userID string) ([]ReadingProgress, error)

	CreateJournalEntry(ctx context.Context, entry *JournalEntry) error
	// UpdateJournalEntry fails with ErrNotFound unless the entry exists and
	// belongs to entry.UserID.
	UpdateJournalEntry(ctx context.Context, entry *JournalEntry) error
	ListJournalEntries(ctx context.Context, userID string) ([]JournalEntry, error)

	SaveStudySession(ctx context.Context, session *StudySession) error
	ListStudySessions(ctx context.Context, userID string) ([]StudySession, error)
}

// QuestionStore persists questions added to the bank at runtime (e.g. AI generated).
type QuestionStore interface {
	SaveQuestions(ctx context.Context, questions []QuizQuestion) error
	ListQuestions(ctx context.Context) ([]QuizQuestion, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
