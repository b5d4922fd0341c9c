package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bible-study/internal/domain"
	"bible-study/internal/logger"
)

// HistoryService fronts the history store. Reads never fail: an unavailable
// store yields empty history. Writes are user actions, so their failures are
// returned as retryable Unavailable errors.
type HistoryService struct {
	store domain.HistoryStore
	cache AnalyticsCache
	now   func() time.Time
}

func NewHistoryService(store domain.HistoryStore, cache AnalyticsCache) *HistoryService {
	if cache == nil {
		cache = noopAnalyticsCache{}
	}
	return &HistoryService{store: store, cache: cache, now: time.Now}
}

// SaveQuizResult appends a finished quiz to the user's history.
func (s *HistoryService) SaveQuizResult(ctx context.Context, result *domain.QuizResult) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if err := s.store.SaveQuizResult(ctx, result); err != nil {
		return s.writeFailed("quiz result", result.UserID, err)
	}
	s.invalidate(ctx, result.UserID)
	logger.Get().Info("Saved quiz result",
		zap.String("user_id", result.UserID),
		zap.String("result_id", result.ID),
		zap.Int("score", result.Score),
		zap.Int("total_possible", result.TotalPossible))
	return nil
}

func (s *HistoryService) QuizResults(ctx context.Context, userID string) []domain.QuizResult {
	results, _ := s.quizResults(ctx, userID)
	return results
}

// quizResults and the other lowercase readers return the same empty list
// on a failed read as their exported forms, together with the store error.
func (s *HistoryService) quizResults(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	results, err := s.store.ListQuizResults(ctx, userID)
	if err != nil {
		s.readFailed("quiz results", userID, err)
		return []domain.QuizResult{}, err
	}
	return results, nil
}

// RecordReading marks a chapter as read (or unread). The book name is
// normalized to its canonical spelling.
func (s *HistoryService) RecordReading(ctx context.Context, p *domain.ReadingProgress) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Book, _ = domain.CanonicalBookName(p.Book)
	if p.LastReadAt.IsZero() {
		p.LastReadAt = s.now()
	}
	if err := s.store.UpsertReadingProgress(ctx, p); err != nil {
		return s.writeFailed("reading progress", p.UserID, err)
	}
	s.invalidate(ctx, p.UserID)
	return nil
}

func (s *HistoryService) ReadingProgress(ctx context.Context, userID string) []domain.ReadingProgress {
	progress, _ := s.readingProgress(ctx, userID)
	return progress
}

func (s *HistoryService) readingProgress(ctx context.Context, userID string) ([]domain.ReadingProgress, error) {
	progress, err := s.store.ListReadingProgress(ctx, userID)
	if err != nil {
		s.readFailed("reading progress", userID, err)
		return []domain.ReadingProgress{}, err
	}
	return progress, nil
}

// SaveJournalEntry creates an entry when it has no ID and otherwise updates
// the user's existing entry, failing with NotFound if there is none.
// Updating bumps UpdatedAt only.
func (s *HistoryService) SaveJournalEntry(ctx context.Context, e *domain.JournalEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Book, _ = domain.CanonicalBookName(e.Book)
	e.UpdatedAt = s.now()
	var err error
	if e.ID == "" {
		e.CreatedAt = e.UpdatedAt
		err = s.store.CreateJournalEntry(ctx, e)
	} else {
		err = s.store.UpdateJournalEntry(ctx, e)
	}
	if err != nil {
		return s.writeFailed("journal entry", e.UserID, err)
	}
	s.invalidate(ctx, e.UserID)
	return nil
}

func (s *HistoryService) JournalEntries(ctx context.Context, userID string) []domain.JournalEntry {
	entries, _ := s.journalEntries(ctx, userID)
	return entries
}

func (s *HistoryService) journalEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	entries, err := s.store.ListJournalEntries(ctx, userID)
	if err != nil {
		s.readFailed("journal entries", userID, err)
		return []domain.JournalEntry{}, err
	}
	return entries, nil
}

func (s *HistoryService) RecordStudySession(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.Book != "" {
		session.Book, _ = domain.CanonicalBookName(session.Book)
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = s.now()
	}
	if err := s.store.SaveStudySession(ctx, session); err != nil {
		return s.writeFailed("study session", session.UserID, err)
	}
	s.invalidate(ctx, session.UserID)
	return nil
}

func (s *HistoryService) StudySessions(ctx context.Context, userID string) []domain.StudySession {
	sessions, _ := s.studySessions(ctx, userID)
	return sessions
}

func (s *HistoryService) studySessions(ctx context.Context, userID string) ([]domain.StudySession, error) {
	sessions, err := s.store.ListStudySessions(ctx, userID)
	if err != nil {
		s.readFailed("study sessions", userID, err)
		return []domain.StudySession{}, err
	}
	return sessions, nil
}

func (s *HistoryService) invalidate(ctx context.Context, userID string) {
	// a stale cache entry expires on its own; the write already succeeded
	_ = s.cache.Invalidate(ctx, userID)
}

func (s *HistoryService) readFailed(what, userID string, err error) {
	logger.Get().Warn("History store read failed, using empty history",
		zap.String("what", what),
		zap.String("user_id", userID),
		zap.Error(err))
}

// writeFailed keeps domain errors (e.g. not found) and turns everything
// else into a retryable Unavailable error.
func (s *HistoryService) writeFailed(what, userID string, err error) error {
	logger.Get().Error("History store write failed",
		zap.String("what", what),
		zap.String("user_id", userID),
		zap.Error(err))
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return domain.NewUnavailableError("the history store", err)
}
