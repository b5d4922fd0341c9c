package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"bible-study/internal/config"
	"bible-study/internal/domain"
	"bible-study/internal/engine"
	"bible-study/internal/logger"
	"bible-study/internal/questionbank"
	"bible-study/internal/util"
)

// StartSessionRequest selects the questions of a new quiz.
type StartSessionRequest struct {
	Books      []string
	Difficulty domain.Difficulty
	Type       domain.QuestionType
	Count      int
}

// SessionService owns the running quiz sessions. Sessions belong to the
// user that started them; other users see them as not found.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry

	bank    *questionbank.Bank
	history *HistoryService
	quizCfg config.QuizConfig
	idleTTL time.Duration
	clock   engine.Clock
}

type sessionEntry struct {
	session    *engine.Session
	lastActive time.Time // guarded by SessionService.mu

	saveMu sync.Mutex
	saved  bool
}

func NewSessionService(bank *questionbank.Bank, history *HistoryService, quizCfg config.QuizConfig, sessionCfg config.SessionConfig) *SessionService {
	return &SessionService{
		sessions: make(map[string]*sessionEntry),
		bank:     bank,
		history:  history,
		quizCfg:  quizCfg,
		idleTTL:  sessionCfg.IdleTTL,
		clock:    engine.RealClock{},
	}
}

// WithClock replaces the session clock. Intended for tests.
func (s *SessionService) WithClock(c engine.Clock) *SessionService {
	s.clock = c
	return s
}

// Start begins a new quiz for userID.
func (s *SessionService) Start(ctx context.Context, userID string, req StartSessionRequest) (engine.Snapshot, error) {
	count := req.Count
	if count <= 0 {
		count = s.quizCfg.DefaultCount
	}
	if s.quizCfg.MaxCount > 0 && count > s.quizCfg.MaxCount {
		return engine.Snapshot{}, domain.NewOutOfRangeError("count", count, 1, s.quizCfg.MaxCount)
	}

	books := make([]string, 0, len(req.Books))
	for _, b := range req.Books {
		if name, ok := domain.CanonicalBookName(b); ok {
			books = append(books, name)
		} else {
			books = append(books, b)
		}
	}

	entry := &sessionEntry{}
	session, err := engine.Start(s.bank.All(), domain.QuestionFilter{
		Books:      books,
		Difficulty: req.Difficulty,
		Type:       req.Type,
	}, count, engine.Options{
		ID:           util.NewULID(),
		UserID:       userID,
		Clock:        s.clock,
		TimeoutGrace: s.quizCfg.TimeoutGrace,
		CorrectGrace: s.quizCfg.CorrectGrace,
		OnComplete: func(result *domain.QuizResult) {
			if err := s.persist(context.Background(), entry, result); err != nil {
				logger.Get().Error("Failed to save finished quiz; it can be retried via finish",
					zap.String("result_id", result.ID),
					zap.Error(err))
			}
		},
	})
	if err != nil {
		return engine.Snapshot{}, err
	}
	entry.session = session

	s.mu.Lock()
	entry.lastActive = s.clock.Now()
	s.sessions[session.ID()] = entry
	s.mu.Unlock()

	logger.Get().Info("Quiz session started",
		zap.String("session_id", session.ID()),
		zap.String("user_id", userID),
		zap.String("difficulty", req.Difficulty.String()),
		zap.Int("questions", session.Snapshot().Total))
	return session.Snapshot(), nil
}

// Get returns the current state of a session.
func (s *SessionService) Get(userID, sessionID string) (engine.Snapshot, error) {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return e.session.Snapshot(), nil
}

// SubmitAnswer records an answer for the current question. accepted is false
// when the engine ignored the submission (time's up, wrong question, finished).
func (s *SessionService) SubmitAnswer(userID, sessionID, questionID, answer string) (snap engine.Snapshot, accepted bool, err error) {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return engine.Snapshot{}, false, err
	}
	accepted = e.session.SubmitAnswer(questionID, answer)
	return e.session.Snapshot(), accepted, nil
}

// Next skips to the next question, finishing the quiz after the last one.
func (s *SessionService) Next(userID, sessionID string) (engine.Snapshot, error) {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	if e.session.Done() {
		return engine.Snapshot{}, domain.NewSessionCompletedError(sessionID)
	}
	e.session.Next()
	return e.session.Snapshot(), nil
}

// Previous is accepted but never moves the session.
func (s *SessionService) Previous(userID, sessionID string) (engine.Snapshot, error) {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	e.session.Previous()
	return e.session.Snapshot(), nil
}

// Finish ends the quiz and makes sure its result is stored. If an earlier
// save failed, calling Finish again retries it.
func (s *SessionService) Finish(ctx context.Context, userID, sessionID string) (*domain.QuizResult, error) {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	result := e.session.Finish()
	if result == nil {
		return nil, domain.NewSessionCompletedError(sessionID)
	}
	if err := s.persist(ctx, e, result); err != nil {
		return result, err
	}
	return result, nil
}

// Result returns the result of a finished session.
func (s *SessionService) Result(userID, sessionID string) (*domain.QuizResult, error) {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	result := e.session.Result()
	if result == nil {
		return nil, domain.NewNotFoundError("quiz session has no result yet")
	}
	return result, nil
}

// Abandon stops a session without recording a result and forgets it.
func (s *SessionService) Abandon(userID, sessionID string) error {
	e, err := s.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	if e.session.Result() != nil {
		return domain.NewSessionCompletedError(sessionID)
	}
	e.session.Abandon()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	logger.Get().Info("Quiz session abandoned", zap.String("session_id", sessionID), zap.String("user_id", userID))
	return nil
}

// Len reports the number of tracked sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunSweeper evicts idle sessions every interval until ctx is cancelled.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep evicts sessions untouched for longer than the idle TTL. Running
// sessions are abandoned first. A finished session whose result was never
// stored gets one last save attempt before it is dropped.
func (s *SessionService) Sweep() int {
	cutoff := s.clock.Now().Add(-s.idleTTL)

	s.mu.Lock()
	var idle []*sessionEntry
	for id, e := range s.sessions {
		if e.lastActive.Before(cutoff) {
			idle = append(idle, e)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, e := range idle {
		result := e.session.Result()
		if result == nil {
			e.session.Abandon()
			continue
		}
		if err := s.persist(context.Background(), e, result); err != nil {
			logger.Get().Error("Evicted finished quiz without saving its result",
				zap.String("session_id", e.session.ID()),
				zap.String("user_id", e.session.UserID()),
				zap.String("result_id", result.ID),
				zap.Error(err))
		}
	}
	if len(idle) > 0 {
		logger.Get().Info("Evicted idle quiz sessions", zap.Int("count", len(idle)))
	}
	return len(idle)
}

func (s *SessionService) lookup(userID, sessionID string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok || e.session.UserID() != userID {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	e.lastActive = s.clock.Now()
	return e, nil
}

func (s *SessionService) persist(ctx context.Context, e *sessionEntry, result *domain.QuizResult) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()
	if e.saved {
		return nil
	}
	if err := s.history.SaveQuizResult(ctx, result); err != nil {
		return err
	}
	e.saved = true
	return nil
}
