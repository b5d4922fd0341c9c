// Package engine drives a single timed, forward-only quiz from start to finish.
package engine

import (
	"math/rand/v2"
	"sync"
	"time"

	"bible-study/internal/domain"
	"bible-study/internal/util"
)

const (
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
	// DefaultTimeoutGrace is how long an expired question stays on screen
	// with its answer revealed before the session advances.
	DefaultTimeoutGrace = 2 * time.Second
	// DefaultCorrectGrace is the pause after a correct answer before advancing.
	DefaultCorrectGrace = 500 * time.Millisecond
)

// Options configures a session. Zero values fall back to defaults.
type Options struct {
	ID           string
	UserID       string
	Clock        Clock
	TimeoutGrace time.Duration
	CorrectGrace time.Duration
	// Shuffle reorders the selected questions in place before truncation.
	Shuffle func(questions []domain.QuizQuestion)
	// OnComplete is invoked exactly once, outside the session lock, when the
	// session finishes. It is never invoked for an abandoned session.
	OnComplete func(result *domain.QuizResult)
}

// Session is the runtime state of one quiz. All methods are safe for
// concurrent use; scheduled callbacks and callers serialize on mu.
type Session struct {
	mu sync.Mutex

	id         string
	userID     string
	difficulty domain.Difficulty
	questions  []domain.QuizQuestion
	index      int
	answers    map[string]string
	spent      map[string]int
	remaining  int
	timeUp     bool
	completed  bool
	abandoned  bool

	startedAt       time.Time
	finishedAt      time.Time
	questionStarted time.Time

	clock        Clock
	timeoutGrace time.Duration
	correctGrace time.Duration
	onComplete   func(result *domain.QuizResult)

	timer  Timer
	gen    uint64
	result *domain.QuizResult
	notify func()
}

// Start selects questions from bank and begins the countdown for the first
// one. Questions are filtered by book membership and difficulty, shuffled,
// and truncated to count (count <= 0 keeps all of them).
func Start(bank []domain.QuizQuestion, filter domain.QuestionFilter, count int, opts Options) (*Session, error) {
	if !filter.Difficulty.Valid() {
		return nil, domain.NewInvalidInputError("a valid difficulty is required to start a quiz")
	}

	selected := make([]domain.QuizQuestion, 0, len(bank))
	for i := range bank {
		if filter.Matches(&bank[i]) {
			selected = append(selected, bank[i])
		}
	}
	if len(selected) == 0 {
		return nil, domain.NewEmptySelectionError()
	}

	if opts.Shuffle != nil {
		opts.Shuffle(selected)
	} else {
		rand.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}
	if count > 0 && count < len(selected) {
		selected = selected[:count]
	}

	s := &Session{
		id:           opts.ID,
		userID:       opts.UserID,
		difficulty:   filter.Difficulty,
		questions:    selected,
		answers:      make(map[string]string, len(selected)),
		spent:        make(map[string]int, len(selected)),
		clock:        opts.Clock,
		timeoutGrace: opts.TimeoutGrace,
		correctGrace: opts.CorrectGrace,
		onComplete:   opts.OnComplete,
	}
	if s.id == "" {
		s.id = util.NewULID()
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.timeoutGrace <= 0 {
		s.timeoutGrace = DefaultTimeoutGrace
	}
	if s.correctGrace <= 0 {
		s.correctGrace = DefaultCorrectGrace
	}

	s.mu.Lock()
	defer s.unlockAndNotify()
	now := s.clock.Now()
	s.startedAt = now
	s.questionStarted = now
	s.remaining = s.questions[0].EffectiveTimeLimit()
	s.schedule(TickInterval, s.tickLocked)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the owner of the session.
func (s *Session) UserID() string { return s.userID }

// Tick consumes one second of the current question's time. It is normally
// driven by the session's own countdown; an explicit call restarts the
// one-second phase. It returns false when the session does not accept ticks.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.unlockAndNotify()
	if !s.activeLocked() || s.timeUp {
		return false
	}
	s.tickLocked()
	return true
}

// SubmitAnswer records answer for the current question, overwriting any
// earlier answer. A correct answer schedules the advance to the next
// question. It returns false when the submission was ignored.
func (s *Session) SubmitAnswer(questionID, answer string) bool {
	s.mu.Lock()
	defer s.unlockAndNotify()
	if !s.activeLocked() || s.timeUp {
		return false
	}
	current := &s.questions[s.index]
	if current.ID != questionID {
		return false
	}
	s.answers[questionID] = answer
	if answer == current.CorrectAnswer {
		s.schedule(s.correctGrace, s.advanceLocked)
	}
	return true
}

// Next cancels any pending timer and moves to the next question, finishing
// the session after the last one.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.unlockAndNotify()
	if !s.activeLocked() {
		return false
	}
	s.advanceLocked()
	return true
}

// Previous never moves the session: quizzes are forward-only once started.
func (s *Session) Previous() bool {
	return false
}

// Finish scores the session and returns its result. Calling Finish again
// returns the same result; an abandoned session has none.
func (s *Session) Finish() *domain.QuizResult {
	s.mu.Lock()
	defer s.unlockAndNotify()
	if s.abandoned {
		return nil
	}
	if !s.completed {
		s.finishLocked()
	}
	return s.result
}

// Abandon stops the session without producing a result.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	if s.completed || s.abandoned {
		return
	}
	s.cancelLocked()
	s.abandoned = true
	s.answers = nil
	s.spent = nil
}

// Result returns the finished result, or nil while the session is running.
func (s *Session) Result() *domain.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Done reports whether the session is completed or abandoned.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed || s.abandoned
}

func (s *Session) activeLocked() bool {
	return !s.completed && !s.abandoned
}

func (s *Session) tickLocked() {
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		s.schedule(TickInterval, s.tickLocked)
		return
	}
	s.timeUp = true
	s.schedule(s.timeoutGrace, s.advanceLocked)
}

func (s *Session) advanceLocked() {
	s.cancelLocked()
	s.recordSpentLocked()
	if s.index+1 >= len(s.questions) {
		s.finishLocked()
		return
	}
	s.index++
	s.remaining = s.questions[s.index].EffectiveTimeLimit()
	s.timeUp = false
	s.questionStarted = s.clock.Now()
	s.schedule(TickInterval, s.tickLocked)
}

func (s *Session) recordSpentLocked() {
	q := s.questions[s.index]
	if _, ok := s.spent[q.ID]; ok {
		return
	}
	elapsed := s.clock.Now().Sub(s.questionStarted).Round(time.Second)
	s.spent[q.ID] = int(elapsed / time.Second)
}

func (s *Session) finishLocked() {
	s.cancelLocked()
	s.recordSpentLocked()
	s.finishedAt = s.clock.Now()
	s.completed = true
	s.result = s.buildResultLocked()
	if s.onComplete != nil {
		result, hook := s.result, s.onComplete
		s.notify = func() { hook(result) }
	}
}

func (s *Session) buildResultLocked() *domain.QuizResult {
	result := &domain.QuizResult{
		ID:             util.NewULID(),
		UserID:         s.userID,
		Difficulty:     s.difficulty,
		TotalQuestions: len(s.questions),
		Outcomes:       make([]domain.QuestionOutcome, 0, len(s.questions)),
		StartedAt:      s.startedAt,
		CompletedAt:    s.finishedAt,
		TimeSpent:      int(s.finishedAt.Sub(s.startedAt).Round(time.Second) / time.Second),
	}

	seenCategory := make(map[string]bool)
	seenTopic := make(map[string]bool)
	for i := range s.questions {
		q := &s.questions[i]
		submitted := s.answers[q.ID]
		points := q.EffectivePoints()
		correct := submitted == q.CorrectAnswer

		outcome := domain.QuestionOutcome{
			QuestionID:      q.ID,
			Book:            q.Source.Book,
			Category:        q.Category,
			Topic:           q.Topic,
			SubmittedAnswer: submitted,
			CorrectAnswer:   q.CorrectAnswer,
			IsCorrect:       correct,
			PointsPossible:  points,
			TimeSpent:       s.spent[q.ID],
		}
		if correct {
			outcome.PointsEarned = points
			result.Score += points
			result.CorrectAnswers++
		}
		result.TotalPossible += points
		result.Outcomes = append(result.Outcomes, outcome)

		if q.Category != "" && !seenCategory[q.Category] {
			seenCategory[q.Category] = true
			result.Categories = append(result.Categories, q.Category)
		}
		if q.Topic != "" && !seenTopic[q.Topic] {
			seenTopic[q.Topic] = true
			result.Topics = append(result.Topics, q.Topic)
		}
	}
	return result
}

// schedule replaces the session's single outstanding timer. Callbacks carry
// the generation they were scheduled under and do nothing once it is stale.
func (s *Session) schedule(d time.Duration, fn func()) {
	s.cancelLocked()
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.unlockAndNotify()
		if gen != s.gen || !s.activeLocked() {
			return
		}
		s.timer = nil
		fn()
	})
}

func (s *Session) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Session) unlockAndNotify() {
	hook := s.notify
	s.notify = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}
