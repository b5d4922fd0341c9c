package engine

import (
	"time"

	"bible-study/internal/domain"
)

// QuestionView is what a player may see of a question. CorrectAnswer and
// Explanation are only filled once the answer is revealed, i.e. after a
// correct submission or when time ran out.
type QuestionView struct {
	ID              string              `json:"id"`
	Source          domain.SourceRef    `json:"source"`
	Prompt          string              `json:"prompt"`
	Type            domain.QuestionType `json:"type"`
	Options         []string            `json:"options,omitempty"`
	TimeLimit       int                 `json:"time_limit"`
	Points          int                 `json:"points"`
	Category        string              `json:"category,omitempty"`
	Topic           string              `json:"topic,omitempty"`
	SubmittedAnswer string              `json:"submitted_answer,omitempty"`
	CorrectAnswer   string              `json:"correct_answer,omitempty"`
	Explanation     string              `json:"explanation,omitempty"`
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Difficulty    domain.Difficulty `json:"difficulty"`
	Index         int               `json:"index"`
	Total         int               `json:"total"`
	Current       *QuestionView     `json:"current,omitempty"`
	TimeRemaining int               `json:"time_remaining"`
	TimeUp        bool              `json:"time_up"`
	Completed     bool              `json:"completed"`
	Abandoned     bool              `json:"abandoned"`
	Answered      int               `json:"answered"`
	StartedAt     time.Time         `json:"started_at"`
	FinishedAt    *time.Time        `json:"finished_at,omitempty"`
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.id,
		UserID:        s.userID,
		Difficulty:    s.difficulty,
		Index:         s.index,
		Total:         len(s.questions),
		TimeRemaining: s.remaining,
		TimeUp:        s.timeUp,
		Completed:     s.completed,
		Abandoned:     s.abandoned,
		Answered:      len(s.answers),
		StartedAt:     s.startedAt,
	}
	if s.completed {
		finished := s.finishedAt
		snap.FinishedAt = &finished
	}
	if s.activeLocked() {
		snap.Current = s.viewLocked(&s.questions[s.index])
	}
	return snap
}

func (s *Session) viewLocked(q *domain.QuizQuestion) *QuestionView {
	v := &QuestionView{
		ID:        q.ID,
		Source:    q.Source,
		Prompt:    q.Prompt,
		Type:      q.Type,
		Options:   append([]string(nil), q.Options...),
		TimeLimit: q.EffectiveTimeLimit(),
		Points:    q.EffectivePoints(),
		Category:  q.Category,
		Topic:     q.Topic,
	}
	submitted, answered := s.answers[q.ID]
	v.SubmittedAnswer = submitted
	if s.timeUp || (answered && submitted == q.CorrectAnswer) {
		v.CorrectAnswer = q.CorrectAnswer
		v.Explanation = q.Explanation
	}
	return v
}
