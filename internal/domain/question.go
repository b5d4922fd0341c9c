package domain

import (
	"fmt"
	"strings"
)

// QuestionType is the answer format of a question.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeFillInBlank    QuestionType = "fill-in-blank"
)

// ParseQuestionType validates a wire value.
func ParseQuestionType(s string) (QuestionType, error) {
	switch t := QuestionType(strings.ToLower(strings.TrimSpace(s))); t {
	case QuestionTypeMultipleChoice, QuestionTypeFillInBlank:
		return t, nil
	default:
		return "", fmt.Errorf("unknown question type %q", s)
	}
}

// SourceRef points at the passage a question is drawn from.
type SourceRef struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   *int   `json:"verse,omitempty"`
}

func (s SourceRef) String() string {
	if s.Verse != nil {
		return fmt.Sprintf("%s %d:%d", s.Book, s.Chapter, *s.Verse)
	}
	return fmt.Sprintf("%s %d", s.Book, s.Chapter)
}

// QuizQuestion is a single question of the bank. It is never mutated once
// it has been drawn into a session.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Source        SourceRef    `json:"source"`
	Prompt        string       `json:"prompt"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
	TimeLimit     *int         `json:"time_limit,omitempty"` // seconds, overrides the tier default
	Points        *int         `json:"points,omitempty"`     // overrides the tier default
	Category      string       `json:"category,omitempty"`
	Topic         string       `json:"topic,omitempty"`
}

// EffectiveTimeLimit returns the question's own limit or its tier default.
func (q *QuizQuestion) EffectiveTimeLimit() int {
	if q.TimeLimit != nil {
		return *q.TimeLimit
	}
	return q.Difficulty.Spec().TimeLimit
}

// EffectivePoints returns the question's own point value or its tier default.
func (q *QuizQuestion) EffectivePoints() int {
	if q.Points != nil {
		return *q.Points
	}
	return q.Difficulty.Spec().Points
}

// Validate validates the question
func (q *QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationError("prompt is required")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return NewValidationError("correct answer is required")
	}
	if !q.Difficulty.Valid() {
		return NewValidationError("difficulty is invalid")
	}
	if q.TimeLimit != nil && *q.TimeLimit <= 0 {
		return NewValidationError("time limit must be positive")
	}
	if q.Points != nil && *q.Points < 0 {
		return NewValidationError("points must not be negative")
	}
	switch q.Type {
	case QuestionTypeMultipleChoice:
		if len(q.Options) < 2 {
			return NewValidationError("multiple-choice questions need at least two options")
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return NewValidationError("correct answer must be one of the options")
		}
	case QuestionTypeFillInBlank:
		if len(q.Options) > 0 {
			return NewValidationError("fill-in-blank questions must not have options")
		}
	default:
		return NewValidationError(fmt.Sprintf("unknown question type %q", q.Type))
	}
	return nil
}

// QuestionFilter selects questions from the bank. An empty Books list matches
// every book, a zero Difficulty every tier and an empty Type every format.
type QuestionFilter struct {
	Books      []string
	Difficulty Difficulty
	Type       QuestionType
}

// Matches reports whether q passes the filter. Book membership is exact.
func (f QuestionFilter) Matches(q *QuizQuestion) bool {
	if f.Difficulty != 0 && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Type != "" && q.Type != f.Type {
		return false
	}
	if len(f.Books) == 0 {
		return true
	}
	for _, b := range f.Books {
		if b == q.Source.Book {
			return true
		}
	}
	return false
}
