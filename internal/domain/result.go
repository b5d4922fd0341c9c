package domain

import "time"

// QuestionOutcome is the scored outcome of one question of a finished session.
type QuestionOutcome struct {
	QuestionID      string `json:"question_id"`
	Book            string `json:"book"`
	Category        string `json:"category,omitempty"`
	Topic           string `json:"topic,omitempty"`
	SubmittedAnswer string `json:"submitted_answer"`
	CorrectAnswer   string `json:"correct_answer"`
	IsCorrect       bool   `json:"is_correct"`
	PointsEarned    int    `json:"points_earned"`
	PointsPossible  int    `json:"points_possible"`
	TimeSpent       int    `json:"time_spent_seconds"`
}

// QuizResult is the immutable record of a finished quiz. Results are append-only history.
type QuizResult struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Difficulty     Difficulty        `json:"difficulty"`
	Score          int               `json:"score"`
	TotalPossible  int               `json:"total_possible"`
	CorrectAnswers int               `json:"correct_answers"`
	TotalQuestions int               `json:"total_questions"`
	TimeSpent      int               `json:"time_spent_seconds"`
	Categories     []string          `json:"categories"`
	Topics         []string          `json:"topics"`
	Outcomes       []QuestionOutcome `json:"outcomes"`
	StartedAt      time.Time         `json:"started_at"`
	CompletedAt    time.Time         `json:"completed_at"`
}

// Percentage is the score as a share of the total possible, in [0, 100].
func (r *QuizResult) Percentage() float64 {
	if r.TotalPossible == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalPossible) * 100
}

// Validate checks the shape of a result submitted from outside the engine.
func (r *QuizResult) Validate() error {
	if r.UserID == "" {
		return NewValidationError("user ID is required")
	}
	if !r.Difficulty.Valid() {
		return NewValidationError("difficulty is invalid")
	}
	if r.Score < 0 || r.TotalPossible < 0 {
		return NewValidationError("score and total possible must not be negative")
	}
	if r.Score > r.TotalPossible {
		return NewValidationError("score cannot exceed total possible")
	}
	if r.CorrectAnswers > len(r.Outcomes) && len(r.Outcomes) > 0 {
		return NewValidationError("correct answers cannot exceed the number of outcomes")
	}
	return nil
}
