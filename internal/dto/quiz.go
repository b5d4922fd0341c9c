package dto

import (
	"bible-study/internal/domain"
	"bible-study/internal/engine"
)

// StartSessionRequest starts a timed quiz.
// @Description Request body for starting a quiz session
type StartSessionRequest struct {
	Books      []string `json:"books"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type,omitempty"`
	Count      int      `json:"count,omitempty"`
}

// SubmitAnswerRequest answers the current question of a session.
// @Description Request body for answering a question
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// SubmitAnswerResponse reports whether the answer was recorded.
type SubmitAnswerResponse struct {
	Accepted bool            `json:"accepted"`
	Session  engine.Snapshot `json:"session"`
}

// GenerateQuizRequest asks the AI generator for new questions.
// @Description Request body for AI quiz generation
type GenerateQuizRequest struct {
	Text       string `json:"text"`
	Count      int    `json:"count,omitempty"`
	Type       string `json:"type,omitempty"`
	Book       string `json:"book"`
	Chapter    int    `json:"chapter,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// QuestionResponse is a bank question without its answer.
type QuestionResponse struct {
	ID         string              `json:"id"`
	Source     domain.SourceRef    `json:"source"`
	Prompt     string              `json:"prompt"`
	Type       domain.QuestionType `json:"type"`
	Options    []string            `json:"options,omitempty"`
	Difficulty domain.Difficulty   `json:"difficulty"`
	TimeLimit  int                 `json:"time_limit"`
	Points     int                 `json:"points"`
	Category   string              `json:"category,omitempty"`
	Topic      string              `json:"topic,omitempty"`
}

func NewQuestionResponse(q *domain.QuizQuestion) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Source:     q.Source,
		Prompt:     q.Prompt,
		Type:       q.Type,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		TimeLimit:  q.EffectiveTimeLimit(),
		Points:     q.EffectivePoints(),
		Category:   q.Category,
		Topic:      q.Topic,
	}
}

// QuestionsResponse lists bank questions.
type QuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int                `json:"total"`
}

func NewQuestionsResponse(questions []domain.QuizQuestion) QuestionsResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, NewQuestionResponse(&questions[i]))
	}
	return QuestionsResponse{Questions: out, Total: len(out)}
}

// BooksResponse lists book names in canonical order.
type BooksResponse struct {
	Books []string `json:"books"`
}
