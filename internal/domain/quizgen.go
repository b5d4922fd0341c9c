package domain

import "context"

// GenerationRequest asks the generator for questions about a block of text.
type GenerationRequest struct {
	Text       string
	Count      int
	Type       QuestionType
	Book       string
	Chapter    int
	Difficulty Difficulty
}

// QuizGenerator turns raw text into question drafts. Implementations must
// return a MalformedExternalData DomainError when the model output cannot be
// parsed into well-formed questions, and never invent content themselves.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) ([]QuizQuestion, error)
}
