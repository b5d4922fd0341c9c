package validation

import (
	"strings"

	"bible-study/internal/domain"
	"bible-study/internal/dto"
	"bible-study/internal/util"
)

const (
	maxAnswerLength    = 2000
	maxJournalLength   = 10000
	maxGenerationText  = 50000
	maxGenerationCount = 20
	maxSessionMinutes  = 24 * 60
)

// Validator provides request validation functionality
type Validator struct {
	maxQuizCount int
}

// NewValidator creates a new validator instance. maxQuizCount bounds the
// number of questions of a session.
func NewValidator(maxQuizCount int) *Validator {
	return &Validator{maxQuizCount: maxQuizCount}
}

// ValidateSessionID checks the session id path parameter.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateStartSession validates the request and returns its parsed filter values.
func (v *Validator) ValidateStartSession(req *dto.StartSessionRequest) (domain.Difficulty, domain.QuestionType, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	var difficulty domain.Difficulty
	if strings.TrimSpace(req.Difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if d, err := domain.ParseDifficulty(req.Difficulty); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	} else {
		difficulty = d
	}

	questionType, typeErrs := v.optionalType(req.Type)
	errors = append(errors, typeErrs...)

	for _, b := range req.Books {
		if domain.BookIndex(b) < 0 {
			errors = append(errors, domain.NewInvalidFormatError("books", b))
		}
	}
	if req.Count < 0 || (v.maxQuizCount > 0 && req.Count > v.maxQuizCount) {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 0, v.maxQuizCount))
	}
	return difficulty, questionType, errors
}

func (v *Validator) ValidateSubmitAnswer(req *dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.QuestionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	}
	if len(req.Answer) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(req.Answer), 0, maxAnswerLength))
	}
	return errors
}

// ValidateGenerate validates an AI generation request and builds the domain request.
func (v *Validator) ValidateGenerate(req *dto.GenerateQuizRequest) (domain.GenerationRequest, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	out := domain.GenerationRequest{Text: req.Text, Count: req.Count, Chapter: req.Chapter}

	if strings.TrimSpace(req.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if len(req.Text) > maxGenerationText {
		errors = append(errors, domain.NewOutOfRangeError("text", len(req.Text), 1, maxGenerationText))
	}
	if req.Count < 0 || req.Count > maxGenerationCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 0, maxGenerationCount))
	}
	if req.Chapter < 0 {
		errors = append(errors, domain.NewOutOfRangeError("chapter", req.Chapter, 0, 150))
	}

	if strings.TrimSpace(req.Book) == "" {
		errors = append(errors, domain.NewMissingFieldError("book"))
	} else if book, ok := domain.CanonicalBookName(req.Book); !ok {
		errors = append(errors, domain.NewInvalidFormatError("book", req.Book))
	} else {
		out.Book = book
	}

	questionType, typeErrs := v.optionalType(req.Type)
	errors = append(errors, typeErrs...)
	out.Type = questionType

	if req.Difficulty != "" {
		d, err := domain.ParseDifficulty(req.Difficulty)
		if err != nil {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
		out.Difficulty = d
	}
	return out, errors
}

func (v *Validator) ValidateReadingProgress(req *dto.ReadingProgressRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, validateBook(req.Book, true)...)
	if req.Chapter <= 0 {
		errors = append(errors, domain.NewOutOfRangeError("chapter", req.Chapter, 1, 150))
	}
	return errors
}

func (v *Validator) ValidateJournalEntry(req *dto.JournalEntryRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, validateBook(req.Book, true)...)
	if req.Chapter <= 0 {
		errors = append(errors, domain.NewOutOfRangeError("chapter", req.Chapter, 1, 150))
	}
	if strings.TrimSpace(req.Content) == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	} else if len(req.Content) > maxJournalLength {
		errors = append(errors, domain.NewOutOfRangeError("content", len(req.Content), 1, maxJournalLength))
	}
	return errors
}

func (v *Validator) ValidateStudySession(req *dto.StudySessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req.DurationMinutes < 0 || req.DurationMinutes > maxSessionMinutes {
		errors = append(errors, domain.NewOutOfRangeError("duration_minutes", req.DurationMinutes, 0, maxSessionMinutes))
	}
	errors = append(errors, validateBook(req.Book, false)...)
	if req.Chapter != nil && *req.Chapter <= 0 {
		errors = append(errors, domain.NewOutOfRangeError("chapter", *req.Chapter, 1, 150))
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		errors = append(errors, domain.NewOutOfRangeError("score", int(*req.Score), 0, 100))
	}
	return errors
}

// ValidateQuestionQuery parses the optional question bank filters.
func (v *Validator) ValidateQuestionQuery(book, difficulty, questionType string) (domain.QuestionFilter, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	var filter domain.QuestionFilter

	if book != "" {
		if name, ok := domain.CanonicalBookName(book); ok {
			filter.Books = []string{name}
		} else {
			errors = append(errors, domain.NewInvalidFormatError("book", book))
		}
	}
	if difficulty != "" {
		d, err := domain.ParseDifficulty(difficulty)
		if err != nil {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
		}
		filter.Difficulty = d
	}
	t, typeErrs := v.optionalType(questionType)
	errors = append(errors, typeErrs...)
	filter.Type = t
	return filter, errors
}

func (v *Validator) optionalType(s string) (domain.QuestionType, domain.ValidationErrors) {
	if s == "" {
		return "", nil
	}
	t, err := domain.ParseQuestionType(s)
	if err != nil {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("type", s)}
	}
	return t, nil
}

func validateBook(book string, required bool) domain.ValidationErrors {
	if strings.TrimSpace(book) == "" {
		if required {
			return domain.ValidationErrors{domain.NewMissingFieldError("book")}
		}
		return nil
	}
	if domain.BookIndex(book) < 0 {
		return domain.ValidationErrors{domain.NewInvalidFormatError("book", book)}
	}
	return nil
}
