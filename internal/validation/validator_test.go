package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-study/internal/domain"
	"bible-study/internal/dto"
	"bible-study/internal/util"
)

func codes(errs domain.ValidationErrors) map[string]domain.ErrorCode {
	out := make(map[string]domain.ErrorCode, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Code
	}
	return out
}

func TestValidateSessionID(t *testing.T) {
	v := NewValidator(50)
	assert.Empty(t, v.ValidateSessionID(util.NewULID()))
	assert.Equal(t, domain.CodeMissingField, codes(v.ValidateSessionID(" "))["session_id"])
	assert.Equal(t, domain.CodeInvalidFormat, codes(v.ValidateSessionID("not-a-ulid"))["session_id"])
}

func TestValidateStartSession(t *testing.T) {
	v := NewValidator(20)

	tests := []struct {
		name   string
		req    dto.StartSessionRequest
		errors map[string]domain.ErrorCode
	}{
		{
			name: "valid",
			req:  dto.StartSessionRequest{Books: []string{"genesis", "Ruth"}, Difficulty: "crack_my_head", Type: "multiple-choice", Count: 5},
		},
		{
			name:   "missing difficulty",
			req:    dto.StartSessionRequest{},
			errors: map[string]domain.ErrorCode{"difficulty": domain.CodeMissingField},
		},
		{
			name: "everything wrong",
			req:  dto.StartSessionRequest{Books: []string{"Hezekiah"}, Difficulty: "impossible", Type: "essay", Count: 21},
			errors: map[string]domain.ErrorCode{
				"difficulty": domain.CodeInvalidFormat,
				"type":       domain.CodeInvalidFormat,
				"books":      domain.CodeInvalidFormat,
				"count":      domain.CodeOutOfRange,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, qt, errs := v.ValidateStartSession(&tt.req)
			if tt.errors == nil {
				require.Empty(t, errs)
				assert.Equal(t, domain.DifficultyCrackMyHead, d)
				assert.Equal(t, domain.QuestionTypeMultipleChoice, qt)
				return
			}
			assert.Equal(t, tt.errors, codes(errs))
		})
	}
}

func TestValidateSubmitAnswer(t *testing.T) {
	v := NewValidator(50)
	assert.Empty(t, v.ValidateSubmitAnswer(&dto.SubmitAnswerRequest{QuestionID: "gen-001", Answer: ""}))

	errs := v.ValidateSubmitAnswer(&dto.SubmitAnswerRequest{Answer: strings.Repeat("a", maxAnswerLength+1)})
	assert.Equal(t, map[string]domain.ErrorCode{
		"question_id": domain.CodeMissingField,
		"answer":      domain.CodeOutOfRange,
	}, codes(errs))
}

func TestValidateGenerate(t *testing.T) {
	v := NewValidator(50)

	req, errs := v.ValidateGenerate(&dto.GenerateQuizRequest{
		Text: "In the beginning...", Book: "GENESIS", Chapter: 1, Count: 3, Difficulty: "easy-to-go",
	})
	require.Empty(t, errs)
	assert.Equal(t, "Genesis", req.Book)
	assert.Equal(t, domain.DifficultyEasyToGo, req.Difficulty)
	assert.Equal(t, 3, req.Count)

	_, errs = v.ValidateGenerate(&dto.GenerateQuizRequest{Count: maxGenerationCount + 1, Book: "Enoch", Chapter: -1})
	assert.Equal(t, map[string]domain.ErrorCode{
		"text":    domain.CodeMissingField,
		"count":   domain.CodeOutOfRange,
		"chapter": domain.CodeOutOfRange,
		"book":    domain.CodeInvalidFormat,
	}, codes(errs))
}

func TestValidateHistoryRequests(t *testing.T) {
	v := NewValidator(50)

	assert.Empty(t, v.ValidateReadingProgress(&dto.ReadingProgressRequest{Book: "psalms", Chapter: 119}))
	assert.Equal(t, map[string]domain.ErrorCode{
		"book":    domain.CodeMissingField,
		"chapter": domain.CodeOutOfRange,
	}, codes(v.ValidateReadingProgress(&dto.ReadingProgressRequest{})))

	assert.Equal(t, domain.CodeMissingField,
		codes(v.ValidateJournalEntry(&dto.JournalEntryRequest{Book: "John", Chapter: 3, Content: "   "}))["content"])

	// book is optional for a study session
	assert.Empty(t, v.ValidateStudySession(&dto.StudySessionRequest{DurationMinutes: 45}))
	score := 101.0
	chapter := 0
	assert.Equal(t, map[string]domain.ErrorCode{
		"duration_minutes": domain.CodeOutOfRange,
		"book":             domain.CodeInvalidFormat,
		"chapter":          domain.CodeOutOfRange,
		"score":            domain.CodeOutOfRange,
	}, codes(v.ValidateStudySession(&dto.StudySessionRequest{
		DurationMinutes: -1, Book: "Jasher", Chapter: &chapter, Score: &score,
	})))
}

func TestValidateQuestionQuery(t *testing.T) {
	v := NewValidator(50)

	filter, errs := v.ValidateQuestionQuery("1 kings", "granite-hard", "fill-in-blank")
	require.Empty(t, errs)
	assert.Equal(t, []string{"1 Kings"}, filter.Books)
	assert.Equal(t, domain.DifficultyGraniteHard, filter.Difficulty)
	assert.Equal(t, domain.QuestionTypeFillInBlank, filter.Type)

	filter, errs = v.ValidateQuestionQuery("", "", "")
	assert.Empty(t, errs)
	assert.Equal(t, domain.QuestionFilter{}, filter)
}
