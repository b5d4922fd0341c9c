package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"bible-study/internal/config"
	"bible-study/internal/domain"
	"bible-study/internal/logger"
)

const (
	defaultQuestionCount = 5
	maxQuestionCount     = 20
	defaultTimeout       = 60 * time.Second
)

var errNoJSON = errors.New("no JSON array or object found in model output")

// LLMQuizGenerator implements domain.QuizGenerator on top of any langchaingo model.
type LLMQuizGenerator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewLLMQuizGenerator builds the model named by cfg.Provider.
func NewLLMQuizGenerator(cfg config.LLMConfig) (*LLMQuizGenerator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model name cannot be empty")
	}

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case "ollama":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		httpClient := &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Get().Info("Initialized quiz generator",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))
	return NewWithModel(model, cfg.Timeout), nil
}

// NewWithModel wraps an already constructed model.
func NewWithModel(model llms.Model, timeout time.Duration) *LLMQuizGenerator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LLMQuizGenerator{llm: model, timeout: timeout}
}

// GenerateQuestions asks the model for questions about req.Text. It never
// fills in missing content: anything it cannot parse is a MalformedData error.
func (g *LLMQuizGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) ([]domain.QuizQuestion, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildPrompt(req)
	l.Debug("Requesting quiz generation",
		zap.Int("count", req.Count),
		zap.String("type", string(req.Type)),
		zap.Int("text_length", len(req.Text)))

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.3))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("Quiz generation timed out", zap.Duration("timeout", g.timeout))
		} else {
			l.Error("Failed to get response from LLM", zap.Error(err))
		}
		return nil, domain.NewLLMServiceError(err)
	}

	questions, err := parseQuestions(response, req)
	if err != nil {
		l.Warn("LLM returned malformed quiz data", zap.Error(err), zap.String("response", truncate(response, 500)))
		return nil, domain.NewMalformedDataError("the quiz generator", err)
	}

	l.Info("Generated quiz questions", zap.Int("requested", req.Count), zap.Int("generated", len(questions)))
	return questions, nil
}

func normalizeRequest(req domain.GenerationRequest) (domain.GenerationRequest, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req, domain.NewInvalidInputError("text is required for quiz generation")
	}
	if req.Count <= 0 {
		req.Count = defaultQuestionCount
	}
	if req.Count > maxQuestionCount {
		req.Count = maxQuestionCount
	}
	if req.Type == "" {
		req.Type = domain.QuestionTypeMultipleChoice
	}
	if !req.Difficulty.Valid() {
		req.Difficulty = domain.DifficultyMinimumThinking
	}
	if req.Book != "" {
		book, ok := domain.CanonicalBookName(req.Book)
		if !ok {
			return req, domain.NewInvalidInputError(fmt.Sprintf("unknown book %q", req.Book))
		}
		req.Book = book
	}
	return req, nil
}

func buildPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a Bible study quiz writer. Create exactly %d %s questions about the passage below.\n", req.Count, req.Type)
	b.WriteString("Use only facts stated in the passage.\n\n")
	b.WriteString("Respond with ONLY a JSON array. Each element must be an object with these fields:\n")
	b.WriteString(`  "prompt": the question text` + "\n")
	if req.Type == domain.QuestionTypeMultipleChoice {
		b.WriteString(`  "options": an array of exactly 4 answer choices` + "\n")
		b.WriteString(`  "correct_answer": the correct choice, copied exactly from "options"` + "\n")
	} else {
		b.WriteString(`  "correct_answer": the single word or short phrase that fills the blank (mark the blank as ____ in the prompt)` + "\n")
	}
	b.WriteString(`  "explanation": one sentence explaining the answer` + "\n")
	b.WriteString(`  "chapter": the chapter number the question is drawn from, if known` + "\n")
	b.WriteString(`  "category": a short category such as "People" or "Events"` + "\n")
	b.WriteString(`  "topic": a short topic such as "Creation" or "Faith"` + "\n")
	if req.Book != "" {
		fmt.Fprintf(&b, "\nThe passage is from the book of %s.\n", req.Book)
	}
	b.WriteString("\nPassage:\n")
	b.WriteString(req.Text)
	return b.String()
}

// generatedQuestion is the wire shape we ask the model for. A few common
// key spellings are accepted as well.
type generatedQuestion struct {
	Prompt         string   `json:"prompt"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswer  string   `json:"correct_answer"`
	CorrectAnswer2 string   `json:"correctAnswer"`
	Answer         string   `json:"answer"`
	Explanation    string   `json:"explanation"`
	Chapter        int      `json:"chapter"`
	Verse          *int     `json:"verse"`
	Category       string   `json:"category"`
	Topic          string   `json:"topic"`
}

func (g generatedQuestion) prompt() string {
	return strings.TrimSpace(firstNonEmpty(g.Prompt, g.Question))
}

func (g generatedQuestion) correctAnswer() string {
	return strings.TrimSpace(firstNonEmpty(g.CorrectAnswer, g.CorrectAnswer2, g.Answer))
}

func parseQuestions(raw string, req domain.GenerationRequest) ([]domain.QuizQuestion, error) {
	cleaned, err := repairJSON(raw)
	if err != nil {
		return nil, err
	}

	var items []generatedQuestion
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model output: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("model returned no questions")
	}

	questions := make([]domain.QuizQuestion, 0, len(items))
	for i, item := range items {
		if item.prompt() == "" || item.correctAnswer() == "" {
			return nil, fmt.Errorf("question %d is missing its prompt or correct answer", i)
		}
		q := domain.QuizQuestion{
			Source: domain.SourceRef{
				Book:    req.Book,
				Chapter: req.Chapter,
				Verse:   item.Verse,
			},
			Prompt:        item.prompt(),
			Type:          req.Type,
			CorrectAnswer: item.correctAnswer(),
			Explanation:   strings.TrimSpace(item.Explanation),
			Difficulty:    req.Difficulty,
			Category:      strings.TrimSpace(item.Category),
			Topic:         strings.TrimSpace(item.Topic),
		}
		if req.Type == domain.QuestionTypeMultipleChoice {
			q.Options = trimAll(item.Options)
		}
		if q.Source.Chapter <= 0 && item.Chapter > 0 {
			q.Source.Chapter = item.Chapter
		}
		if err := q.Validate(); err != nil {
			logger.Get().Warn("Dropping invalid generated question", zap.Int("index", i), zap.Error(err))
			continue
		}
		questions = append(questions, q)
		if len(questions) == req.Count {
			break
		}
	}
	if len(questions) == 0 {
		return nil, errors.New("no generated question passed validation")
	}
	return questions, nil
}

var trailingComma = regexp.MustCompile(`,\s*([\]}])`)

// repairJSON extracts a JSON array from free-form model output: reasoning
// blocks and markdown fences are removed, a lone object is wrapped in an
// array, and trailing commas are dropped.
func repairJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if end := strings.LastIndex(s, "</think>"); end != -1 {
		s = s[end+len("</think>"):]
	} else if start := strings.Index(s, "<think>"); start != -1 {
		// unterminated reasoning block, nothing usable follows
		s = s[:start]
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	// whichever bracket opens first decides between an array and a lone object
	arrStart, objStart := strings.Index(s, "["), strings.Index(s, "{")
	switch {
	case arrStart != -1 && (objStart == -1 || arrStart < objStart):
		end := strings.LastIndex(s, "]")
		if end < arrStart {
			return "", errNoJSON
		}
		s = s[arrStart : end+1]
	case objStart != -1:
		end := strings.LastIndex(s, "}")
		if end < objStart {
			return "", errNoJSON
		}
		s = "[" + s[objStart:end+1] + "]"
	default:
		return "", errNoJSON
	}
	return trailingComma.ReplaceAllString(s, "$1"), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
