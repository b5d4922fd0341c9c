package embedding

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"bible-study/internal/domain"
)

const defaultOpenAIEmbeddingModel = "text-embedding-3-small"

// blankRun matches the gap of a fill-in-the-blank prompt, however the author typed it.
var blankRun = regexp.MustCompile(`_{2,}`)

// PromptEmbedder embeds quiz prompts through a langchaingo embedder. Prompts
// are normalized first so that two questions differing only in spacing or
// in the length of their blank get the same vector.
type PromptEmbedder struct {
	provider string
	embedder embeddings.Embedder
}

// NewOllamaEmbedder embeds prompts with a model served by Ollama.
func NewOllamaEmbedder(serverURL, model string) (*PromptEmbedder, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return newPromptEmbedder("ollama", llm)
}

// NewOpenAIEmbedder embeds prompts with an OpenAI embedding model. An empty
// model selects text-embedding-3-small.
func NewOpenAIEmbedder(apiKey, model string) (*PromptEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if model == "" {
		model = defaultOpenAIEmbeddingModel
	}
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithEmbeddingModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return newPromptEmbedder("openai", llm)
}

func newPromptEmbedder(provider string, client embeddings.EmbedderClient) (*PromptEmbedder, error) {
	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s embedder: %w", provider, err)
	}
	return &PromptEmbedder{provider: provider, embedder: embedder}, nil
}

// Generate returns the embedding of a normalized prompt.
func (e *PromptEmbedder) Generate(ctx context.Context, prompt string) ([]float32, error) {
	text := normalizePrompt(prompt)
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}
	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed prompt with %s: %w", e.provider, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%s returned an empty embedding", e.provider)
	}
	return vec, nil
}

// normalizePrompt collapses whitespace and shortens every blank to "____".
func normalizePrompt(prompt string) string {
	return blankRun.ReplaceAllString(strings.Join(strings.Fields(prompt), " "), "____")
}

var _ domain.EmbeddingService = (*PromptEmbedder)(nil)
