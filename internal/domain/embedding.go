package domain

import "context"

// EmbeddingService generates text embeddings, used to spot generated
// questions that duplicate ones already in the bank.
type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
