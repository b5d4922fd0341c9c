package service

import (
	"fmt"
	"math"
)

// promptIndex holds the embedded prompts of one book's questions, both the
// ones already in the bank and the candidates accepted so far in a batch.
type promptIndex struct {
	entries []indexedPrompt
}

type indexedPrompt struct {
	questionID string // empty for candidates of the current batch
	prompt     string
	vec        []float32
}

func (ix *promptIndex) add(questionID, prompt string, vec []float32) {
	ix.entries = append(ix.entries, indexedPrompt{questionID: questionID, prompt: prompt, vec: vec})
}

// closest returns the indexed prompt most similar to vec. ok is false when
// the index is empty or no entry has a comparable vector.
func (ix *promptIndex) closest(vec []float32) (match indexedPrompt, similarity float64, ok bool) {
	similarity = math.Inf(-1)
	for _, entry := range ix.entries {
		s, err := promptSimilarity(vec, entry.vec)
		if err != nil {
			continue
		}
		if s > similarity {
			match, similarity, ok = entry, s, true
		}
	}
	return match, similarity, ok
}

// promptSimilarity is the cosine similarity of two prompt embeddings. It is
// an error to compare vectors from different embedding models, which show up
// as differing lengths. A zero vector is similar to nothing.
func promptSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty embedding")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
