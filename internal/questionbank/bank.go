// Package questionbank holds the in-memory catalog of quiz questions.
package questionbank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"bible-study/internal/domain"
	"bible-study/internal/util"
)

//go:embed seed/questions.json
var seedJSON []byte

// Bank is a concurrency-safe question catalog. Questions are never mutated
// after they are added; readers always receive copies.
type Bank struct {
	mu        sync.RWMutex
	questions []domain.QuizQuestion
	byID      map[string]int
}

// New returns an empty bank.
func New() *Bank {
	return &Bank{byID: make(map[string]int)}
}

// NewWithSeed returns a bank preloaded with the built-in questions.
func NewWithSeed() (*Bank, error) {
	seed, err := SeedQuestions()
	if err != nil {
		return nil, err
	}
	b := New()
	if _, err := b.Add(seed...); err != nil {
		return nil, err
	}
	return b, nil
}

// SeedQuestions parses the built-in question set.
func SeedQuestions() ([]domain.QuizQuestion, error) {
	return ParseQuestions(seedJSON)
}

// ParseQuestions decodes a JSON array of questions.
func ParseQuestions(data []byte) ([]domain.QuizQuestion, error) {
	var questions []domain.QuizQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, domain.NewMalformedDataError("question file", err)
	}
	return questions, nil
}

// Add validates and appends questions. Questions without an ID get a ULID;
// questions whose ID is already present are skipped. Either every new
// question is added or, on the first invalid one, none are.
func (b *Bank) Add(questions ...domain.QuizQuestion) ([]domain.QuizQuestion, error) {
	prepared := make([]domain.QuizQuestion, 0, len(questions))
	for i, q := range questions {
		book, ok := domain.CanonicalBookName(q.Source.Book)
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf("question %d: unknown book %q", i, q.Source.Book))
		}
		q.Source.Book = book
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.Options = append([]string(nil), q.Options...)
		prepared = append(prepared, q)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	added := make([]domain.QuizQuestion, 0, len(prepared))
	for _, q := range prepared {
		if _, exists := b.byID[q.ID]; exists {
			continue
		}
		b.byID[q.ID] = len(b.questions)
		b.questions = append(b.questions, q)
		added = append(added, q)
	}
	return added, nil
}

// All returns every question in insertion order.
func (b *Bank) All() []domain.QuizQuestion {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.QuizQuestion(nil), b.questions...)
}

// Query returns the questions matching filter in insertion order.
func (b *Bank) Query(filter domain.QuestionFilter) []domain.QuizQuestion {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []domain.QuizQuestion
	for i := range b.questions {
		if filter.Matches(&b.questions[i]) {
			out = append(out, b.questions[i])
		}
	}
	return out
}

// Get looks a question up by ID.
func (b *Bank) Get(id string) (domain.QuizQuestion, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.byID[id]
	if !ok {
		return domain.QuizQuestion{}, false
	}
	return b.questions[i], true
}

// Books returns the distinct books present in the bank, in canonical order.
func (b *Bank) Books() []string {
	b.mu.RLock()
	seen := make(map[string]bool)
	for i := range b.questions {
		seen[b.questions[i].Source.Book] = true
	}
	b.mu.RUnlock()

	books := make([]string, 0, len(seen))
	for book := range seen {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool { return domain.BookIndex(books[i]) < domain.BookIndex(books[j]) })
	return books
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}
