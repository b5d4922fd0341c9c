package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bible-study/internal/domain"
	"bible-study/internal/logger"
	"bible-study/internal/questionbank"
	"bible-study/internal/util"
)

// DefaultSimilarityThreshold is used when no threshold is configured.
const DefaultSimilarityThreshold = 0.95

// GenerationService turns text into new bank questions with the AI
// generator. Near-duplicates of questions already in the bank are dropped
// when an embedding service is configured.
type GenerationService struct {
	generator  domain.QuizGenerator
	embeddings domain.EmbeddingService
	store      domain.QuestionStore
	bank       *questionbank.Bank
	threshold  float64
}

// NewGenerationService creates a GenerationService. embeddings may be nil,
// which disables duplicate detection.
func NewGenerationService(generator domain.QuizGenerator, embeddings domain.EmbeddingService, store domain.QuestionStore, bank *questionbank.Bank, threshold float64) *GenerationService {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &GenerationService{
		generator:  generator,
		embeddings: embeddings,
		store:      store,
		bank:       bank,
		threshold:  threshold,
	}
}

// Generate asks the generator for questions, drops near-duplicates, stores
// the rest and adds them to the bank. It returns the questions added.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.QuizQuestion, error) {
	l := logger.Get()
	book, ok := domain.CanonicalBookName(req.Book)
	if !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("a canonical book is required, got %q", req.Book))
	}
	req.Book = book

	candidates, err := s.generator.GenerateQuestions(ctx, req)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.NewLLMServiceError(err)
	}
	l.Info("Received generated questions", zap.String("book", book), zap.Int("count", len(candidates)))

	unique := s.dropDuplicates(ctx, book, candidates)
	if len(unique) == 0 {
		l.Info("All generated questions duplicate existing ones", zap.String("book", book))
		return []domain.QuizQuestion{}, nil
	}

	for i := range unique {
		if unique[i].ID == "" {
			unique[i].ID = util.NewULID()
		}
	}
	if err := s.store.SaveQuestions(ctx, unique); err != nil {
		l.Error("Failed to save generated questions", zap.Error(err))
		return nil, domain.NewUnavailableError("the question store", err)
	}
	added, err := s.bank.Add(unique...)
	if err != nil {
		return nil, err
	}

	l.Info("Added generated questions to the bank",
		zap.String("book", book),
		zap.Int("generated", len(candidates)),
		zap.Int("added", len(added)))
	return added, nil
}

// dropDuplicates keeps candidates whose prompt is below the similarity
// threshold against every existing question of the book and every earlier
// accepted candidate. If embeddings fail, the remaining candidates are kept.
func (s *GenerationService) dropDuplicates(ctx context.Context, book string, candidates []domain.QuizQuestion) []domain.QuizQuestion {
	if s.embeddings == nil {
		return candidates
	}
	l := logger.Get()

	var index promptIndex
	for _, q := range s.bank.Query(domain.QuestionFilter{Books: []string{book}}) {
		vec, err := s.embeddings.Generate(ctx, q.Prompt)
		if err != nil {
			l.Warn("Failed to embed existing question, skipping duplicate check",
				zap.String("question_id", q.ID),
				zap.Error(err))
			return candidates
		}
		index.add(q.ID, q.Prompt, vec)
	}

	unique := make([]domain.QuizQuestion, 0, len(candidates))
	for i, c := range candidates {
		vec, err := s.embeddings.Generate(ctx, c.Prompt)
		if err != nil {
			l.Warn("Failed to embed generated question, skipping duplicate check", zap.Error(err))
			return append(unique, candidates[i:]...)
		}

		if match, similarity, ok := index.closest(vec); ok && similarity >= s.threshold {
			l.Info("Generated question is too similar to an existing one",
				zap.String("generated_prompt", c.Prompt),
				zap.String("existing_prompt", match.prompt),
				zap.String("existing_id", match.questionID),
				zap.Float64("similarity", similarity))
			continue
		}
		unique = append(unique, c)
		index.add("", c.Prompt, vec)
	}
	return unique
}

// LoadQuestionBank builds the bank from the built-in questions plus every
// question in the store. A store failure leaves just the built-in set; a
// stored question that no longer validates is skipped on its own.
func LoadQuestionBank(ctx context.Context, store domain.QuestionStore) (*questionbank.Bank, error) {
	bank, err := questionbank.NewWithSeed()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return bank, nil
	}
	l := logger.Get()
	stored, err := store.ListQuestions(ctx)
	if err != nil {
		l.Warn("Failed to load stored questions, using built-in questions only", zap.Error(err))
		return bank, nil
	}

	loaded, rejected := 0, 0
	for _, q := range stored {
		added, err := bank.Add(q)
		if err != nil {
			rejected++
			l.Warn("Skipping invalid stored question", zap.String("question_id", q.ID), zap.Error(err))
			continue
		}
		loaded += len(added)
	}
	l.Info("Question bank loaded",
		zap.Int("total", bank.Len()),
		zap.Int("from_store", loaded),
		zap.Int("rejected", rejected))
	return bank, nil
}
