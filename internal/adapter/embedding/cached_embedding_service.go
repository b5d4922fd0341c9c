package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"bible-study/internal/cache"
	"bible-study/internal/config"
	"bible-study/internal/domain"
	"bible-study/internal/logger"
)

// DefaultCacheTTL keeps embeddings for a week; they only change with the model.
const DefaultCacheTTL = 168 * time.Hour

// CachedEmbeddingService memoizes another EmbeddingService in the cache.
// Concurrent requests for the same text share one upstream call.
type CachedEmbeddingService struct {
	next    domain.EmbeddingService
	cache   domain.Cache
	model   string
	ttl     time.Duration
	sfGroup singleflight.Group
}

func NewCachedEmbeddingService(next domain.EmbeddingService, c domain.Cache, model string, ttl time.Duration) (*CachedEmbeddingService, error) {
	if next == nil {
		return nil, fmt.Errorf("embedding service cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache instance cannot be nil for CachedEmbeddingService")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("embedding cache TTL must be positive")
	}
	return &CachedEmbeddingService{next: next, cache: c, model: model, ttl: ttl}, nil
}

// New builds the embedding service selected by cfg.Source, wrapped in the
// cache. It returns nil when embeddings are disabled.
func New(cfg config.EmbeddingConfig, openAIKey string, c domain.Cache) (domain.EmbeddingService, error) {
	var (
		next  domain.EmbeddingService
		model string
		err   error
	)
	switch cfg.Source {
	case "":
		return nil, nil
	case "ollama":
		model = cfg.OllamaModel
		next, err = NewOllamaEmbedder(cfg.OllamaServerURL, model)
	case "openai":
		model = cfg.OpenAIModel
		next, err = NewOpenAIEmbedder(openAIKey, model)
	default:
		return nil, fmt.Errorf("unsupported embedding source %q", cfg.Source)
	}
	if err != nil {
		return nil, err
	}
	cached, err := NewCachedEmbeddingService(next, c, cfg.Source+"-"+model, DefaultCacheTTL)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (s *CachedEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}
	l := logger.Get()
	cacheKey := cache.TextEmbeddingKey(s.model, text)

	cached, err := s.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		var embedding []float32
		errDecode := gob.NewDecoder(bytes.NewReader([]byte(cached))).Decode(&embedding)
		if errDecode == nil {
			return embedding, nil
		}
		l.Warn("Failed to decode cached embedding", zap.Error(errDecode), zap.String("cache_key", cacheKey))
	case !errors.Is(err, domain.ErrCacheMiss):
		l.Warn("Failed to read embedding cache", zap.Error(err), zap.String("cache_key", cacheKey))
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		embedding, fetchErr := s.next.Generate(ctx, text)
		if fetchErr != nil {
			return nil, fetchErr
		}

		var buffer bytes.Buffer
		if errEncode := gob.NewEncoder(&buffer).Encode(embedding); errEncode != nil {
			l.Warn("Failed to encode embedding for caching", zap.Error(errEncode))
			return embedding, nil
		}
		if errSet := s.cache.Set(ctx, cacheKey, buffer.String(), s.ttl); errSet != nil {
			l.Warn("Failed to cache embedding", zap.Error(errSet), zap.String("cache_key", cacheKey))
		}
		return embedding, nil
	})
	if err != nil {
		return nil, err
	}

	if embedding, ok := res.([]float32); ok {
		return embedding, nil
	}
	return nil, fmt.Errorf("unexpected type from singleflight.Do for embedding: %T", res)
}

var _ domain.EmbeddingService = (*CachedEmbeddingService)(nil)
