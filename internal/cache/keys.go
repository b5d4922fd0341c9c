package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "biblestudy"

	ServiceAnalytics = "analytics"
	ServiceEmbedding = "embedding"

	ObjectMetrics      = "metrics"
	ObjectLearningPlan = "learning_plan"
	ObjectText         = "text"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// MetricsKey is where a user's performance metrics are cached.
func MetricsKey(userID string) string {
	return GenerateCacheKey(ServiceAnalytics, ObjectMetrics, userID)
}

// LearningPlanKey is where a user's learning plan is cached.
func LearningPlanKey(userID string) string {
	return GenerateCacheKey(ServiceAnalytics, ObjectLearningPlan, userID)
}

// UserAnalyticsKeys lists every derived-data key of a user, for invalidation.
func UserAnalyticsKeys(userID string) []string {
	return []string{MetricsKey(userID), LearningPlanKey(userID)}
}

// TextEmbeddingKey caches the embedding of a text under the model that produced it.
// The text itself is hashed so keys stay short.
func TextEmbeddingKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return GenerateCacheKey(ServiceEmbedding, ObjectText, hex.EncodeToString(sum[:]), model)
}
