package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	LLMProviderGemini     = "gemini"
	LLMProviderOpenRouter = "openrouter"

	EmbeddingProviderGemini  = "gemini"
	EmbeddingProviderKeyword = "keyword"
)

// LLMConfig selects the model backend once per run. The retry fields are the
// caller-side policy handed to the LLM clients; extractor and composer never retry.
type LLMConfig struct {
	Provider          string
	EmbeddingProvider string
	Temperature       float32
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	KeywordDimensions int
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			Provider:          getEnv("LLM_PROVIDER", LLMProviderGemini),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", EmbeddingProviderGemini),
			Temperature:       float32(getEnvFloat("LLM_TEMPERATURE", 1)),
			MaxRetries:        getEnvInt("LLM_MAX_RETRIES", 3),
			BaseDelay:         time.Second,
			MaxDelay:          90 * time.Second,
			RequestTimeout:    getEnvDuration("LLM_REQUEST_TIMEOUT", 90*time.Second),
			KeywordDimensions: getEnvInt("KEYWORD_EMBEDDING_DIMENSIONS", 512),
		}
	})
	return llmConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, defaulting to %v", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, defaulting to %v", key, raw, fallback)
		return fallback
	}
	return v
}
