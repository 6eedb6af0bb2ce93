package config

import (
	"os"
	"sync"
)

// OpenRouterConfig covers any OpenAI-compatible chat completions endpoint.
// Point BaseURL at https://api.groq.com/openai/v1 to talk to Groq instead.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:   getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct"),
		}
	})
	return openRouterConfig
}
