package service

import (
	"context"
	"strings"
)

// LLMServiceInterface is a single prompt-in, text-out language model call.
// Implementations own their transport retry policy.
type LLMServiceInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type EmbedderInterface interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// stripFences removes a markdown code fence wrapped around model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
