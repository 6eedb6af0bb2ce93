package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/cold-mailer/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService talks to an OpenAI-compatible chat completions API.
type OpenRouterService struct {
	client      *resty.Client
	Model       string
	Temperature float32
}

func NewOpenRouterService(openRouterConfig *config.OpenRouterConfig, llmConfig *config.LLMConfig) *OpenRouterService {
	client := resty.New().
		SetBaseURL(openRouterConfig.BaseURL).
		SetAuthToken(openRouterConfig.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(llmConfig.RequestTimeout).
		SetRetryCount(llmConfig.MaxRetries).
		SetRetryWaitTime(llmConfig.BaseDelay).
		SetRetryMaxWaitTime(llmConfig.MaxDelay).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r != nil && isRetryableStatus(r.StatusCode())
		})

	return &OpenRouterService{
		client:      client,
		Model:       openRouterConfig.Model,
		Temperature: llmConfig.Temperature,
	}
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":       s.Model,
			"temperature": s.Temperature,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
