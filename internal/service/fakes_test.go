package service

import (
	"context"
	"sync"

	"github.com/fadilmartias/cold-mailer/internal/model"
)

type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type countingEmbedder struct {
	mu    sync.Mutex
	inner EmbedderInterface
	texts []string
	err   error
}

func (e *countingEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.texts = append(e.texts, text)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return e.inner.GenerateEmbedding(ctx, text)
}

func (e *countingEmbedder) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.texts)
}

type memoryTable struct {
	entries []model.PortfolioEntry
	saves   int
	err     error
}

func (t *memoryTable) Load() ([]model.PortfolioEntry, error) {
	return append([]model.PortfolioEntry{}, t.entries...), nil
}

func (t *memoryTable) Save(entries []model.PortfolioEntry) error {
	if t.err != nil {
		return t.err
	}
	t.saves++
	t.entries = append([]model.PortfolioEntry{}, entries...)
	return nil
}
