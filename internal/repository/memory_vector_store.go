package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/fadilmartias/cold-mailer/internal/model"
)

// MemoryVectorStore keeps documents in process and answers queries with an
// exhaustive L2 scan. Portfolios are small, so no ANN structure is needed.
type MemoryVectorStore struct {
	mu   sync.RWMutex
	docs []model.PortfolioDocument
}

func NewMemoryVectorStore() *MemoryVectorStore {
	return &MemoryVectorStore{}
}

func (s *MemoryVectorStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

func (s *MemoryVectorStore) Add(ctx context.Context, docs []model.PortfolioDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

func (s *MemoryVectorStore) Query(ctx context.Context, embedding []float32, n int) ([]model.LinkMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.LinkMatch, 0, len(s.docs))
	for _, d := range s.docs {
		stored := d.Embedding.Slice()
		if len(stored) != len(embedding) {
			return nil, fmt.Errorf("embedding dimension mismatch: query %d, document %s has %d",
				len(embedding), d.ID, len(stored))
		}
		matches = append(matches, model.LinkMatch{
			Link:      d.Link,
			Techstack: d.Techstack,
			Distance:  l2Distance(embedding, stored),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if n < len(matches) {
		matches = matches[:n]
	}
	return matches, nil
}

func (s *MemoryVectorStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	return nil
}

func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
