package repository

import (
	"context"

	"github.com/fadilmartias/cold-mailer/internal/model"
)

// VectorStore is the retrieval engine behind the portfolio index: a named
// document collection that can be counted, appended to, queried by nearest
// embedding and dropped. Distances are Euclidean (L2) in every implementation.
type VectorStore interface {
	Count(ctx context.Context) (int64, error)
	Add(ctx context.Context, docs []model.PortfolioDocument) error
	Query(ctx context.Context, embedding []float32, n int) ([]model.LinkMatch, error)
	Reset(ctx context.Context) error
}
