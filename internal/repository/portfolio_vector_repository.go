package repository

import (
	"context"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PortfolioVectorRepository struct {
	db *gorm.DB
}

func NewPortfolioVectorRepository(db *gorm.DB) *PortfolioVectorRepository {
	return &PortfolioVectorRepository{db}
}

func (r *PortfolioVectorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PortfolioDocument{}).Count(&n).Error
	return n, err
}

func (r *PortfolioVectorRepository) Add(ctx context.Context, docs []model.PortfolioDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(docs, 100).Error
}

func (r *PortfolioVectorRepository) Query(ctx context.Context, embedding []float32, n int) ([]model.LinkMatch, error) {
	var matches []model.LinkMatch
	vec := pgvector.NewVector(embedding)

	// <-> is the L2 distance operator
	err := r.db.WithContext(ctx).Raw(`
        SELECT link, techstack, embedding <-> ? AS distance
        FROM portfolio_documents
        ORDER BY embedding <-> ?
        LIMIT ?
    `, vec, vec, n).Scan(&matches).Error

	return matches, err
}

func (r *PortfolioVectorRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM portfolio_documents").Error
}

