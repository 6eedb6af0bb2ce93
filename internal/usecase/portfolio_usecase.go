package usecase

import (
	"context"
	"io"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/repository"
	"github.com/fadilmartias/cold-mailer/internal/response"
	"github.com/fadilmartias/cold-mailer/internal/service"
)

type PortfolioUsecase struct {
	index *service.PortfolioIndexService
}

func NewPortfolioUsecase(index *service.PortfolioIndexService) *PortfolioUsecase {
	return &PortfolioUsecase{index: index}
}

// PortfolioItem is an entry together with its position in the table, which
// is what Remove takes.
type PortfolioItem struct {
	Index int `json:"index"`
	model.PortfolioEntry
}

func (uc *PortfolioUsecase) List(page, pageSize int) ([]PortfolioItem, *response.Pagination) {
	entries := uc.index.Entries()
	pagination := response.NewPagination(page, pageSize, len(entries))

	lo, hi := pagination.Bounds()
	items := make([]PortfolioItem, 0, hi-lo)
	for i := lo; i < hi; i++ {
		items = append(items, PortfolioItem{Index: i, PortfolioEntry: entries[i]})
	}
	return items, pagination
}

func (uc *PortfolioUsecase) Add(ctx context.Context, techstack, link string) error {
	return uc.index.AddItem(ctx, techstack, link)
}

func (uc *PortfolioUsecase) Remove(ctx context.Context, index int) error {
	return uc.index.RemoveItem(ctx, index)
}

// Upload replaces the portfolio with a CSV table and returns the new size.
func (uc *PortfolioUsecase) Upload(ctx context.Context, csv io.Reader) (int, error) {
	entries, err := repository.ParsePortfolioCSV(csv)
	if err != nil {
		return 0, err
	}
	if err := uc.index.ReplaceAll(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Reindex forces a full rebuild from the current table.
func (uc *PortfolioUsecase) Reindex(ctx context.Context) (int, error) {
	entries := uc.index.Entries()
	if err := uc.index.Rebuild(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
