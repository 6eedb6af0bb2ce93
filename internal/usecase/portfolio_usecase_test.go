package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/repository"
	"github.com/fadilmartias/cold-mailer/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortfolioUsecase(t *testing.T) (*PortfolioUsecase, *repository.PortfolioCSVRepository) {
	t.Helper()
	table := repository.NewPortfolioCSVRepository(t.TempDir() + "/portfolio.csv")
	index := service.NewPortfolioIndexService(repository.NewMemoryVectorStore(), service.NewKeywordEmbedder(128), table, 2)
	require.NoError(t, index.ReplaceAll(context.Background(), testPortfolio))
	return NewPortfolioUsecase(index), table
}

func TestPortfolioUsecase_List(t *testing.T) {
	uc, _ := newPortfolioUsecase(t)

	items, page := uc.List(1, 2)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, linkP1, items[0].Link)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.From)
	assert.Equal(t, 2, page.To)

	items, page = uc.List(2, 2)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Index)
	assert.False(t, page.HasMore)

	items, page = uc.List(5, 2)
	assert.Empty(t, items)
	assert.False(t, page.HasMore)

	_, page = uc.List(0, 0)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}

func TestPortfolioUsecase_UploadAndReindex(t *testing.T) {
	uc, table := newPortfolioUsecase(t)
	ctx := context.Background()

	n, err := uc.Upload(ctx, strings.NewReader("Techstack,Links\nGo,https://example.com/go\nRust,\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	saved, err := table.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.PortfolioEntry{{Techstack: "Go", Link: "https://example.com/go"}}, saved)

	_, err = uc.Upload(ctx, strings.NewReader("Name,Url\nx,y\n"))
	assert.Error(t, err)

	n, err = uc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, uc.Add(ctx, "Python", "https://example.com/py"))
	require.NoError(t, uc.Remove(ctx, 0))
	items, _ := uc.List(1, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/py", items[0].Link)
}
