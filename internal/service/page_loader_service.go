package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/util"
	"github.com/go-resty/resty/v2"
)

const pageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

type PageLoaderServiceInterface interface {
	Load(ctx context.Context, url string) (string, error)
}

// PageLoaderService fetches a single job page and normalises it to plain text.
type PageLoaderService struct {
	client *resty.Client
}

func NewPageLoaderService(timeout time.Duration) *PageLoaderService {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", pageUserAgent).
		SetRetryCount(2).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && isRetryableStatus(r.StatusCode()))
		})
	return &PageLoaderService{client: client}
}

func (s *PageLoaderService) Load(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return util.CleanText(resp.String()), nil
}
