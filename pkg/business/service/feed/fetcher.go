package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"gomarketplace_sync/internal/core/errs"
)

// Fetcher определяет интерфейс для получения данных по URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type HTTPFetcher struct {
	Client *resty.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client: resty.New().SetTimeout(timeout),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.Client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &errs.TransportError{Op: "download feed", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &errs.TransportError{
			Op:         "download feed",
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}
	return resp.Body(), nil
}
