package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/internal/ozon/business/models/dto/request"
	"gomarketplace_sync/internal/ozon/business/models/dto/response"
	"gomarketplace_sync/internal/ozon/business/services"
	"gomarketplace_sync/pkg/logger"
	"gomarketplace_sync/pkg/middleware"
)

const (
	DefaultBaseURL   = "https://api-seller.ozon.ru"
	DefaultPageLimit = 1000
	DefaultTimeout   = 60 * time.Second

	productListEndpoint  = "/v2/product/list"
	importPricesEndpoint = "/v1/product/import/prices"
	importStocksEndpoint = "/v1/product/import/stocks"

	maxErrorBody = 512
)

// SellerClient — клиент Seller API. Перед каждым запросом ждёт rate limiter.
// Повторов при ошибках не делает.
type SellerClient struct {
	client    *resty.Client
	auth      services.AuthEngine
	limiter   *rate.Limiter
	log       logger.Logger
	pageLimit int
}

type Option func(*SellerClient)

func WithTimeout(d time.Duration) Option {
	return func(c *SellerClient) {
		c.client.SetTimeout(d)
	}
}

func WithPageLimit(limit int) Option {
	return func(c *SellerClient) {
		if limit > 0 {
			c.pageLimit = limit
		}
	}
}

func NewSellerClient(baseURL string, auth services.AuthEngine, limiter *rate.Limiter, log logger.Logger, opts ...Option) *SellerClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	c := &SellerClient{
		auth:      auth,
		limiter:   limiter,
		log:       log,
		pageLimit: DefaultPageLimit,
	}
	c.client = configure(resty.New().SetTimeout(DefaultTimeout), baseURL, log)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func configure(client *resty.Client, baseURL string, log logger.Logger) *resty.Client {
	client.SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	middleware.PrometheusMiddleware(client)
	middleware.LoggingMiddleware(client, log)
	return client
}

// ListPage возвращает страницу товаров магазина начиная с курсора cursor.
func (c *SellerClient) ListPage(ctx context.Context, cursor string) (models.CatalogPage, error) {
	var resp response.ProductList
	if err := c.doRequest(ctx, "list products", productListEndpoint, request.NewProductList(cursor, c.pageLimit), &resp); err != nil {
		return models.CatalogPage{}, err
	}
	return resp.Page(), nil
}

func (c *SellerClient) SubmitStocks(ctx context.Context, stocks []models.StockUpdate) ([]models.ImportResult, error) {
	var resp response.Import
	if err := c.doRequest(ctx, "import stocks", importStocksEndpoint, request.ImportStocks{Stocks: stocks}, &resp); err != nil {
		return nil, err
	}
	return resp.Results(), nil
}

func (c *SellerClient) SubmitPrices(ctx context.Context, prices []models.PriceUpdate) ([]models.ImportResult, error) {
	var resp response.Import
	if err := c.doRequest(ctx, "import prices", importPricesEndpoint, request.ImportPrices{Prices: prices}, &resp); err != nil {
		return nil, err
	}
	return resp.Results(), nil
}

func (c *SellerClient) doRequest(ctx context.Context, op, endpoint string, requestBody, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &errs.TransportError{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req := c.client.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(result).
		ForceContentType("application/json")
	c.auth.SetApiKey(req)

	resp, err := req.Post(endpoint)
	if err != nil {
		status := 0
		if resp != nil && resp.RawResponse != nil {
			status = resp.StatusCode()
		}
		return &errs.TransportError{Op: op, StatusCode: status, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return &errs.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s: %s", resp.Status(), truncate(resp.Body(), maxErrorBody)),
		}
	}
	return nil
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
