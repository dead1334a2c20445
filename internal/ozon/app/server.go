package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"gomarketplace_sync/config"
	"gomarketplace_sync/internal/core/catalog"
	"gomarketplace_sync/internal/core/models"
	coreservices "gomarketplace_sync/internal/core/services"
	"gomarketplace_sync/internal/core/syncer"
	"gomarketplace_sync/internal/ozon/business/services"
	"gomarketplace_sync/internal/ozon/pkg/clients"
	"gomarketplace_sync/internal/suppliers/timeworld"
	"gomarketplace_sync/metrics"
	"gomarketplace_sync/pkg/business/service/feed"
	"gomarketplace_sync/pkg/logger"
)

type Mode string

const (
	ModeAll    Mode = "all"
	ModeStocks Mode = "stocks"
	ModePrices Mode = "prices"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAll, ModeStocks, ModePrices:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want all, stocks or prices)", s)
}

// PriceBatchSize выбирает размер пакета цен: явное значение override, если задано,
// иначе 1000 для разовой выгрузки цен и price_batch_size из конфига для полного прогона.
func PriceBatchSize(mode Mode, cfg *config.AppConfig, override int) (int, error) {
	size := cfg.Ozon.PriceBatchSize
	switch {
	case override != 0:
		size = override
	case mode == ModePrices:
		size = syncer.AdHocPriceBatchSize
	}
	if err := config.CheckPriceBatchSize(size); err != nil {
		return 0, fmt.Errorf("price batch size %w", err)
	}
	return size, nil
}

// Report — итог одного прогона.
type Report struct {
	RunID         string
	Records       int
	Stocks        []models.StockUpdate
	NonZeroStocks []models.StockUpdate
	Prices        []models.PriceUpdate
}

type SyncServer struct {
	feed    coreservices.SupplierFeed
	syncer  *syncer.Syncer
	metrics *metrics.UpdateMetrics
	log     *logger.BaseLogger
}

func NewSyncServer(feed coreservices.SupplierFeed, s *syncer.Syncer, m *metrics.UpdateMetrics, log *logger.BaseLogger) *SyncServer {
	return &SyncServer{feed: feed, syncer: s, metrics: m, log: log}
}

// NewSyncServerFromConfig собирает фид поставщика, клиент Seller API и синхронизатор.
func NewSyncServerFromConfig(cfg *config.AppConfig, log *logger.BaseLogger) (*SyncServer, error) {
	auth := services.NewSellerAuth(cfg.Ozon.ClientID, cfg.Ozon.ApiKey)
	if auth == nil {
		return nil, errors.New("seller credentials are not set")
	}

	limit := rate.Inf
	if cfg.Ozon.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Ozon.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, max(cfg.Ozon.Burst, 1))

	client := clients.NewSellerClient(
		cfg.Ozon.BaseURL,
		auth,
		limiter,
		log.WithPrefix("[SellerClient]"),
		clients.WithTimeout(cfg.Ozon.RequestTimeout),
		clients.WithPageLimit(cfg.Ozon.PageLimit),
	)

	columns := timeworld.Columns{
		Code:     cfg.Supplier.Columns.Code,
		Quantity: cfg.Supplier.Columns.Quantity,
		Price:    cfg.Supplier.Columns.Price,
	}
	processor, err := feed.NewProcessor([]string{columns.Code, columns.Quantity, columns.Price}).
		SetComma(firstRune(cfg.Supplier.Delimiter)).
		SetEncoding(cfg.Supplier.Encoding)
	if err != nil {
		return nil, err
	}
	supplierFeed := timeworld.NewFeed(
		cfg.Supplier.FeedURL,
		cfg.Supplier.ArchiveEntry,
		columns,
		feed.NewHTTPFetcher(cfg.Supplier.DownloadTimeout),
		processor,
		log.WithPrefix("[TimeworldFeed]"),
	)

	m := &metrics.UpdateMetrics{}
	enumerator := catalog.NewEnumerator(client, log.WithPrefix("[Catalog]"), m)
	enumerator.MaxStalledPages = cfg.Ozon.MaxStalledPages

	s := syncer.NewSyncer(enumerator, client, client, log.WithPrefix("[Syncer]"), m)
	return NewSyncServer(supplierFeed, s, m, log), nil
}

// Run скачивает фид и выполняет синхронизацию в выбранном режиме.
// При ошибке прогон прерывается; уже отправленные пакеты остаются применёнными.
func (s *SyncServer) Run(ctx context.Context, mode Mode, priceBatchSize int) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := s.log.With("run_id", report.RunID)
	started := time.Now()
	log.Log("sync started, mode=%s", mode)

	records, err := s.feed.FetchRecords(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch supplier feed: %w", err)
	}
	report.Records = len(records)

	if mode == ModeAll || mode == ModeStocks {
		report.NonZeroStocks, report.Stocks, err = s.syncer.SyncStocks(ctx, records)
		if err != nil {
			return report, fmt.Errorf("sync stocks: %w", err)
		}
		log.Log("stocks: %d offers updated, %d with non-zero stock", len(report.Stocks), len(report.NonZeroStocks))
	}

	if mode == ModeAll || mode == ModePrices {
		report.Prices, err = s.syncer.SyncPrices(ctx, records, priceBatchSize)
		if err != nil {
			return report, fmt.Errorf("sync prices: %w", err)
		}
		log.Log("prices: %d offers updated", len(report.Prices))
	}

	log.Log("sync finished in %s: %s", time.Since(started).Round(time.Millisecond), s.metrics)
	return report, nil
}

// ServeMetrics поднимает HTTP-сервер с /metrics. Возвращает функцию остановки.
func ServeMetrics(addr string, log logger.Logger) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.MetricsHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server: %v", err)
		}
	}()
	log.Log("metrics available at %s/metrics", addr)
	return srv.Shutdown
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
