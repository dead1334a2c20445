// Package syncer связывает обход каталога, сопоставление с фидом и пакетную
// отправку обновлений в маркетплейс.
package syncer

import (
	"context"
	"fmt"
	"strings"

	"gomarketplace_sync/internal/core/catalog"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/internal/core/reconcile"
	"gomarketplace_sync/metrics"
	"gomarketplace_sync/pkg/batch"
	"gomarketplace_sync/pkg/logger"
)

const (
	StockBatchSize = 100

	AdHocPriceBatchSize     = 1000
	ScheduledPriceBatchSize = 900
)

type StockSubmitter interface {
	SubmitStocks(ctx context.Context, stocks []models.StockUpdate) ([]models.ImportResult, error)
}

type PriceSubmitter interface {
	SubmitPrices(ctx context.Context, prices []models.PriceUpdate) ([]models.ImportResult, error)
}

type Syncer struct {
	catalog *catalog.Enumerator
	stocks  StockSubmitter
	prices  PriceSubmitter
	log     logger.Logger
	metrics *metrics.UpdateMetrics
}

func NewSyncer(
	enumerator *catalog.Enumerator,
	stocks StockSubmitter,
	prices PriceSubmitter,
	log logger.Logger,
	m *metrics.UpdateMetrics,
) *Syncer {
	if m == nil {
		m = &metrics.UpdateMetrics{}
	}
	return &Syncer{
		catalog: enumerator,
		stocks:  stocks,
		prices:  prices,
		log:     log,
		metrics: m,
	}
}

// SyncStocks выгружает остатки по всем артикулам магазина пакетами по StockBatchSize.
// Возвращает обновления с ненулевым остатком и полный список.
// Уже отправленные пакеты при ошибке не откатываются.
func (s *Syncer) SyncStocks(ctx context.Context, records []models.SupplierRecord) ([]models.StockUpdate, []models.StockUpdate, error) {
	offerIDs, err := s.catalog.OfferIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get offer ids: %w", err)
	}

	stocks, err := reconcile.BuildStockUpdates(records, offerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("build stock updates: %w", err)
	}

	err = submitBatches(ctx, s, "stocks", stocks, StockBatchSize, s.stocks.SubmitStocks)
	if err != nil {
		return nil, nil, err
	}

	nonZero := reconcile.NonZero(stocks)
	s.log.Log("stocks synced: %d offers, %d in stock", len(stocks), len(nonZero))
	return nonZero, stocks, nil
}

// SyncPrices выгружает цены для артикулов, найденных в фиде, пакетами по batchSize.
func (s *Syncer) SyncPrices(ctx context.Context, records []models.SupplierRecord, batchSize int) ([]models.PriceUpdate, error) {
	offerIDs, err := s.catalog.OfferIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("get offer ids: %w", err)
	}

	prices := reconcile.BuildPriceUpdates(records, offerIDs)

	err = submitBatches(ctx, s, "prices", prices, batchSize, s.prices.SubmitPrices)
	if err != nil {
		return nil, err
	}

	s.log.Log("prices synced: %d offers", len(prices))
	return prices, nil
}

// submitBatches отправляет пакеты строго по очереди. Между пакетами
// проверяется ctx, отправка уже начатого пакета не прерывается.
func submitBatches[T any](
	ctx context.Context,
	s *Syncer,
	kind string,
	items []T,
	size int,
	submit func(context.Context, []T) ([]models.ImportResult, error),
) error {
	chunks, err := batch.Chunk(items, size)
	if err != nil {
		return err
	}

	n := 0
	for chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: stopped before batch %d: %w", kind, n+1, err)
		}
		n++

		results, err := submit(ctx, chunk)
		if err != nil {
			return fmt.Errorf("%s: submit batch %d (%d items): %w", kind, n, len(chunk), err)
		}
		s.metrics.BatchesSent.Add(1)
		s.reportResults(kind, n, results)
	}
	return nil
}

func (s *Syncer) reportResults(kind string, batchNo int, results []models.ImportResult) {
	updated, rejected := 0, 0
	for _, r := range results {
		if r.Updated {
			updated++
			continue
		}
		rejected++
		s.log.Warn("%s batch %d: offer %s not updated: %s", kind, batchNo, r.OfferID, strings.Join(r.Errors, "; "))
	}

	s.metrics.UpdatedCount.Add(int32(updated))
	s.metrics.Rejected.Add(int32(rejected))
	metrics.RecordItems(kind, "updated", updated)
	metrics.RecordItems(kind, "rejected", rejected)
	s.log.Log("%s batch %d: %d updated, %d rejected", kind, batchNo, updated, rejected)
}
