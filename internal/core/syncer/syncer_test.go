package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gomarketplace_sync/internal/core/catalog"
	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/metrics"
	"gomarketplace_sync/pkg/logger"
)

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListPage(ctx context.Context, cursor string) (models.CatalogPage, error) {
	args := m.Called(ctx, cursor)
	return args.Get(0).(models.CatalogPage), args.Error(1)
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitStocks(ctx context.Context, stocks []models.StockUpdate) ([]models.ImportResult, error) {
	args := m.Called(ctx, stocks)
	results, _ := args.Get(0).([]models.ImportResult)
	return results, args.Error(1)
}

func (m *MockSubmitter) SubmitPrices(ctx context.Context, prices []models.PriceUpdate) ([]models.ImportResult, error) {
	args := m.Called(ctx, prices)
	results, _ := args.Get(0).([]models.ImportResult)
	return results, args.Error(1)
}

func catalogOf(n int) models.CatalogPage {
	items := make([]models.CatalogItem, n)
	for i := range items {
		items[i] = models.CatalogItem{ProductID: int64(i), OfferID: fmt.Sprintf("%03d", i)}
	}
	return models.CatalogPage{Items: items, Total: n, NextCursor: "end"}
}

func newSyncer(lister catalog.Lister, sub *MockSubmitter, m *metrics.UpdateMetrics) *Syncer {
	log := logger.NewNop()
	return NewSyncer(catalog.NewEnumerator(lister, log, m), sub, sub, log, m)
}

func TestSyncStocksBatchesOfHundred(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(250), nil).Once()

	sub := new(MockSubmitter)
	var sizes []int
	sub.On("SubmitStocks", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sizes = append(sizes, len(args.Get(1).([]models.StockUpdate)))
		}).
		Return([]models.ImportResult{{OfferID: "000", Updated: true}}, nil)

	records := []models.SupplierRecord{
		{Code: "001", Quantity: ">10"},
		{Code: "002", Quantity: "1"},
		{Code: "003", Quantity: "4"},
		{Code: "999", Quantity: "8"},
	}

	m := &metrics.UpdateMetrics{}
	nonZero, all, err := newSyncer(lister, sub, m).SyncStocks(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 100, 50}, sizes)
	assert.Len(t, all, 250)
	assert.Equal(t, []models.StockUpdate{{OfferID: "001", Stock: 100}, {OfferID: "003", Stock: 4}}, nonZero)
	assert.EqualValues(t, 3, m.BatchesSent.Load())
	lister.AssertExpectations(t)
	sub.AssertNumberOfCalls(t, "SubmitStocks", 3)
}

func TestSyncStocksPreservesOrderAcrossBatches(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(150), nil)

	sub := new(MockSubmitter)
	var sent []models.StockUpdate
	sub.On("SubmitStocks", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).([]models.StockUpdate)...)
		}).
		Return(nil, nil)

	_, all, err := newSyncer(lister, sub, nil).SyncStocks(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, all, sent)
}

func TestSyncStocksAbortsOnSubmitError(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(300), nil)

	cause := &errs.TransportError{Op: "import stocks", StatusCode: 500, Err: errors.New("boom")}
	sub := new(MockSubmitter)
	sub.On("SubmitStocks", mock.Anything, mock.Anything).Return(nil, nil).Once()
	sub.On("SubmitStocks", mock.Anything, mock.Anything).Return(nil, cause).Once()

	_, _, err := newSyncer(lister, sub, nil).SyncStocks(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "submit batch 2")
	sub.AssertNumberOfCalls(t, "SubmitStocks", 2)
}

func TestSyncStocksParseErrorSubmitsNothing(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(3), nil)
	sub := new(MockSubmitter)

	_, _, err := newSyncer(lister, sub, nil).SyncStocks(context.Background(),
		[]models.SupplierRecord{{Code: "001", Quantity: "abc"}})

	var pe *errs.ParseError
	require.True(t, errors.As(err, &pe))
	sub.AssertNotCalled(t, "SubmitStocks", mock.Anything, mock.Anything)
}

func TestSyncStocksCatalogError(t *testing.T) {
	cause := &errs.TransportError{Op: "list products", Err: context.DeadlineExceeded}
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(models.CatalogPage{}, cause)
	sub := new(MockSubmitter)

	_, _, err := newSyncer(lister, sub, nil).SyncStocks(context.Background(), nil)

	assert.ErrorIs(t, err, cause)
	assert.True(t, errs.IsTimeout(err))
}

func TestSyncStocksStopsBetweenBatches(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(300), nil)

	ctx, cancel := context.WithCancel(context.Background())
	sub := new(MockSubmitter)
	sub.On("SubmitStocks", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, nil)

	_, _, err := newSyncer(lister, sub, nil).SyncStocks(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
	sub.AssertNumberOfCalls(t, "SubmitStocks", 1)
}

func TestSyncPrices(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(5), nil)

	sub := new(MockSubmitter)
	var batches [][]models.PriceUpdate
	sub.On("SubmitPrices", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batches = append(batches, args.Get(1).([]models.PriceUpdate))
		}).
		Return([]models.ImportResult{
			{OfferID: "001", Updated: true},
			{OfferID: "002", Updated: false, Errors: []string{"PRICE_TOO_LOW: price is too low"}},
		}, nil)

	records := []models.SupplierRecord{
		{Code: "001", Price: "5'990.00 руб."},
		{Code: "002", Price: "100.00 руб."},
		{Code: "001", Price: "6'000.00 руб."},
		{Code: "777", Price: "1.00 руб."},
	}

	m := &metrics.UpdateMetrics{}
	prices, err := newSyncer(lister, sub, m).SyncPrices(context.Background(), records, 2)
	require.NoError(t, err)

	require.Len(t, prices, 3)
	assert.Equal(t, "5990", prices[0].Price)
	assert.Equal(t, "6000", prices[2].Price)
	assert.Len(t, batches, 2)
	assert.Len(t, batches[1], 1)
	assert.EqualValues(t, 2, m.UpdatedCount.Load())
	assert.EqualValues(t, 2, m.Rejected.Load())
}

func TestSyncPricesInvalidBatchSize(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(1), nil)
	sub := new(MockSubmitter)

	_, err := newSyncer(lister, sub, nil).SyncPrices(context.Background(),
		[]models.SupplierRecord{{Code: "000", Price: "1.00"}}, 0)

	var ve *errs.ValidationError
	require.True(t, errors.As(err, &ve))
	sub.AssertNotCalled(t, "SubmitPrices", mock.Anything, mock.Anything)
}

func TestSyncPricesNoMatchesSendsNothing(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListPage", mock.Anything, "").Return(catalogOf(2), nil)
	sub := new(MockSubmitter)

	prices, err := newSyncer(lister, sub, nil).SyncPrices(context.Background(), nil, ScheduledPriceBatchSize)
	require.NoError(t, err)
	assert.Empty(t, prices)
	sub.AssertNotCalled(t, "SubmitPrices", mock.Anything, mock.Anything)
}
