// Package reconcile сопоставляет записи фида поставщика с артикулами магазина
// и формирует списки обновлений остатков и цен.
package reconcile

import (
	"errors"
	"maps"
	"slices"

	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/internal/core/parse"
)

// BuildStockUpdates возвращает ровно одно обновление на каждый артикул из offerIDs.
// Первая запись фида с данным кодом определяет остаток, повторы игнорируются.
// Артикулы, которых нет в фиде, получают нулевой остаток и идут в конце
// в порядке сортировки. offerIDs не изменяется.
func BuildStockUpdates(records []models.SupplierRecord, offerIDs map[string]struct{}) ([]models.StockUpdate, error) {
	pending := maps.Clone(offerIDs)
	if pending == nil {
		pending = map[string]struct{}{}
	}

	stocks := make([]models.StockUpdate, 0, len(offerIDs))
	for _, record := range records {
		if _, ok := pending[record.Code]; !ok {
			continue
		}

		stock, err := parse.Quantity(record.Quantity)
		if err != nil {
			var pe *errs.ParseError
			if errors.As(err, &pe) {
				pe.OfferID = record.Code
			}
			return nil, err
		}

		stocks = append(stocks, models.StockUpdate{OfferID: record.Code, Stock: stock})
		delete(pending, record.Code)
	}

	for _, offerID := range slices.Sorted(maps.Keys(pending)) {
		stocks = append(stocks, models.StockUpdate{OfferID: offerID, Stock: 0})
	}
	return stocks, nil
}

// NonZero отбирает обновления с ненулевым остатком, сохраняя порядок.
func NonZero(stocks []models.StockUpdate) []models.StockUpdate {
	nonZero := make([]models.StockUpdate, 0, len(stocks))
	for _, s := range stocks {
		if s.Stock != 0 {
			nonZero = append(nonZero, s)
		}
	}
	return nonZero
}
