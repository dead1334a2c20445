package reconcile

import (
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/internal/core/parse"
)

// BuildPriceUpdates формирует цену для каждой записи фида, код которой есть в offerIDs.
// В отличие от остатков, повторяющиеся коды дают несколько записей,
// а артикулы без записи в фиде пропускаются.
func BuildPriceUpdates(records []models.SupplierRecord, offerIDs map[string]struct{}) []models.PriceUpdate {
	prices := make([]models.PriceUpdate, 0, len(records))
	for _, record := range records {
		if _, ok := offerIDs[record.Code]; !ok {
			continue
		}
		prices = append(prices, models.PriceUpdate{
			AutoActionEnabled: models.AutoActionUnknown,
			CurrencyCode:      models.CurrencyRUB,
			OfferID:           record.Code,
			OldPrice:          models.DefaultOldPrice,
			Price:             parse.Price(record.Price),
		})
	}
	return prices
}
