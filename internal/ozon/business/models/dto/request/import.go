package request

import "gomarketplace_sync/internal/core/models"

// ImportStocks — тело запроса /v1/product/import/stocks, не более 100 позиций.
type ImportStocks struct {
	Stocks []models.StockUpdate `json:"stocks"`
}

// ImportPrices — тело запроса /v1/product/import/prices, не более 1000 позиций.
type ImportPrices struct {
	Prices []models.PriceUpdate `json:"prices"`
}
