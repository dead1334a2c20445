package models

const (
	CurrencyRUB       = "RUB"
	DefaultOldPrice   = "0"
	AutoActionUnknown = "UNKNOWN"
)

// StockUpdate — остаток для одного артикула в формате /v1/product/import/stocks.
type StockUpdate struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

// PriceUpdate — цена для одного артикула в формате /v1/product/import/prices.
type PriceUpdate struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

// CatalogItem — товар из листинга магазина.
type CatalogItem struct {
	ProductID int64
	OfferID   string
}

// CatalogPage — одна страница листинга товаров.
type CatalogPage struct {
	Items      []CatalogItem
	Total      int
	NextCursor string
}

// ImportResult — результат применения одного обновления маркетплейсом.
type ImportResult struct {
	ProductID int64
	OfferID   string
	Updated   bool
	Errors    []string
}
