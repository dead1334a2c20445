package response

import (
	"fmt"

	"gomarketplace_sync/internal/core/models"
)

type ImportError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ImportError) String() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ImportItem struct {
	ProductID int64         `json:"product_id"`
	OfferID   string        `json:"offer_id"`
	Updated   bool          `json:"updated"`
	Errors    []ImportError `json:"errors"`
}

// Import — ответ /v1/product/import/stocks и /v1/product/import/prices.
type Import struct {
	Result []ImportItem `json:"result"`
}

func (r *Import) Results() []models.ImportResult {
	results := make([]models.ImportResult, len(r.Result))
	for i, item := range r.Result {
		errs := make([]string, len(item.Errors))
		for j, e := range item.Errors {
			errs[j] = e.String()
		}
		results[i] = models.ImportResult{
			ProductID: item.ProductID,
			OfferID:   item.OfferID,
			Updated:   item.Updated,
			Errors:    errs,
		}
	}
	return results
}
