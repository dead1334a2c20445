package response

import "gomarketplace_sync/internal/core/models"

type ProductListItem struct {
	ProductID int64  `json:"product_id"`
	OfferID   string `json:"offer_id"`
}

type ProductListResult struct {
	Items  []ProductListItem `json:"items"`
	Total  int               `json:"total"`
	LastID string            `json:"last_id"`
}

type ProductList struct {
	Result ProductListResult `json:"result"`
}

func (p *ProductList) Page() models.CatalogPage {
	items := make([]models.CatalogItem, len(p.Result.Items))
	for i, item := range p.Result.Items {
		items[i] = models.CatalogItem{ProductID: item.ProductID, OfferID: item.OfferID}
	}
	return models.CatalogPage{
		Items:      items,
		Total:      p.Result.Total,
		NextCursor: p.Result.LastID,
	}
}
