package services

import (
	"context"

	"gomarketplace_sync/internal/core/models"
)

// SupplierFeed определяет, что должен уметь адаптер поставщика.
type SupplierFeed interface {
	// FetchRecords скачивает и разбирает актуальную выгрузку остатков и цен.
	FetchRecords(ctx context.Context) ([]models.SupplierRecord, error)
}
