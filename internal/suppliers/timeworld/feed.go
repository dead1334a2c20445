// Package timeworld — фид остатков поставщика часов: zip-архив с табличной выгрузкой.
package timeworld

import (
	"context"
	"fmt"

	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/pkg/business/service/feed"
	"gomarketplace_sync/pkg/logger"
)

const (
	DefaultFeedURL      = "https://timeworld.ru/upload/files/ostatki.zip"
	DefaultArchiveEntry = "ostatki.xls"

	ColumnCode     = "Код"
	ColumnQuantity = "Количество"
	ColumnPrice    = "Цена"
)

// Columns — названия колонок выгрузки, из которых собирается SupplierRecord.
type Columns struct {
	Code     string
	Quantity string
	Price    string
}

func DefaultColumns() Columns {
	return Columns{Code: ColumnCode, Quantity: ColumnQuantity, Price: ColumnPrice}
}

type Feed struct {
	url       string
	entry     string
	columns   Columns
	fetcher   feed.Fetcher
	processor *feed.Processor
	log       logger.Logger
}

func NewFeed(url, entry string, columns Columns, fetcher feed.Fetcher, processor *feed.Processor, log logger.Logger) *Feed {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Feed{
		url:       url,
		entry:     entry,
		columns:   columns,
		fetcher:   fetcher,
		processor: processor,
		log:       log,
	}
}

// FetchRecords скачивает архив, извлекает выгрузку и переводит строки в SupplierRecord.
// На диск ничего не пишется.
func (f *Feed) FetchRecords(ctx context.Context) ([]models.SupplierRecord, error) {
	archive, err := f.fetcher.Fetch(ctx, f.url)
	if err != nil {
		return nil, err
	}
	f.log.Log("downloaded %s (%d bytes)", f.url, len(archive))

	data, err := feed.ExtractMember(archive, f.entry)
	if err != nil {
		return nil, fmt.Errorf("extract feed: %w", err)
	}

	table, err := f.processor.Process(f.entry, data)
	if err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	records, err := mapRecords(table, f.columns)
	if err != nil {
		return nil, err
	}
	f.log.Log("feed contains %d records", len(records))
	return records, nil
}

func mapRecords(table *feed.Table, columns Columns) ([]models.SupplierRecord, error) {
	for _, col := range []string{columns.Code, columns.Quantity, columns.Price} {
		if !table.Has(col) {
			return nil, &errs.ValidationError{Field: "feed column", Reason: fmt.Sprintf("%q is missing", col)}
		}
	}

	records := make([]models.SupplierRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		code := table.Cell(row, columns.Code)
		if code == "" {
			continue
		}
		records = append(records, models.SupplierRecord{
			Code:     code,
			Quantity: table.Cell(row, columns.Quantity),
			Price:    table.Cell(row, columns.Price),
		})
	}
	return records, nil
}
