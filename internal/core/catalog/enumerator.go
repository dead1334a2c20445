// Package catalog собирает полный список артикулов магазина постраничным обходом листинга.
package catalog

import (
	"context"
	"fmt"

	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/metrics"
	"gomarketplace_sync/pkg/logger"
)

// DefaultMaxStalledPages — сколько страниц подряд листинг может не продвигаться,
// прежде чем обход будет прерван.
const DefaultMaxStalledPages = 3

// Lister — постраничный листинг товаров магазина.
type Lister interface {
	ListPage(ctx context.Context, cursor string) (models.CatalogPage, error)
}

type Enumerator struct {
	lister Lister
	log    logger.Logger

	// MaxStalledPages <= 0 отключает защиту от зацикливания.
	MaxStalledPages int
	metrics         *metrics.UpdateMetrics
}

func NewEnumerator(lister Lister, log logger.Logger, m *metrics.UpdateMetrics) *Enumerator {
	if m == nil {
		m = &metrics.UpdateMetrics{}
	}
	return &Enumerator{
		lister:          lister,
		log:             log,
		MaxStalledPages: DefaultMaxStalledPages,
		metrics:         m,
	}
}

// OfferIDs обходит листинг, начиная с пустого курсора, пока число накопленных
// товаров не сравняется с total из ответа. Ошибки листинга возвращаются как есть.
func (e *Enumerator) OfferIDs(ctx context.Context) (map[string]struct{}, error) {
	var (
		cursor  string
		items   []models.CatalogItem
		stalled int
	)

	for page := 1; ; page++ {
		resp, err := e.lister.ListPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		e.metrics.PagesFetched.Add(1)

		items = append(items, resp.Items...)
		e.log.Log("page %d: got %d items, %d of %d collected", page, len(resp.Items), len(items), resp.Total)

		if len(items) == resp.Total {
			break
		}
		if len(items) > resp.Total {
			return nil, &errs.TransportError{
				Op:  "list products",
				Err: fmt.Errorf("collected %d items, more than reported total %d", len(items), resp.Total),
			}
		}

		if len(resp.Items) == 0 || resp.NextCursor == cursor {
			stalled++
		} else {
			stalled = 0
		}
		if e.MaxStalledPages > 0 && stalled >= e.MaxStalledPages {
			return nil, &errs.TransportError{
				Op: "list products",
				Err: fmt.Errorf("listing stalled for %d pages at cursor %q with %d of %d items",
					stalled, resp.NextCursor, len(items), resp.Total),
			}
		}
		cursor = resp.NextCursor
	}

	offerIDs := make(map[string]struct{}, len(items))
	for _, item := range items {
		offerIDs[item.OfferID] = struct{}{}
	}
	return offerIDs, nil
}
