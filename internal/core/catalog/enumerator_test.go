package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomarketplace_sync/internal/core/errs"
	"gomarketplace_sync/internal/core/models"
	"gomarketplace_sync/metrics"
	"gomarketplace_sync/pkg/logger"
)

// pagedLister отдаёт заранее заданные страницы и запоминает курсоры.
type pagedLister struct {
	pages   []models.CatalogPage
	cursors []string
	err     error
}

func (l *pagedLister) ListPage(_ context.Context, cursor string) (models.CatalogPage, error) {
	l.cursors = append(l.cursors, cursor)
	if l.err != nil {
		return models.CatalogPage{}, l.err
	}
	idx := len(l.cursors) - 1
	if idx >= len(l.pages) {
		return l.pages[len(l.pages)-1], nil
	}
	return l.pages[idx], nil
}

func makePages(sizes []int, total int) []models.CatalogPage {
	pages := make([]models.CatalogPage, 0, len(sizes))
	n := 0
	for p, size := range sizes {
		items := make([]models.CatalogItem, size)
		for i := range items {
			items[i] = models.CatalogItem{ProductID: int64(n), OfferID: fmt.Sprintf("offer-%d", n)}
			n++
		}
		pages = append(pages, models.CatalogPage{Items: items, Total: total, NextCursor: fmt.Sprintf("cursor-%d", p+1)})
	}
	return pages
}

func TestOfferIDsThreePages(t *testing.T) {
	lister := &pagedLister{pages: makePages([]int{1000, 1000, 250}, 2250)}
	m := &metrics.UpdateMetrics{}
	e := NewEnumerator(lister, logger.NewNop(), m)

	ids, err := e.OfferIDs(context.Background())
	require.NoError(t, err)

	assert.Len(t, ids, 2250)
	assert.Equal(t, []string{"", "cursor-1", "cursor-2"}, lister.cursors)
	assert.Contains(t, ids, "offer-0")
	assert.Contains(t, ids, "offer-2249")
	assert.EqualValues(t, 3, m.PagesFetched.Load())
}

func TestOfferIDsEmptyCatalog(t *testing.T) {
	lister := &pagedLister{pages: []models.CatalogPage{{Total: 0}}}
	ids, err := NewEnumerator(lister, logger.NewNop(), nil).OfferIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Len(t, lister.cursors, 1)
}

func TestOfferIDsPropagatesListerError(t *testing.T) {
	cause := &errs.TransportError{Op: "list products", StatusCode: 403, Err: errors.New("forbidden")}
	lister := &pagedLister{err: cause}

	_, err := NewEnumerator(lister, logger.NewNop(), nil).OfferIDs(context.Background())
	assert.Same(t, cause, err)
}

func TestOfferIDsStalledListing(t *testing.T) {
	pages := makePages([]int{10}, 20)
	pages = append(pages, models.CatalogPage{Total: 20, NextCursor: "cursor-1"})
	lister := &pagedLister{pages: pages}

	_, err := NewEnumerator(lister, logger.NewNop(), nil).OfferIDs(context.Background())

	var te *errs.TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Error(), "stalled for 3 pages")
	assert.Len(t, lister.cursors, 4)
}

func TestOfferIDsOvershootTotal(t *testing.T) {
	lister := &pagedLister{pages: makePages([]int{5, 5}, 7)}

	_, err := NewEnumerator(lister, logger.NewNop(), nil).OfferIDs(context.Background())

	var te *errs.TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Error(), "more than reported total 7")
}

func TestOfferIDsDuplicateOfferAcrossPages(t *testing.T) {
	pages := []models.CatalogPage{
		{Items: []models.CatalogItem{{ProductID: 1, OfferID: "A"}, {ProductID: 2, OfferID: "B"}}, Total: 3, NextCursor: "c1"},
		{Items: []models.CatalogItem{{ProductID: 3, OfferID: "A"}}, Total: 3, NextCursor: "c2"},
	}
	ids, err := NewEnumerator(&pagedLister{pages: pages}, logger.NewNop(), nil).OfferIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"A": {}, "B": {}}, ids)
}
