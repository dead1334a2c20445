// Package batch делит списки обновлений на пакеты, укладывающиеся в лимиты API.
package batch

import (
	"fmt"
	"iter"
	"slices"

	"gomarketplace_sync/internal/core/errs"
)

// Chunk возвращает ленивую последовательность подряд идущих пакетов размера size.
// Последний пакет может быть короче. Каждый пакет — отдельная копия,
// повторный обход даёт тот же результат.
func Chunk[T any](items []T, size int) (iter.Seq[[]T], error) {
	if size <= 0 {
		return nil, &errs.ValidationError{Field: "batch size", Reason: fmt.Sprintf("must be positive, got %d", size)}
	}

	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += size {
			end := min(start+size, len(items))
			if !yield(slices.Clone(items[start:end])) {
				return
			}
		}
	}, nil
}

// Divide собирает все пакеты Chunk в срез.
func Divide[T any](items []T, size int) ([][]T, error) {
	seq, err := Chunk(items, size)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}
