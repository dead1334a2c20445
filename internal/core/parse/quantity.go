// Package parse приводит строковые значения фида поставщика к каноническому виду.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"gomarketplace_sync/internal/core/errs"
)

const (
	// MoreThanTen — так поставщик обозначает "больше 10 штук".
	MoreThanTen      = ">10"
	MoreThanTenStock = 100

	// Одна штука в фиде считается отсутствием товара.
	singleItem = "1"
)

// Quantity переводит строку количества из фида в неотрицательный остаток.
// Пробелы по краям не учитываются.
func Quantity(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	switch value {
	case MoreThanTen:
		return MoreThanTenStock, nil
	case singleItem:
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &errs.ParseError{Field: "quantity", Value: raw, Err: err}
	}
	if n < 0 {
		return 0, &errs.ParseError{Field: "quantity", Value: raw, Err: fmt.Errorf("negative quantity %d", n)}
	}
	return n, nil
}
