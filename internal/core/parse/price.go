package parse

import "strings"

// Price оставляет только цифры целой части цены: "5'990.00 руб." -> "5990".
// Всё, начиная с первой точки, отбрасывается. Результат может быть пустым.
func Price(raw string) string {
	whole, _, _ := strings.Cut(raw, ".")

	var b strings.Builder
	b.Grow(len(whole))
	for i := 0; i < len(whole); i++ {
		if c := whole[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
