package models

// SupplierRecord — одна строка фида остатков поставщика.
// Заполняется явным сопоставлением колонок при разборе фида и дальше не меняется.
type SupplierRecord struct {
	// Code сопоставляется с артикулом (offer_id) на маркетплейсе.
	Code     string
	Quantity string // ">10", "1", "7"
	Price    string // "5'990.00 руб."
}
