package request

const VisibilityAll = "ALL"

type ProductListFilter struct {
	/*
		Фильтр по видимости товара:
		ALL — все товары, кроме архивных
		VISIBLE — видимые покупателям
		INVISIBLE — скрытые от покупателей
	*/
	Visibility string `json:"visibility"`
}

// ProductList — тело запроса /v2/product/list.
type ProductList struct {
	Filter ProductListFilter `json:"filter"`

	// LastID — курсор: значение last_id из предыдущего ответа, пустая строка для первой страницы.
	LastID string `json:"last_id"`

	// Limit — число товаров на странице, от 1 до 1000.
	Limit int `json:"limit"`
}

func NewProductList(lastID string, limit int) ProductList {
	return ProductList{
		Filter: ProductListFilter{Visibility: VisibilityAll},
		LastID: lastID,
		Limit:  limit,
	}
}
