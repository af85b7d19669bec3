package models

import "github.com/shopspring/decimal"

// BasketItem is a line in a basket view, priced from the live catalog
type BasketItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Basket is the materialized view of a session's basket
type Basket struct {
	Items         []BasketItem    `json:"items"`
	Total         decimal.Decimal `json:"total"`
	TotalQuantity int             `json:"total_quantity"`
}

// NewBasket builds a view and computes its summary fields.
func NewBasket(items []BasketItem) Basket {
	if items == nil {
		items = []BasketItem{}
	}
	total := decimal.Zero
	qty := 0
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		qty += item.Quantity
	}
	return Basket{
		Items:         items,
		Total:         RoundPrice(total),
		TotalQuantity: qty,
	}
}

// BasketAdd is the request body for adding a product to the basket
type BasketAdd struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// BasketUpdate is the request body for setting a basket item quantity
type BasketUpdate struct {
	Quantity int `json:"quantity"`
}

// BasketAddResult reports whether an add inserted a new line.
type BasketAddResult struct {
	Basket  Basket `json:"basket"`
	Created bool   `json:"created"`
}
