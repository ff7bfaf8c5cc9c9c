package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID           int       `json:"id"`
	CustomerID   int       `json:"customer_id"`
	PurchaseDate time.Time `json:"purchase_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type LineItem struct {
	ID        int             `json:"id"`
	CartID    int             `json:"cart_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductDetails is the catalog service's payload for one product,
// attached to a line item verbatim. Price here is advisory remote data,
// not the price the cart charges.
type ProductDetails struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// EnrichedLineItem carries a line item plus the catalog lookup outcome.
// Exactly one of Details and DetailsError is set.
type EnrichedLineItem struct {
	LineItem
	Details      *ProductDetails `json:"details,omitempty"`
	DetailsError string          `json:"details_error,omitempty"`
}
