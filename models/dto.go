package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCartRequest struct {
	CustomerID   int       `json:"customer_id" binding:"required,gt=0"`
	PurchaseDate time.Time `json:"purchase_date" binding:"required"`
	Status       string    `json:"status" binding:"required,max=10"`
}

type AddLineItemRequest struct {
	ProductID int             `json:"product_id" binding:"required,gt=0"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

type UpdateQuantityRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}
