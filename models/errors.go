package models

import "errors"

var (
	// ErrCartExists signals that the customer already owns a cart.
	ErrCartExists = errors.New("cart already exists for this customer")

	ErrCartNotFound     = errors.New("cart not found")
	ErrLineItemNotFound = errors.New("product not found in cart")

	// Catalog lookup outcomes. These never abort an enriched listing;
	// they are converted to per-item detail markers.
	ErrProductNotFound    = errors.New("product not found in catalog")
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
)
