package services

import (
	"cart-api/models"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// CartStore is the durable storage contract the service depends on.
// Lookups return (nil, nil) when the record is absent; the service owns
// the translation into not-found errors.
type CartStore interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByID(ctx context.Context, id int) (*models.Cart, error)
	GetLineItems(ctx context.Context, cartID int) ([]models.LineItem, error)
	FindLineItem(ctx context.Context, cartID, productID int) (*models.LineItem, error)
	AddLineItem(ctx context.Context, item *models.LineItem) error
	UpdateLineItem(ctx context.Context, item *models.LineItem) error
	DeleteLineItem(ctx context.Context, id int) error
}

// Catalog resolves a product id against the external catalog service.
type Catalog interface {
	FetchProductDetails(ctx context.Context, productID int) (*models.ProductDetails, error)
}

type CartService struct {
	store   CartStore
	catalog Catalog
}

func NewCartService(store CartStore, catalog Catalog) *CartService {
	return &CartService{store: store, catalog: catalog}
}

// CreateCart persists a new cart. The one-cart-per-customer invariant
// is enforced by the store's unique key, so two concurrent calls for
// the same customer cannot both succeed; the loser gets
// models.ErrCartExists.
func (s *CartService) CreateCart(ctx context.Context, customerID int, purchaseDate time.Time, status string) (*models.Cart, error) {
	cart := &models.Cart{
		CustomerID:   customerID,
		PurchaseDate: purchaseDate,
		Status:       status,
	}
	if err := s.store.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, id int) (*models.Cart, error) {
	cart, err := s.store.GetCartByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, models.ErrCartNotFound
	}
	return cart, nil
}

// AddLineItem computes subtotal = quantity * unitPrice with exact
// decimal arithmetic and persists the new line item. Adding a product
// already present in the cart creates a second row.
func (s *CartService) AddLineItem(ctx context.Context, cartID, productID, quantity int, unitPrice decimal.Decimal) (*models.LineItem, error) {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return nil, err
	}

	item := &models.LineItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  subtotal(quantity, unitPrice),
	}
	if err := s.store.AddLineItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveLineItem deletes the first line item matching the product.
// Missing cart and missing line item both surface as not-found.
func (s *CartService) RemoveLineItem(ctx context.Context, cartID, productID int) error {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return err
	}

	item, err := s.store.FindLineItem(ctx, cartID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return models.ErrLineItemNotFound
	}
	return s.store.DeleteLineItem(ctx, item.ID)
}

// UpdateQuantity recomputes the subtotal from the stored unit price and
// the new quantity. The unit price is never taken from the request.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID, quantity int) (*models.LineItem, error) {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return nil, err
	}

	item, err := s.store.FindLineItem(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, models.ErrLineItemNotFound
	}

	item.Quantity = quantity
	item.Subtotal = subtotal(quantity, item.UnitPrice)
	if err := s.store.UpdateLineItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListEnrichedLineItems returns every line item of the cart, each with
// a best-effort catalog lookup attached. Lookups fan out concurrently;
// a slow or failed lookup never blocks, cancels or fails the others,
// and the result keeps the stored line-item order. Only a missing cart
// fails the call.
func (s *CartService) ListEnrichedLineItems(ctx context.Context, cartID int) ([]models.EnrichedLineItem, error) {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return nil, err
	}

	items, err := s.store.GetLineItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedLineItem, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		enriched[i].LineItem = item

		wg.Add(1)
		go func(i, productID int) {
			defer wg.Done()
			details, err := s.catalog.FetchProductDetails(ctx, productID)
			if err != nil {
				enriched[i].DetailsError = detailsErrorMessage(err)
				return
			}
			enriched[i].Details = details
		}(i, item.ProductID)
	}
	wg.Wait()

	return enriched, nil
}

// detailsErrorMessage keeps the two catalog failure kinds
// distinguishable in the per-item marker.
func detailsErrorMessage(err error) string {
	if errors.Is(err, models.ErrProductNotFound) {
		return models.ErrProductNotFound.Error()
	}
	return models.ErrCatalogUnavailable.Error()
}

func subtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
