package repositories

import (
	"cart-api/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// CreateCart inserts the cart and fills in its store-assigned id. The
// carts table carries a unique key on customer_id; a violation comes
// back as models.ErrCartExists.
func (r *CartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	query := `
		INSERT INTO carts (customer_id, purchase_date, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		cart.CustomerID, cart.PurchaseDate, cart.Status, time.Now(),
	).Scan(&cart.ID, &cart.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return models.ErrCartExists
	}
	return err
}

// GetCartByID returns (nil, nil) when no cart has the given id.
func (r *CartRepository) GetCartByID(ctx context.Context, id int) (*models.Cart, error) {
	query := `SELECT id, customer_id, purchase_date, status, created_at FROM carts WHERE id = $1`

	var cart models.Cart
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cart.ID, &cart.CustomerID, &cart.PurchaseDate, &cart.Status, &cart.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetLineItems lists a cart's line items in insertion order.
func (r *CartRepository) GetLineItems(ctx context.Context, cartID int) ([]models.LineItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM line_items WHERE cart_id = $1 ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindLineItem returns the first line item for the product within the
// cart, by id order. Duplicate products per cart are allowed, so there
// may be later matches. Returns (nil, nil) when there is no match.
func (r *CartRepository) FindLineItem(ctx context.Context, cartID, productID int) (*models.LineItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM line_items WHERE cart_id = $1 AND product_id = $2 ORDER BY id LIMIT 1
	`
	var item models.LineItem
	err := r.db.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.Subtotal, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) AddLineItem(ctx context.Context, item *models.LineItem) error {
	query := `
		INSERT INTO line_items (cart_id, product_id, quantity, unit_price, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRow(ctx, query,
		item.CartID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal, now, now,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *CartRepository) UpdateLineItem(ctx context.Context, item *models.LineItem) error {
	query := `UPDATE line_items SET quantity = $1, subtotal = $2, updated_at = $3 WHERE id = $4`
	item.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, query, item.Quantity, item.Subtotal, item.UpdatedAt, item.ID)
	return err
}

func (r *CartRepository) DeleteLineItem(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM line_items WHERE id = $1`, id)
	return err
}
