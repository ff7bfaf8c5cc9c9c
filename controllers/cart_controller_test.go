package controllers

import (
	"cart-api/models"
	"cart-api/services"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type memStore struct {
	mu         sync.Mutex
	nextCartID int
	nextItemID int
	carts      map[int]models.Cart
	byCustomer map[int]bool
	items      []models.LineItem
}

func newMemStore() *memStore {
	return &memStore{carts: map[int]models.Cart{}, byCustomer: map[int]bool{}}
}

func (m *memStore) CreateCart(ctx context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byCustomer[cart.CustomerID] {
		return models.ErrCartExists
	}
	m.nextCartID++
	cart.ID = m.nextCartID
	cart.CreatedAt = time.Now()
	m.carts[cart.ID] = *cart
	m.byCustomer[cart.CustomerID] = true
	return nil
}

func (m *memStore) GetCartByID(ctx context.Context, id int) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[id]
	if !ok {
		return nil, nil
	}
	return &cart, nil
}

func (m *memStore) GetLineItems(ctx context.Context, cartID int) ([]models.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []models.LineItem{}
	for _, item := range m.items {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memStore) FindLineItem(ctx context.Context, cartID, productID int) (*models.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) AddLineItem(ctx context.Context, item *models.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextItemID++
	item.ID = m.nextItemID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.items = append(m.items, *item)
	return nil
}

func (m *memStore) UpdateLineItem(ctx context.Context, item *models.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
			return nil
		}
	}
	return nil
}

func (m *memStore) DeleteLineItem(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type catalogFunc func(productID int) (*models.ProductDetails, error)

func (f catalogFunc) FetchProductDetails(ctx context.Context, productID int) (*models.ProductDetails, error) {
	return f(productID)
}

// newTestRouter registers the cart routes the same way routes.SetupRoutes
// does (not imported here to avoid an import cycle).
func newTestRouter(catalog services.Catalog) http.Handler {
	gin.SetMode(gin.TestMode)
	svc := services.NewCartService(newMemStore(), catalog)
	ctrl := NewCartController(svc)

	router := gin.New()
	carts := router.Group("/carts")
	carts.POST("", ctrl.CreateCart)
	carts.GET("/:id", ctrl.GetCart)
	carts.POST("/:id/items", ctrl.AddLineItem)
	carts.GET("/:id/items", ctrl.ListLineItems)
	carts.PATCH("/:id/items", ctrl.UpdateQuantity)
	carts.DELETE("/:id/items/:productId", ctrl.RemoveLineItem)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, models.Response) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.Response
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: bad response body %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, resp
}

func createCart(t *testing.T, router http.Handler, customerID int) int {
	t.Helper()
	body := fmt.Sprintf(`{"customer_id":%d,"purchase_date":"2026-08-28T10:00:00Z","status":"open"}`, customerID)
	w, resp := doJSON(t, router, http.MethodPost, "/carts", body)
	if w.Code != 201 {
		t.Fatalf("create cart: want 201, got %d (%s)", w.Code, w.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	return int(data["id"].(float64))
}

func okCatalog() services.Catalog {
	return catalogFunc(func(productID int) (*models.ProductDetails, error) {
		return &models.ProductDetails{Name: "product", Price: 9.5, Image: "http://img"}, nil
	})
}

func TestCreateCartEndpoint(t *testing.T) {
	router := newTestRouter(okCatalog())

	id := createCart(t, router, 42)
	if id == 0 {
		t.Fatal("expected assigned cart id")
	}

	w, _ := doJSON(t, router, http.MethodPost, "/carts",
		`{"customer_id":42,"purchase_date":"2026-08-28T10:00:00Z","status":"open"}`)
	if w.Code != 409 {
		t.Fatalf("duplicate cart: want 409, got %d", w.Code)
	}
}

func TestCreateCartValidation(t *testing.T) {
	router := newTestRouter(okCatalog())

	tests := []string{
		`{}`,
		`{"customer_id":1}`,
		`{"customer_id":1,"purchase_date":"2026-08-28T10:00:00Z","status":"waaaaaaay too long"}`,
		`not json`,
	}
	for _, body := range tests {
		w, _ := doJSON(t, router, http.MethodPost, "/carts", body)
		if w.Code != 400 {
			t.Fatalf("body %q: want 400, got %d", body, w.Code)
		}
	}
}

func TestGetCartEndpoint(t *testing.T) {
	router := newTestRouter(okCatalog())
	id := createCart(t, router, 42)

	w, resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/carts/%d", id), "")
	if w.Code != 200 {
		t.Fatalf("want 200, got %d", w.Code)
	}
	data := resp.Data.(map[string]interface{})
	if int(data["customer_id"].(float64)) != 42 {
		t.Fatalf("customer_id: got %v", data["customer_id"])
	}

	w, _ = doJSON(t, router, http.MethodGet, "/carts/999", "")
	if w.Code != 404 {
		t.Fatalf("missing cart: want 404, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/carts/abc", "")
	if w.Code != 400 {
		t.Fatalf("bad id: want 400, got %d", w.Code)
	}
}

func TestLineItemFlow(t *testing.T) {
	router := newTestRouter(okCatalog())
	id := createCart(t, router, 42)

	w, resp := doJSON(t, router, http.MethodPost, fmt.Sprintf("/carts/%d/items", id),
		`{"product_id":7,"quantity":2,"unit_price":"10.00"}`)
	if w.Code != 201 {
		t.Fatalf("add item: want 201, got %d (%s)", w.Code, w.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	if data["subtotal"] != "20" && data["subtotal"] != "20.00" {
		t.Fatalf("subtotal: got %v", data["subtotal"])
	}

	w, resp = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/carts/%d/items", id),
		`{"product_id":7,"quantity":5}`)
	if w.Code != 200 {
		t.Fatalf("update quantity: want 200, got %d (%s)", w.Code, w.Body.String())
	}
	data = resp.Data.(map[string]interface{})
	if data["subtotal"] != "50" && data["subtotal"] != "50.00" {
		t.Fatalf("updated subtotal: got %v", data["subtotal"])
	}
	if data["unit_price"] != "10" && data["unit_price"] != "10.00" {
		t.Fatalf("unit price changed: got %v", data["unit_price"])
	}

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/carts/%d/items/7", id), "")
	if w.Code != 200 {
		t.Fatalf("remove item: want 200, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/carts/%d/items/7", id), "")
	if w.Code != 404 {
		t.Fatalf("remove missing item: want 404, got %d", w.Code)
	}
}

func TestAddLineItemToMissingCart(t *testing.T) {
	router := newTestRouter(okCatalog())

	w, _ := doJSON(t, router, http.MethodPost, "/carts/999/items",
		`{"product_id":7,"quantity":1,"unit_price":"1.00"}`)
	if w.Code != 404 {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestListEnrichedEndpointPartialFailure(t *testing.T) {
	router := newTestRouter(catalogFunc(func(productID int) (*models.ProductDetails, error) {
		if productID == 8 {
			return nil, models.ErrCatalogUnavailable
		}
		return &models.ProductDetails{Name: "product", Price: 1, Image: "i"}, nil
	}))
	id := createCart(t, router, 42)

	for _, pid := range []int{7, 8, 9} {
		w, _ := doJSON(t, router, http.MethodPost, fmt.Sprintf("/carts/%d/items", id),
			fmt.Sprintf(`{"product_id":%d,"quantity":1,"unit_price":"1.00"}`, pid))
		if w.Code != 201 {
			t.Fatalf("add item %d: got %d", pid, w.Code)
		}
	}

	w, resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/carts/%d/items", id), "")
	if w.Code != 200 {
		t.Fatalf("want 200, got %d (%s)", w.Code, w.Body.String())
	}

	items := resp.Data.([]interface{})
	if len(items) != 3 {
		t.Fatalf("want 3 items, got %d", len(items))
	}
	for i, raw := range items {
		item := raw.(map[string]interface{})
		pid := int(item["product_id"].(float64))
		if pid != []int{7, 8, 9}[i] {
			t.Fatalf("order broken at %d: got product %d", i, pid)
		}
		if pid == 8 {
			if item["details_error"] != models.ErrCatalogUnavailable.Error() {
				t.Fatalf("product 8: want unavailable marker, got %v", item["details_error"])
			}
		} else if item["details"] == nil {
			t.Fatalf("product %d: details missing", pid)
		}
	}

	w, _ = doJSON(t, router, http.MethodGet, "/carts/999/items", "")
	if w.Code != 404 {
		t.Fatalf("missing cart listing: want 404, got %d", w.Code)
	}
}
