package libs

import (
	"cart-api/models"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchProductDetailsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"title":"Fjallraven Backpack","price":109.95,"image":"https://img.example/7.jpg","category":"bags"}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, 2*time.Second, nil, 0)

	details, err := client.FetchProductDetails(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchProductDetails: %v", err)
	}
	if details.Name != "Fjallraven Backpack" {
		t.Fatalf("name: got %q", details.Name)
	}
	if details.Price != 109.95 {
		t.Fatalf("price: got %v", details.Price)
	}
	if details.Image != "https://img.example/7.jpg" {
		t.Fatalf("image: got %q", details.Image)
	}
}

func TestFetchProductDetailsNonOKStatus(t *testing.T) {
	for _, status := range []int{400, 404, 500, 503} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewCatalogClient(server.URL, 2*time.Second, nil, 0)
		_, err := client.FetchProductDetails(context.Background(), 1)
		server.Close()

		if !errors.Is(err, models.ErrProductNotFound) {
			t.Fatalf("status %d: want ErrProductNotFound, got %v", status, err)
		}
	}
}

func TestFetchProductDetailsConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewCatalogClient(server.URL, 2*time.Second, nil, 0)

	_, err := client.FetchProductDetails(context.Background(), 1)
	if !errors.Is(err, models.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestFetchProductDetailsTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewCatalogClient(server.URL, 50*time.Millisecond, nil, 0)

	start := time.Now()
	_, err := client.FetchProductDetails(context.Background(), 1)
	if !errors.Is(err, models.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestFetchProductDetailsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "broken`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, 2*time.Second, nil, 0)

	_, err := client.FetchProductDetails(context.Background(), 1)
	if !errors.Is(err, models.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
}

func TestFetchProductDetailsWithoutCacheClient(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"title":"t","price":1,"image":"i"}`))
	}))
	defer server.Close()

	// nil cache means every lookup hits the catalog.
	client := NewCatalogClient(server.URL, 2*time.Second, nil, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := client.FetchProductDetails(context.Background(), 1); err != nil {
			t.Fatalf("FetchProductDetails: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("want 3 upstream calls, got %d", calls)
	}
}
