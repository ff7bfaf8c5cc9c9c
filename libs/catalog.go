package libs

import (
	"cart-api/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// catalogProduct is the remote catalog's wire format.
type catalogProduct struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CatalogClient fetches product metadata from the remote catalog
// service. One GET per call, no retries, bounded by the client timeout.
// Successful lookups are cached in redis when a client is configured;
// the cache is best-effort and never changes a lookup's outcome.
type CatalogClient struct {
	baseURL string
	client  *http.Client
	cache   *redis.Client
	ttl     time.Duration
}

func NewCatalogClient(baseURL string, timeout time.Duration, cache *redis.Client, ttl time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
		ttl:     ttl,
	}
}

// FetchProductDetails classifies the lookup into exactly one of:
// details, models.ErrProductNotFound (catalog answered, no product) or
// models.ErrCatalogUnavailable (no usable answer at all). Callers rely
// on the two failure kinds staying distinguishable.
func (c *CatalogClient) FetchProductDetails(ctx context.Context, productID int) (*models.ProductDetails, error) {
	if details := c.cacheGet(ctx, productID); details != nil {
		return details, nil
	}

	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.ErrProductNotFound
	}

	var product catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}

	details := &models.ProductDetails{
		Name:  product.Title,
		Price: product.Price,
		Image: product.Image,
	}
	c.cacheSet(ctx, productID, details)
	return details, nil
}

func (c *CatalogClient) cacheKey(productID int) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

func (c *CatalogClient) cacheGet(ctx context.Context, productID int) *models.ProductDetails {
	if c.cache == nil {
		return nil
	}
	payload, err := c.cache.Get(ctx, c.cacheKey(productID)).Bytes()
	if err != nil {
		return nil
	}
	var details models.ProductDetails
	if err := json.Unmarshal(payload, &details); err != nil {
		return nil
	}
	return &details
}

func (c *CatalogClient) cacheSet(ctx context.Context, productID int, details *models.ProductDetails) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cacheKey(productID), payload, c.ttl).Err(); err != nil {
		log.Println("Catalog cache write failed:", err)
	}
}
