package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/naresh-2026/warehouseProducts/internal/models"
)

// Fetcher retrieves inventory listings for an owner.
type Fetcher interface {
	ListRecent(ctx context.Context, owner string) ([]models.Product, error)
	ListAll(ctx context.Context, owner string) ([]models.Product, error)
}

// HTTPFetcher is a Fetcher backed by the inventory HTTP API.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the API at baseURL.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListRecent fetches the owner's newest records, capped server-side.
func (f *HTTPFetcher) ListRecent(ctx context.Context, owner string) ([]models.Product, error) {
	return f.get(ctx, "/api/products/recent/"+url.PathEscape(owner))
}

// ListAll fetches the owner's full inventory.
func (f *HTTPFetcher) ListAll(ctx context.Context, owner string) ([]models.Product, error) {
	return f.get(ctx, "/api/products/all/"+url.PathEscape(owner))
}

func (f *HTTPFetcher) get(ctx context.Context, path string) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Message != "" {
			return nil, fmt.Errorf("fetch failed: %s", body.Message)
		}
		return nil, fmt.Errorf("fetch failed with status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	return products, nil
}
