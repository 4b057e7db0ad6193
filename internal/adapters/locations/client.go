// Package locations fetches the static points-of-interest dataset published
// alongside the site assets.
package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"serraturismo/internal/domain"
)

type httpFetcher struct {
	client *http.Client
	url    string

	mu     sync.Mutex
	loaded bool
	cached []domain.Location
}

// NewHTTPFetcher returns a LocationFetcher that downloads the dataset once
// and serves it from memory afterwards. A failed fetch is retried on the
// next call.
func NewHTTPFetcher(client *http.Client, url string) domain.LocationFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client, url: url}
}

func (f *httpFetcher) Fetch(ctx context.Context) ([]domain.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return f.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("locations dataset returned status: %d", resp.StatusCode)
	}

	var data []domain.Location
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode locations dataset: %w", err)
	}
	f.cached = data
	f.loaded = true
	return f.cached, nil
}
