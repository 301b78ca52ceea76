package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"goldsite/internal/price"
)

// ErrBadStatus is returned by a Source whose endpoint answered with a non-OK
// status. The poller repeats its current quote instead of perturbing it.
var ErrBadStatus = errors.New("poller: price endpoint returned non-OK status")

// Source supplies quotes to a poller.
type Source interface {
	Fetch(ctx context.Context) (price.Quote, error)
}

// QuoteFetcher is satisfied by *price.Fetcher.
type QuoteFetcher interface {
	Fetch(ctx context.Context) price.Quote
}

// FetcherSource polls an in-process fetcher. It never fails.
type FetcherSource struct {
	Fetcher QuoteFetcher
}

func (s FetcherSource) Fetch(ctx context.Context) (price.Quote, error) {
	return s.Fetcher.Fetch(ctx), nil
}

// HTTPSource polls GET /api/gold of a running server.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (price.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/gold", nil)
	if err != nil {
		return price.Quote{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return price.Quote{}, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return price.Quote{}, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var q price.Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return price.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	return q, nil
}
