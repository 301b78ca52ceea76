package metalprice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrUnsuccessful is returned when the API answers 200 with success=false.
	ErrUnsuccessful = errors.New("metalprice: request unsuccessful")
	// ErrRateMissing is returned when the requested symbol is absent or zero.
	ErrRateMissing = errors.New("metalprice: rate missing")
)

type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetLatest fetches the latest rates of the given symbols against base.
func (c *RESTClient) GetLatest(ctx context.Context, base Symbol, symbols ...Symbol) (*LatestResponse, error) {
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, string(s))
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("base", string(base))
	q.Set("currencies", strings.Join(codes, ","))
	endpoint := c.baseURL + latestPath + "?" + q.Encode()

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	// the quote must be live, never served from an intermediary cache
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("metalprice error: status %d: %s", resp.StatusCode, body)
	}

	var latest LatestResponse
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if latest.Failed() {
		if latest.Error != nil {
			return &latest, fmt.Errorf("%w: %s", ErrUnsuccessful, latest.Error.Message)
		}
		return &latest, ErrUnsuccessful
	}

	return &latest, nil
}

// GetRate returns the single rate of symbol against base.
// A missing or zero rate is an error, the same as a transport failure.
func (c *RESTClient) GetRate(ctx context.Context, base, symbol Symbol) (float64, error) {
	latest, err := c.GetLatest(ctx, base, symbol)
	if err != nil {
		return 0, err
	}

	rate, ok := latest.Rates[string(symbol)]
	if !ok || rate == 0 {
		return 0, fmt.Errorf("%w: %s", ErrRateMissing, symbol)
	}

	return rate, nil
}
