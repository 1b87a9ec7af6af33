package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"freightline/internal/domain"
)

// StatusError is a non-2xx reply from the routing service.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("routing service: status %d", e.Code)
}

// HTTPGateway fetches road mileage between two addresses from the
// dispatch routing service.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a routing gateway. Returns nil when no base URL
// is configured so callers can fall back to the built-in distance proxy.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type milesResponse struct {
	Miles float64 `json:"miles"`
}

// RoadMiles asks the routing service for driving miles between pickup
// and destination.
func (g *HTTPGateway) RoadMiles(ctx context.Context, pickup, destination domain.Address) (float64, error) {
	q := url.Values{}
	q.Set("from_city", pickup.City)
	q.Set("from_state", pickup.State)
	q.Set("from_zip", pickup.Zip)
	q.Set("to_city", destination.City)
	q.Set("to_state", destination.State)
	q.Set("to_zip", destination.Zip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/miles?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("routing gateway: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("routing gateway: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, StatusError{Code: resp.StatusCode}
	}

	var body milesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("routing gateway: decode response: %w", err)
	}
	if body.Miles < 0 {
		return 0, fmt.Errorf("routing gateway: negative miles %v", body.Miles)
	}
	return body.Miles, nil
}
