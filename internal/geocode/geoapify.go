package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GeoapifyClient resolves place names against the Geoapify forward-geocoding
// API. Every Resolve issues a fresh lookup; results are not cached and
// failed lookups are not retried.
type GeoapifyClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

const defaultResolveTimeout = 10 * time.Second

// NewGeoapify builds a client for the given endpoint. baseURL is the scheme
// and host only (e.g. https://api.geoapify.com).
func NewGeoapify(baseURL, apiKey string) (*GeoapifyClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	return &GeoapifyClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultResolveTimeout},
	}, nil
}

func (c *GeoapifyClient) Resolve(ctx context.Context, place string) (Coordinates, error) {
	q := url.Values{}
	q.Set("text", place)
	q.Set("apiKey", c.apiKey)
	q.Set("limit", "1")
	endpoint := c.baseURL + "/v1/geocode/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, &ServiceError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Coordinates{}, &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, &ServiceError{Status: resp.StatusCode, Err: fmt.Errorf("geoapify: unexpected status %d", resp.StatusCode)}
	}

	var body struct {
		Features []struct {
			Geometry struct {
				// GeoJSON order: [longitude, latitude]
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, &ServiceError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(body.Features) == 0 {
		return Coordinates{}, fmt.Errorf("%w for %q", ErrNoMatch, place)
	}
	coords := body.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return Coordinates{}, &ServiceError{Err: fmt.Errorf("malformed geometry for %q", place)}
	}
	return Coordinates{Longitude: coords[0], Latitude: coords[1]}, nil
}
