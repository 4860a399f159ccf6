package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"airvana/internal/config"
)

// userAgent identifies the app to the geocoding service, as its usage
// policy requires.
const userAgent = "airvana/1.0"

type GeocodeResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimClient(cfg *config.Config) *NominatimClient {
	return &NominatimClient{
		baseURL: cfg.ExternalServices.NominatimURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search performs a free-text forward geocode, capped at 5 candidates.
func (c *NominatimClient) Search(ctx context.Context, query string) ([]GeocodeResult, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("invalid nominatim URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var results []GeocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse nominatim response: %w", err)
	}
	return results, nil
}

// Reverse resolves a coordinate to a place description.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (*GeocodeResult, error) {
	u, err := url.Parse(c.baseURL + "/reverse")
	if err != nil {
		return nil, fmt.Errorf("invalid nominatim URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var result GeocodeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse nominatim response: %w", err)
	}
	return &result, nil
}

func (c *NominatimClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
