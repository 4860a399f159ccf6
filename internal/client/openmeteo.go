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

// OpenMeteoHourly mirrors the hourly block of the forecast response:
// parallel arrays indexed by hour.
type OpenMeteoHourly struct {
	Time             []string   `json:"time"`
	Temperature2M    []*float64 `json:"temperature_2m"`
	RelativeHumidity []*float64 `json:"relative_humidity_2m"`
	Precipitation    []*float64 `json:"precipitation"`
	ShortwaveRad     []*float64 `json:"shortwave_radiation"`
}

type OpenMeteoResponse struct {
	Timezone string          `json:"timezone"`
	Hourly   OpenMeteoHourly `json:"hourly"`
}

// HourlyWeather is one hour of forecast, already unpacked from the
// parallel arrays. Nil fields mean the provider sent null for that hour.
type HourlyWeather struct {
	Time           time.Time
	Temperature    *float64
	Humidity       *float64
	Precipitation  *float64
	SolarRadiation *float64
}

type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenMeteoClient(cfg *config.Config) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: cfg.ExternalServices.OpenMeteoURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchDay retrieves today's hourly forecast for a coordinate. The
// provider resolves the local timezone of the point, so the returned
// hours cover the plot's local calendar day.
func (c *OpenMeteoClient) FetchDay(ctx context.Context, lat, lon float64) ([]HourlyWeather, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("open-meteo URL is not configured")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid open-meteo URL: %w", err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("hourly", "temperature_2m,relative_humidity_2m,precipitation,shortwave_radiation")
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var response OpenMeteoResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse open-meteo response: %w", err)
	}
	return unpackHourly(response.Hourly)
}

func (c *OpenMeteoClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	var resp *http.Response
	var lastErr error
	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, lastErr)
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// unpackHourly turns the parallel arrays into per-hour records. Hours
// whose timestamp fails to parse are skipped; value arrays shorter than
// the time axis yield nil readings for the missing tail.
func unpackHourly(h OpenMeteoHourly) ([]HourlyWeather, error) {
	out := make([]HourlyWeather, 0, len(h.Time))
	for i, raw := range h.Time {
		ts, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			continue
		}
		out = append(out, HourlyWeather{
			Time:           ts,
			Temperature:    at(h.Temperature2M, i),
			Humidity:       at(h.RelativeHumidity, i),
			Precipitation:  at(h.Precipitation, i),
			SolarRadiation: at(h.ShortwaveRad, i),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("open-meteo response contained no hourly data")
	}
	return out, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
