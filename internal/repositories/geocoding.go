package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weather-display/internal/models"
	"weather-display/internal/observability"
	"weather-display/pkg/observe"
)

const OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

type GeocodingRepositoryImpl struct {
	baseURL    string
	httpClient HTTPClient
	metrics    *observability.Metrics
	l          *observe.Logger
}

func NewGeocodingRepository(baseURL string, l *observe.Logger, httpClient HTTPClient, metrics *observability.Metrics) *GeocodingRepositoryImpl {
	if baseURL == "" {
		baseURL = OpenMeteoGeocodingURL
	}
	return &GeocodingRepositoryImpl{
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    metrics,
		l:          l,
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

func (g *GeocodingRepositoryImpl) SearchCity(ctx context.Context, query string) (models.City, bool, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "1")
	values.Set("language", "uk")
	values.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return models.City{}, false, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if g.metrics != nil {
		g.metrics.UpstreamDuration.WithLabelValues("geocoding").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return models.City{}, false, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.City{}, false, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.City{}, false, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(payload.Results) == 0 {
		g.l.Debug("geocoding returned no results", map[string]any{"query": query})
		return models.City{}, false, nil
	}

	first := payload.Results[0]
	return models.City{
		Name: first.Name,
		Lat:  first.Latitude,
		Lon:  first.Longitude,
	}, true, nil
}
