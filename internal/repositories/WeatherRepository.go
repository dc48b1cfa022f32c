package repositories

import (
	"context"
	"errors"
	"net/http"
	"time"

	"weather-display/config"
	"weather-display/internal/models"
	"weather-display/internal/observability"
	"weather-display/pkg/observe"
)

// ErrMalformedPayload marks a 200 response that lacks the expected sections.
var ErrMalformedPayload = errors.New("malformed payload")

// HTTPClient is the subset of *http.Client the repositories need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches raw current conditions and the daily forecast
// for a coordinate pair.
type WeatherRepository interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64) (*OpenMeteoResponse, error)
}

// GeocodingRepository resolves a free-text query to at most one city.
// found is false when the provider has no match.
type GeocodingRepository interface {
	SearchCity(ctx context.Context, query string) (city models.City, found bool, err error)
}

// Repositories bundles the upstream clients built from config.
type Repositories struct {
	Weather   WeatherRepository
	Geocoding GeocodingRepository
}

func InitRepositories(cfg *config.Config, l *observe.Logger, metrics *observability.Metrics) Repositories {
	client := NewResilientClient(
		&http.Client{Timeout: time.Duration(cfg.Weather.Timeout) * time.Second},
		cfg.Weather.RatePerSecond,
		cfg.Weather.Burst,
	)

	var geocoder GeocodingRepository = NewGeocodingRepository(cfg.Weather.GeocodingURL, l, client, metrics)
	if cfg.Weather.GeocodeCache > 0 {
		geocoder = NewCachedGeocoder(geocoder, cfg.Weather.GeocodeCache, metrics)
	}

	return Repositories{
		Weather:   NewOpenMeteoRepository(cfg.Weather.ForecastURL, l, client, metrics),
		Geocoding: geocoder,
	}
}
