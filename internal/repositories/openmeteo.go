package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-display/internal/observability"
	"weather-display/pkg/observe"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	// ForecastDays is the fixed forecast span requested from the provider.
	ForecastDays = 7

	currentFields = "temperature_2m,relative_humidity_2m,is_day,weather_code,wind_speed_10m"
	dailyFields   = "weather_code,temperature_2m_max,precipitation_probability_max,wind_speed_10m_max"
)

type OpenMeteoRepository struct {
	baseURL    string
	httpClient HTTPClient
	metrics    *observability.Metrics
	l          *observe.Logger
}

func NewOpenMeteoRepository(baseURL string, l *observe.Logger, httpClient HTTPClient, metrics *observability.Metrics) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	return &OpenMeteoRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    metrics,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

// OpenMeteoResponse is the subset of the forecast payload the normalizer
// consumes. Current and Daily are nil when the provider omitted them.
type OpenMeteoResponse struct {
	Timezone         string            `json:"timezone"`
	UTCOffsetSeconds int               `json:"utc_offset_seconds"`
	Current          *OpenMeteoCurrent `json:"current"`
	Daily            *OpenMeteoDaily   `json:"daily"`
}

type OpenMeteoCurrent struct {
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
	IsDay              int     `json:"is_day"`
	WeatherCode        int     `json:"weather_code"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
}

// OpenMeteoDaily holds parallel arrays indexed by day offset.
type OpenMeteoDaily struct {
	Time                        []string   `json:"time"`
	WeatherCode                 []int      `json:"weather_code"`
	Temperature2mMax            []float64  `json:"temperature_2m_max"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WindSpeed10mMax             []float64  `json:"wind_speed_10m_max"`
}

// Location returns the zone the daily dates are expressed in.
func (r *OpenMeteoResponse) Location() *time.Location {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone(r.Timezone, r.UTCOffsetSeconds)
}

func (o *OpenMeteoRepository) buildURL(lat, lon float64) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("current", currentFields)
	values.Set("daily", dailyFields)
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(ForecastDays))

	return fmt.Sprintf("%s?%s", o.baseURL, values.Encode())
}

func (o *OpenMeteoRepository) FetchForecast(ctx context.Context, lat, lon float64) (*OpenMeteoResponse, error) {
	o.l.Info("making openmeteo API request", map[string]any{
		"lat": lat,
		"lon": lon,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.buildURL(lat, lon), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	if o.metrics != nil {
		o.metrics.UpstreamDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response OpenMeteoResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := ValidateForecast(&response); err != nil {
		return nil, err
	}

	o.l.Debug("parsed API response", map[string]any{
		"days":     len(response.Daily.Time),
		"timezone": response.Timezone,
	})

	return &response, nil
}

// ValidateForecast checks that both sections are present and the daily
// arrays cover every day listed in daily.time.
func ValidateForecast(r *OpenMeteoResponse) error {
	if r.Current == nil {
		return fmt.Errorf("%w: missing current", ErrMalformedPayload)
	}
	if r.Daily == nil {
		return fmt.Errorf("%w: missing daily", ErrMalformedPayload)
	}

	d := r.Daily
	if len(d.Time) == 0 {
		return fmt.Errorf("%w: no forecast days", ErrMalformedPayload)
	}

	days := len(d.Time)
	if len(d.WeatherCode) < days || len(d.Temperature2mMax) < days ||
		len(d.PrecipitationProbabilityMax) < days || len(d.WindSpeed10mMax) < days {
		return fmt.Errorf("%w: daily arrays shorter than %d days", ErrMalformedPayload, days)
	}

	return nil
}
