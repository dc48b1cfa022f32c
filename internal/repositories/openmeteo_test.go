package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-display/internal/observability"
	"weather-display/pkg/observe"
)

const forecastFixture = `{
  "latitude": 50.45, "longitude": 30.52,
  "timezone": "Europe/Kyiv", "utc_offset_seconds": 10800,
  "current": {"temperature_2m": 19.6, "relative_humidity_2m": 65, "is_day": 1, "weather_code": 61, "wind_speed_10m": 4.4},
  "daily": {
    "time": ["2025-07-25","2025-07-26","2025-07-27","2025-07-28","2025-07-29","2025-07-30","2025-07-31"],
    "weather_code": [0, 3, 61, 71, 95, 45, 100],
    "temperature_2m_max": [25.5, 26.4, 24.1, 23.0, 22.5, 21.49, 20.5],
    "precipitation_probability_max": [0, 10, 80, 60, 90, null, 5],
    "wind_speed_10m_max": [10.2, 12.7, 8.5, 7.0, 15.5, 3.3, 4.9]
  }
}`

func newTestOpenMeteo(baseURL string) *OpenMeteoRepository {
	return NewOpenMeteoRepository(baseURL, observe.NewZapLogger("test-app"), &http.Client{Timeout: 5 * time.Second}, observability.NewMetricsForTesting())
}

func TestOpenMeteoRepository_Name(t *testing.T) {
	repo := &OpenMeteoRepository{}
	assert.Equal(t, "open-meteo", repo.Name())
}

func TestOpenMeteoRepository_FetchForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "50.45", q.Get("latitude"))
		assert.Equal(t, "30.52", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,relative_humidity_2m,is_day,weather_code,wind_speed_10m", q.Get("current"))
		assert.Equal(t, "weather_code,temperature_2m_max,precipitation_probability_max,wind_speed_10m_max", q.Get("daily"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Equal(t, "7", q.Get("forecast_days"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	resp, err := newTestOpenMeteo(srv.URL).FetchForecast(context.Background(), 50.45, 30.52)
	require.NoError(t, err)
	require.NotNil(t, resp.Current)
	require.NotNil(t, resp.Daily)

	assert.Equal(t, 19.6, resp.Current.Temperature2m)
	assert.Equal(t, 61, resp.Current.WeatherCode)
	assert.Equal(t, 1, resp.Current.IsDay)
	assert.Len(t, resp.Daily.Time, 7)
	assert.Nil(t, resp.Daily.PrecipitationProbabilityMax[5])
	assert.Equal(t, 10800, resp.UTCOffsetSeconds)
}

func TestOpenMeteoRepository_FetchForecast_MissingDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current": {"temperature_2m": 10}}`))
	}))
	defer srv.Close()

	_, err := newTestOpenMeteo(srv.URL).FetchForecast(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}

func TestOpenMeteoRepository_FetchForecast_ShortDailyArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current": {}, "daily": {"time": ["2025-07-25","2025-07-26"], "weather_code": [0], "temperature_2m_max": [1,2], "precipitation_probability_max": [1,2], "wind_speed_10m_max": [1,2]}}`))
	}))
	defer srv.Close()

	_, err := newTestOpenMeteo(srv.URL).FetchForecast(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestOpenMeteoRepository_FetchForecast_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": true, "reason": "Latitude must be in range of -90 to 90°"}`))
	}))
	defer srv.Close()

	_, err := newTestOpenMeteo(srv.URL).FetchForecast(context.Background(), 999, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestOpenMeteoRepository_FetchForecast_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer srv.Close()

	_, err := newTestOpenMeteo(srv.URL).FetchForecast(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestOpenMeteoRepository_FetchForecast_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOpenMeteo(srv.URL).FetchForecast(ctx, 1, 2)
	assert.Error(t, err)
}

func TestOpenMeteoResponse_Location(t *testing.T) {
	resp := &OpenMeteoResponse{Timezone: "Not/AZone", UTCOffsetSeconds: 7200}
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, resp.Location()).Zone()
	assert.Equal(t, 7200, offset)
}
