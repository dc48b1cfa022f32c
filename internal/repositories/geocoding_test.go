package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-display/internal/models"
	"weather-display/internal/observability"
	"weather-display/pkg/observe"
)

func newTestGeocoder(baseURL string) *GeocodingRepositoryImpl {
	return NewGeocodingRepository(baseURL, observe.NewZapLogger("test-app"), &http.Client{Timeout: 5 * time.Second}, observability.NewMetricsForTesting())
}

func TestGeocodingRepository_SearchCity_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Львів", q.Get("name"))
		assert.Equal(t, "1", q.Get("count"))
		assert.Equal(t, "uk", q.Get("language"))
		assert.Equal(t, "json", q.Get("format"))

		_, _ = w.Write([]byte(`{"results":[{"id":702550,"name":"Львів","latitude":49.83826,"longitude":24.02324,"country":"Україна"}]}`))
	}))
	defer srv.Close()

	city, found, err := newTestGeocoder(srv.URL).SearchCity(context.Background(), "Львів")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.City{Name: "Львів", Lat: 49.83826, Lon: 24.02324}, city)
}

func TestGeocodingRepository_SearchCity_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	_, found, err := newTestGeocoder(srv.URL).SearchCity(context.Background(), "Атлантида")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGeocodingRepository_SearchCity_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, found, err := newTestGeocoder(srv.URL).SearchCity(context.Background(), "Київ")
	assert.Error(t, err)
	assert.False(t, found)
}

type countingGeocoder struct {
	calls atomic.Int32
	city  models.City
	found bool
	err   error
}

func (g *countingGeocoder) SearchCity(ctx context.Context, query string) (models.City, bool, error) {
	g.calls.Add(1)
	return g.city, g.found, g.err
}

func TestCachedGeocoder_CachesMatchesOnly(t *testing.T) {
	inner := &countingGeocoder{city: models.City{Name: "Одеса", Lat: 46.48, Lon: 30.73}, found: true}
	cached := NewCachedGeocoder(inner, 8, observability.NewMetricsForTesting())

	for _, q := range []string{"Одеса", " одеса ", "ОДЕСА"} {
		city, found, err := cached.SearchCity(context.Background(), q)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Одеса", city.Name)
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	missing := &countingGeocoder{}
	cachedMissing := NewCachedGeocoder(missing, 8, nil)
	for i := 0; i < 2; i++ {
		_, found, err := cachedMissing.SearchCity(context.Background(), "nowhere")
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.Equal(t, int32(2), missing.calls.Load())

	failing := &countingGeocoder{err: errors.New("down")}
	_, _, err := NewCachedGeocoder(failing, 8, nil).SearchCity(context.Background(), "x")
	assert.Error(t, err)
}

func TestResilientClient_OpensCircuitAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewResilientClient(&http.Client{Timeout: time.Second}, 1000, 100)

	for i := 0; i < 5; i++ {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		_, err = client.Do(req)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	_, err = client.Do(req)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), hits.Load())
}

func TestResilientClient_PassesClientErrorsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewResilientClient(&http.Client{Timeout: time.Second}, 1000, 100)
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, client.State())
}
