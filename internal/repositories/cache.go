package repositories

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"weather-display/internal/models"
	"weather-display/internal/observability"
)

// CachedGeocoder wraps a GeocodingRepository with an in-memory LRU cache.
// Only matches are cached so a "not found" can be retried later.
type CachedGeocoder struct {
	inner   GeocodingRepository
	cache   *lru.Cache[string, models.City]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
// maxEntries must be positive.
func NewCachedGeocoder(inner GeocodingRepository, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	cache, err := lru.New[string, models.City](maxEntries)
	if err != nil {
		panic(err)
	}
	return &CachedGeocoder{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

func (c *CachedGeocoder) SearchCity(ctx context.Context, query string) (models.City, bool, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if city, ok := c.cache.Get(key); ok {
		c.observe("hit")
		return city, true, nil
	}
	c.observe("miss")

	city, found, err := c.inner.SearchCity(ctx, query)
	if err != nil || !found {
		return city, found, err
	}

	c.cache.Add(key, city)
	return city, true, nil
}

func (c *CachedGeocoder) observe(result string) {
	if c.metrics != nil {
		c.metrics.GeocodeCache.WithLabelValues(result).Inc()
	}
}
