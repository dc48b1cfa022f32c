package weather

import (
	"context"
	"errors"
	"strings"

	"github.com/jonboulle/clockwork"

	"weather-display/internal/models"
	"weather-display/internal/observability"
	"weather-display/internal/repositories"
	"weather-display/internal/store"
	"weather-display/pkg/observe"
)

// WeatherService normalizes Open-Meteo data and keeps the display board
// current. None of its operations return transport errors: failures
// degrade locally.
type WeatherService struct {
	weather   repositories.WeatherRepository
	geocoding repositories.GeocodingRepository
	board     *store.Board
	clock     clockwork.Clock
	metrics   *observability.Metrics
	l         *observe.Logger
}

type Option func(*WeatherService)

// WithClock replaces the time source used for "today" labels.
func WithClock(c clockwork.Clock) Option {
	return func(s *WeatherService) { s.clock = c }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(s *WeatherService) { s.metrics = m }
}

func NewWeatherService(repos repositories.Repositories, board *store.Board, l *observe.Logger, opts ...Option) *WeatherService {
	s := &WeatherService{
		weather:   repos.Weather,
		geocoding: repos.Geocoding,
		board:     board,
		clock:     clockwork.NewRealClock(),
		metrics:   observability.NewMetricsForTesting(),
		l:         l,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the current snapshot and the 7-day forecast for a location.
// Any failure yields Degraded().
func (s *WeatherService) Fetch(ctx context.Context, lat, lon float64, name string) models.WeatherReport {
	s.l.Debug("fetching weather", map[string]any{"lat": lat, "lon": lon, "city": name})

	resp, err := s.weather.FetchForecast(ctx, lat, lon)
	if err != nil {
		s.l.Warning("weather fetch failed", map[string]any{
			"repo": s.weather.Name(),
			"city": name,
			"err":  err.Error(),
		})
		s.metrics.WeatherFetches.WithLabelValues("degraded").Inc()
		return Degraded()
	}

	report, err := Normalize(resp, name, s.clock.Now())
	if err != nil {
		s.l.Warning("weather payload rejected", map[string]any{
			"city": name,
			"err":  err.Error(),
		})
		s.metrics.WeatherFetches.WithLabelValues("degraded").Inc()
		return Degraded()
	}

	s.metrics.WeatherFetches.WithLabelValues("success").Inc()
	s.l.Info("successfully fetched weather", map[string]any{
		"city":      name,
		"condition": report.Current.Condition.String(),
		"days":      len(report.Forecast),
	})

	return report
}

// SearchCity looks a city up by free text. Lookup failures are reported as
// not found.
func (s *WeatherService) SearchCity(ctx context.Context, query string) (models.City, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.City{}, false
	}

	city, found, err := s.geocoding.SearchCity(ctx, query)
	switch {
	case err != nil:
		s.l.Warning("city search failed", map[string]any{"query": query, "err": err.Error()})
		s.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return models.City{}, false
	case !found:
		s.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return models.City{}, false
	}

	s.metrics.GeocodeRequests.WithLabelValues("found").Inc()
	return city, true
}

// Refresh fetches weather for city and puts it on the board unless a newer
// request has already landed. The returned report is always the one
// fetched; applied tells whether the board shows it.
func (s *WeatherService) Refresh(ctx context.Context, city models.City) (report models.WeatherReport, applied bool) {
	ticket := s.board.Begin()
	report = s.Fetch(ctx, city.Lat, city.Lon, city.Name)

	if err := s.board.Apply(ticket, city, report); err != nil {
		if errors.Is(err, store.ErrStale) {
			s.metrics.StaleResponses.Inc()
			s.l.Debug("dropping stale weather response", map[string]any{"city": city.Name, "ticket": uint64(ticket)})
		}
		return report, false
	}

	return report, true
}

// Search resolves query and refreshes the board with the match. found is
// false, and the board untouched, when no city matches.
func (s *WeatherService) Search(ctx context.Context, query string) (entry store.Entry, found bool) {
	city, found := s.SearchCity(ctx, query)
	if !found {
		return s.board.Current(), false
	}

	report, applied := s.Refresh(ctx, city)
	if !applied {
		return store.Entry{Location: city, Report: report}, true
	}
	return s.board.Current(), true
}

// Current returns what the board displays.
func (s *WeatherService) Current() store.Entry {
	return s.board.Current()
}
