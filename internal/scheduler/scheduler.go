package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"weather-display/internal/models"
	"weather-display/internal/store"
	"weather-display/pkg/observe"
)

const (
	defaultInterval = 15 * time.Minute
	jobTimeout      = 30 * time.Second
)

// Refresher is the part of the weather service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, city models.City) (models.WeatherReport, bool)
	Current() store.Entry
}

// Scheduler keeps the board fresh by re-fetching whatever city it shows.
// The first run happens right after Start.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	fallback  models.City
	interval  time.Duration
	l         *observe.Logger
}

// New creates a Scheduler. fallback is used while the board has no
// location yet.
func New(service Refresher, fallback models.City, interval time.Duration, l *observe.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		fallback:  fallback,
		interval:  interval,
		l:         l,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.l.Info("board refresh scheduled", map[string]any{"interval": s.interval.String()})
	return nil
}

func (s *Scheduler) run() {
	city := s.service.Current().Location
	if city.Lat == 0 && city.Lon == 0 {
		city = s.fallback
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, applied := s.service.Refresh(ctx, city)
	s.l.Debug("board refresh finished", map[string]any{
		"city":     city.Name,
		"applied":  applied,
		"degraded": report.Degraded,
	})
}

// Stop cancels future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
