package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"weather-display/internal/observability"
	"weather-display/internal/settings"
	"weather-display/pkg/observe"
)

var ErrEmptyMessage = errors.New("notification message is empty")

// Console groups the admin operations.
type Console struct {
	users     *Directory
	publisher Publisher
	flags     *settings.Flags
	clock     clockwork.Clock
	metrics   *observability.Metrics
	l         *observe.Logger
}

type Option func(*Console)

func WithClock(c clockwork.Clock) Option {
	return func(s *Console) { s.clock = c }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(s *Console) { s.metrics = m }
}

func NewConsole(users *Directory, publisher Publisher, flags *settings.Flags, l *observe.Logger, opts ...Option) *Console {
	c := &Console{
		users:     users,
		publisher: publisher,
		flags:     flags,
		clock:     clockwork.NewRealClock(),
		metrics:   observability.NewMetricsForTesting(),
		l:         l,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Users(term string) []User {
	return c.users.Search(term)
}

func (c *Console) ToggleBlock(id int) (User, error) {
	u, err := c.users.ToggleBlock(id)
	if err != nil {
		return User{}, err
	}

	c.l.Info("user status changed", map[string]any{"user_id": u.ID, "status": string(u.Status)})
	return u, nil
}

// Broadcast sends message to every user in the directory.
func (c *Console) Broadcast(ctx context.Context, message string) (Notification, error) {
	if strings.TrimSpace(message) == "" {
		return Notification{}, ErrEmptyMessage
	}

	n := Notification{
		ID:         uuid.NewString(),
		Message:    message,
		Recipients: c.users.Len(),
		SentAt:     c.clock.Now(),
	}

	if err := c.publisher.Publish(ctx, n); err != nil {
		c.l.Error(err, map[string]any{"notification_id": n.ID})
		return Notification{}, err
	}

	c.metrics.NotificationsSent.Inc()
	return n, nil
}

func (c *Console) LightPageBlocked(ctx context.Context) (bool, error) {
	return c.flags.LightPageBlocked(ctx)
}

func (c *Console) SetLightPageBlocked(ctx context.Context, blocked bool) error {
	if err := c.flags.SetLightPageBlocked(ctx, blocked); err != nil {
		return err
	}

	c.l.Info("light page access changed", map[string]any{"blocked": blocked})
	return nil
}
