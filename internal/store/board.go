package store

import (
	"errors"
	"sync"
	"time"

	"weather-display/internal/models"
)

// ErrStale is returned by Apply when a newer request has already been applied.
var ErrStale = errors.New("stale weather response")

// Ticket identifies one fetch issued against the board.
type Ticket uint64

// Entry is what the board currently shows.
type Entry struct {
	Location  models.City          `json:"location"`
	Report    models.WeatherReport `json:"report"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Board holds the report currently on display. Responses are applied in
// request order: a response whose ticket is older than the last applied one
// is dropped, so the latest-issued request wins regardless of which
// response resolves last.
type Board struct {
	mu      sync.RWMutex
	next    Ticket
	applied Ticket
	entry   Entry
	now     func() time.Time
}

// NewBoard creates a board showing initial until the first Apply.
func NewBoard(initial Entry) *Board {
	return &Board{
		entry: initial,
		now:   time.Now,
	}
}

// Begin issues a ticket for a request about to be made.
func (b *Board) Begin() Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	return b.next
}

// Apply replaces the displayed entry wholesale.
func (b *Board) Apply(t Ticket, location models.City, report models.WeatherReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t <= b.applied {
		return ErrStale
	}

	b.applied = t
	b.entry = Entry{
		Location:  location,
		Report:    report,
		UpdatedAt: b.now(),
	}
	return nil
}

// Current returns a copy of the displayed entry.
func (b *Board) Current() Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry := b.entry
	entry.Report.Forecast = append([]models.ForecastDay(nil), b.entry.Report.Forecast...)
	return entry
}
