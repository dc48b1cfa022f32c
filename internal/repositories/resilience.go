package repositories

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var errServerError = errors.New("server error")

// ResilientClient rate-limits outbound requests and trips a circuit breaker
// on repeated transport or 5xx failures. It never retries: a failed request
// is reported to the caller as is.
type ResilientClient struct {
	inner   HTTPClient
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
}

// NewResilientClient wraps inner. rps may be fractional.
func NewResilientClient(inner HTTPClient, rps float64, burst int) *ResilientClient {
	return &ResilientClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "open-meteo",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (c *ResilientClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.inner.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s", errServerError, resp.Status)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// State exposes the breaker state for diagnostics.
func (c *ResilientClient) State() gobreaker.State {
	return c.circuit.State()
}
