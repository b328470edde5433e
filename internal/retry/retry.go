// internal/retry/retry.go
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Config defines the fixed-delay retry behavior for page fetches
type Config struct {
	MaxRetries int           // Retries after the first attempt
	Delay      time.Duration // Fixed pause between attempts
}

// DefaultConfig returns the enrichment engine's retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		Delay:      2 * time.Second,
	}
}

// WithRetry executes the given function up to cfg.MaxRetries+1 times,
// pausing cfg.Delay between attempts. Every failure is treated as
// transient: timeouts, network errors, and non-2xx statuses all retry.
func WithRetry(ctx context.Context, cfg Config, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	attempts := cfg.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		err := fn()

		// Success
		if err == nil {
			if attempt > 0 {
				log.Debug().
					Int("attempts", attempt+1).
					Msg("Retry succeeded")
			}
			return nil
		}

		lastErr = err

		// Don't sleep after the last attempt
		if attempt < attempts-1 {
			log.Debug().
				Int("attempt", attempt+1).
				Int("max_attempts", attempts).
				Dur("delay", cfg.Delay).
				Err(err).
				Msg("Retrying after delay")

			// Wait for the fixed delay or context cancellation
			select {
			case <-time.After(cfg.Delay):
				// Continue to next attempt
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	log.Warn().
		Int("attempts", attempts).
		Err(lastErr).
		Msg("Max retry attempts exceeded")

	return fmt.Errorf("operation failed after %d attempts: %w", attempts, lastErr)
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

// StatusCoder is an interface for errors that provide an HTTP status code
type StatusCoder interface {
	GetStatusCode() int
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

func (e HTTPError) GetStatusCode() int {
	return e.StatusCode
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, status string, message string) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
	}
}
