// internal/common/database/health.go
package database

import (
	"context"
	"fmt"
	"time"
)

// Pinger is any backend that can report its reachability.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Checker pings every configured backend for the readiness endpoint.
type Checker struct {
	backends []Pinger
	timeout  time.Duration
}

func NewChecker(timeout time.Duration, backends ...Pinger) *Checker {
	return &Checker{backends: backends, timeout: timeout}
}

// Check returns the status of every backend and the first failure.
func (c *Checker) Check(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := make(map[string]string, len(c.backends))
	var firstErr error
	for _, b := range c.backends {
		if err := b.Ping(ctx); err != nil {
			status[b.Name()] = err.Error()
			if firstErr == nil {
				firstErr = fmt.Errorf("%s not ready: %w", b.Name(), err)
			}
			continue
		}
		status[b.Name()] = "ok"
	}
	return status, firstErr
}
