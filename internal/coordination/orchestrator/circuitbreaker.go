// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig holds the store-call breaker's tunables.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultCircuitBreakerConfig returns production defaults for the
// datastore breaker: five consecutive I/O failures trips it open for
// ten seconds.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// NewStoreBreaker wraps datastore calls so that repeated Badger I/O
// errors trip the breaker instead of every handler blocking on a
// degraded store.
func NewStoreBreaker(cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
	}
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}
