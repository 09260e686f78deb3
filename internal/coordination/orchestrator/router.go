// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coordination-detector/internal/cache"
	"github.com/tomtom215/coordination-detector/internal/coordination/store"
	"github.com/tomtom215/coordination-detector/internal/metrics"
	"github.com/tomtom215/coordination-detector/internal/middleware"
)

// perfMonitorCapacity bounds the in-memory sliding window of per-request
// latency samples the performance middleware keeps for /debug/performance.
const perfMonitorCapacity = 1000

// readCacheTTL bounds how long a storeGet result is served out of the
// in-process read cache before falling back to the datastore again. Job
// records are polled frequently by clients waiting on a result, so a
// short TTL absorbs that polling without masking a real status change
// for long.
const readCacheTTL = 2 * time.Second

const breakerName = "datastore"

// breakerStateValue converts gobreaker.State to metrics.CircuitBreakerState's
// documented scale (0=closed, 1=half-open, 2=open).
func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Server holds the orchestrator's wiring: the datastore (behind a circuit
// breaker), the job queue, and the live job-status hub.
type Server struct {
	Store      store.Store
	Breaker    *gobreaker.CircuitBreaker[interface{}]
	Queue      *Queue
	Hub        *Hub
	Middleware MiddlewareConfig
	perf       *middleware.PerformanceMonitor
	readCache  cache.Cacher
}

// Routes builds the Chi router per SPEC_FULL.md §6.3: POST /jobs/process,
// GET /jobs/{id}, GET /jobs/{id}/result, GET /jobs/{id}/graph, GET /ws.
func (s *Server) Routes() http.Handler {
	if s.perf == nil {
		s.perf = middleware.NewPerformanceMonitor(perfMonitorCapacity)
	}
	if s.readCache == nil {
		s.readCache = cache.NewCacher(cache.CacheConfig{TTL: readCacheTTL})
	}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestMetrics)
	r.Use(s.perf.Middleware)
	r.Use(middleware.Compression)
	r.Use(s.Middleware.CORS())

	r.Route("/jobs", func(r chi.Router) {
		r.Use(s.Middleware.RateLimit())
		r.Post("/process", s.handleProcess)
		r.Get("/{id}", s.handleJobStatus)
		r.Get("/{id}/result", s.handleJobResult)
		r.Get("/{id}/graph", s.handleJobGraph)
	})

	r.Get("/ws", s.handleWebSocket)
	r.Get("/debug/performance", s.handlePerformanceStats)

	return r
}

// storeGet runs a Get through the circuit breaker so repeated Badger
// failures trip it instead of every handler blocking on a degraded store.
func (s *Server) storeGet(ctx context.Context, key string) ([]byte, error) {
	if s.readCache != nil {
		if cached, ok := s.readCache.Get(key); ok {
			return cached.([]byte), nil
		}
	}

	started := time.Now()
	v, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.Store.Get(ctx, key)
	})
	s.recordBreakerResult(err)
	metrics.RecordStoreOp("get", time.Since(started), err)
	if err != nil {
		return nil, err
	}

	raw := v.([]byte)
	if s.readCache != nil {
		s.readCache.Set(key, raw)
	}
	return raw, nil
}

// storePut runs a Put through the circuit breaker and invalidates any
// cached read for key so a subsequent storeGet can't serve stale data.
func (s *Server) storePut(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	started := time.Now()
	_, err := s.Breaker.Execute(func() (interface{}, error) {
		return nil, s.Store.Put(ctx, key, value, ttl)
	})
	s.recordBreakerResult(err)
	metrics.RecordStoreOp("put", time.Since(started), err)
	if err == nil && s.readCache != nil {
		s.readCache.Delete(key)
	}
	return err
}

// recordBreakerResult records the breaker's current state and this
// request's outcome against it.
func (s *Server) recordBreakerResult(err error) {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(breakerStateValue(s.Breaker.State()))
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, result).Inc()
}
