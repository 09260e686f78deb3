// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/coordination-detector/internal/logging"
	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// MiddlewareConfig mirrors the teacher's Chi middleware factory: CORS and
// IP-based rate limiting, with no auth layer (this service is single-tenant).
type MiddlewareConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// CORS builds a go-chi/cors handler from cfg.
func (c MiddlewareConfig) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: c.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	})
}

// RateLimit builds an IP-keyed go-chi/httprate limiter, or a no-op when
// rate limiting is disabled (e.g. in tests).
func (c MiddlewareConfig) RateLimit() func(http.Handler) http.Handler {
	if c.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(c.RateLimitRequests, c.RateLimitWindow, httprate.WithKeyFuncs(httprate.KeyByIP))
}

// RequestID stamps every request with an X-Request-ID header and injects
// it into the logging context, adapted from the teacher's
// internal/middleware.RequestID for Chi's func(http.Handler) http.Handler
// signature.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := logging.ContextWithRequestID(r.Context(), id)
		ctx = logging.ContextWithNewCorrelationID(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestMetrics records every request's duration, status code, and
// in-flight count against internal/metrics, keyed by the Chi route
// pattern rather than the raw path so dynamic segments like {id} don't
// fragment the label space.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		started := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(ww.Status()), time.Since(started))
	})
}
