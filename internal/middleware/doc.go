// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package middleware provides HTTP middleware components for the orchestrator.

Request ID tagging and Prometheus request instrumentation are handled by
the orchestrator's own Chi-native middleware (orchestrator.RequestID,
orchestrator.RequestMetrics) rather than by this package, so only the two
concerns without a Chi-native equivalent live here:

  - Compression: gzip for responses over compressionThreshold bytes
  - Performance Monitor: sliding-window request latency percentiles,
    exposed by the orchestrator at GET /debug/performance

Both are mounted in orchestrator.Server.Routes as standard
func(http.Handler) http.Handler middleware.

Usage Example - Compression:

	r.Use(middleware.Compression)

Usage Example - Performance Monitoring:

	perf := middleware.NewPerformanceMonitor(1000)
	r.Use(perf.Middleware)

	stats := perf.GetStats()
	fmt.Printf("p50: %v, p95: %v, p99: %v\n",
	    stats[0].P50Duration, stats[0].P95Duration, stats[0].P99Duration)

Thread Safety:

  - Compression uses a pooled, per-request gzip.Writer
  - Performance monitor guards its sliding window with sync.RWMutex

See Also:

  - internal/coordination/orchestrator: Chi router and its own
    RequestID/RequestMetrics middleware
  - internal/metrics: Prometheus metric definitions
*/
package middleware
