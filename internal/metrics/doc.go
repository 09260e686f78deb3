// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics provides Prometheus instrumentation for the
coordination-detector: per-stage pipeline timings and row counts, worker
pool utilization, the job queue, the datastore, and the circuit breaker
guarding it.

Metrics are package-level vars registered via promauto at import time, the
same pattern the rest of this codebase uses, so a handler just needs to
mount promhttp.Handler() once.
*/
package metrics
