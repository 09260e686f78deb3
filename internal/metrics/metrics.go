// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline stage metrics. "stage" is one of normalize, prune, bipartite,
	// detect, refine, correct, denormalize.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coordination_stage_duration_seconds",
			Help:    "Duration of a single pipeline stage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"stage"},
	)

	StageRowsOut = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coordination_stage_rows_out",
			Help: "Number of rows/records emitted by the last run of a stage",
		},
		[]string{"stage"},
	)

	StageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coordination_stage_errors_total",
			Help: "Total number of stage failures",
		},
		[]string{"stage"},
	)

	EntitiesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coordination_entities_dropped_total",
			Help: "Total number of posts dropped because their entity is in the exclusion set",
		},
	)

	// Refiner worker pool.
	WorkerPoolChunksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coordination_worker_chunks_processed_total",
			Help: "Total number of candidate-pair chunks processed by the refiner pool",
		},
	)

	WorkerPoolChunkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coordination_worker_chunk_duration_seconds",
			Help:    "Duration of a single refiner worker processing one chunk",
			Buckets: prometheus.DefBuckets,
		},
	)

	WorkerPoolActiveWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coordination_worker_active",
			Help: "Current number of active refiner goroutines",
		},
	)

	DTWShortcutsTaken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coordination_dtw_shortcuts_total",
			Help: "Total number of DTW comparisons resolved via the quadratic-blowup shortcut",
		},
	)

	// Job orchestrator.
	JobsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coordination_jobs_submitted_total",
			Help: "Total number of jobs submitted to the orchestrator",
		},
		[]string{"source_type"}, // "tabular", "search_index"
	)

	JobsDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coordination_jobs_deduplicated_total",
			Help: "Total number of job submissions matched to an existing fingerprint",
		},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coordination_job_duration_seconds",
			Help:    "End-to-end job duration from enqueue to finish",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 600, 1800},
		},
	)

	JobQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coordination_job_queue_depth",
			Help: "Current depth of the NATS job queue",
		},
	)

	JobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coordination_jobs_failed_total",
			Help: "Total number of jobs that ended in failure",
		},
		[]string{"reason"},
	)

	// Datastore.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coordination_store_operation_duration_seconds",
			Help:    "Duration of a datastore operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "put", "get", "list", "expire"
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coordination_store_operation_errors_total",
			Help: "Total number of datastore operation errors",
		},
		[]string{"operation"},
	)

	// Circuit breaker guarding the datastore.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coordination_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coordination_circuit_breaker_requests_total",
			Help: "Total number of requests through a circuit breaker",
		},
		[]string{"name", "result"},
	)

	// HTTP.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coordination_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coordination_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coordination_api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStage records a pipeline stage's duration, output row count, and
// whether it failed.
func RecordStage(stage string, duration time.Duration, rowsOut int, err error) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	StageRowsOut.WithLabelValues(stage).Set(float64(rowsOut))
	if err != nil {
		StageErrors.WithLabelValues(stage).Inc()
	}
}

// RecordWorkerChunk records one refiner worker finishing a chunk.
func RecordWorkerChunk(duration time.Duration) {
	WorkerPoolChunksProcessed.Inc()
	WorkerPoolChunkDuration.Observe(duration.Seconds())
}

// RecordJobSubmission records a newly submitted or deduplicated job.
func RecordJobSubmission(sourceType string, deduplicated bool) {
	if deduplicated {
		JobsDeduplicated.Inc()
		return
	}
	JobsSubmitted.WithLabelValues(sourceType).Inc()
}

// RecordJobOutcome records a finished job's duration and, on failure, its
// reason category.
func RecordJobOutcome(duration time.Duration, reason string) {
	JobDuration.Observe(duration.Seconds())
	if reason != "" {
		JobsFailed.WithLabelValues(reason).Inc()
	}
}

// RecordStoreOp records a datastore operation's duration and outcome.
func RecordStoreOp(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an HTTP request's duration and status.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
