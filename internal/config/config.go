// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import "time"

// Config is the root configuration tree for the coordination-detector.
type Config struct {
	Coordination CoordinationConfig `koanf:"coordination"`
	Server       ServerConfig       `koanf:"server"`
	NATS         NATSConfig         `koanf:"nats"`
	Store        StoreConfig        `koanf:"store"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// CoordinationConfig holds the core pipeline's tunables (spec §6).
type CoordinationConfig struct {
	// DecayEpsilon is the floor below which a time-decay weight (τ) is
	// dropped from the multi-edge bipartite graph.
	DecayEpsilon float64 `koanf:"decay_epsilon"`

	// DTWShortcutThreshold is the sequence length above which both sides
	// of a pairwise DTW comparison are treated as maximally similar
	// instead of computing the full distance matrix.
	DTWShortcutThreshold int `koanf:"dtw_shortcut_threshold"`

	// Speed selects how many of the three refinement stages run:
	// 1 = entity-level detector output only, 2 = + pairwise refiner,
	// 3 (default) = + group corrector.
	Speed int `koanf:"speed"`

	// WorkerThreads sizes the refiner's worker pool.
	WorkerThreads int `koanf:"worker_threads"`

	// WorkerChunkSize is the target number of candidate rows per chunk
	// handed to a single worker; a (from, to) pair's rows are never
	// split across a chunk boundary.
	WorkerChunkSize int `koanf:"worker_chunk_size"`
}

// ServerConfig holds the orchestrator's HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// NATSConfig configures the Watermill/NATS JetStream job queue.
type NATSConfig struct {
	Enabled          bool          `koanf:"enabled"`
	URL              string        `koanf:"url"`
	EmbeddedServer   bool          `koanf:"embedded_server"`
	StoreDir         string        `koanf:"store_dir"`
	StreamRetention  time.Duration `koanf:"stream_retention"`
	DurableName      string        `koanf:"durable_name"`
	QueueGroup       string        `koanf:"queue_group"`
	SubscribersCount int           `koanf:"subscribers_count"`
}

// StoreConfig configures the Badger-backed job/result datastore.
type StoreConfig struct {
	Path         string        `koanf:"path"`
	DefaultTTL   time.Duration `koanf:"default_ttl"`
	GCInterval   time.Duration `koanf:"gc_interval"`
	InMemoryOnly bool          `koanf:"in_memory_only"`
}

// SecurityConfig holds HTTP-layer hardening: rate limiting and CORS.
// There is no user-auth surface in this service (single-tenant job API),
// so no JWT/OIDC/RBAC settings live here.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures the zerolog-based structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
