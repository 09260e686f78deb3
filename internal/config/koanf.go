// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/coordination-detector/config.yaml",
	"/etc/coordination-detector/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config
// file search.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Coordination: CoordinationConfig{
			DecayEpsilon:         1e-5,
			DTWShortcutThreshold: 1000,
			Speed:                3,
			WorkerThreads:        8,
			WorkerChunkSize:      1000,
		},
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		NATS: NATSConfig{
			Enabled:          true,
			URL:              "nats://127.0.0.1:4222",
			EmbeddedServer:   true,
			StoreDir:         "/data/nats/jetstream",
			StreamRetention:  7 * 24 * time.Hour,
			DurableName:      "coordination-worker",
			QueueGroup:       "coordination-workers",
			SubscribersCount: 4,
		},
		Store: StoreConfig{
			Path:       "/data/coordination.badger",
			DefaultTTL: 24 * time.Hour,
			GCInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with layered precedence
// defaults < config file < environment variables, validates it, and
// returns the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env values into slices for
// fields the struct tags declare as []string.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps COORDINATION_WORKER_THREADS-style environment
// variable names onto koanf dotted paths. Unmapped names are dropped so
// unrelated process environment never leaks into the config tree.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"coordination_decay_epsilon":           "coordination.decay_epsilon",
		"coordination_dtw_shortcut_threshold":  "coordination.dtw_shortcut_threshold",
		"coordination_speed":                   "coordination.speed",
		"coordination_worker_threads":          "coordination.worker_threads",
		"coordination_worker_chunk_size":       "coordination.worker_chunk_size",

		"http_port": "server.port",
		"http_host": "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		"nats_enabled":        "nats.enabled",
		"nats_url":            "nats.url",
		"nats_embedded":       "nats.embedded_server",
		"nats_store_dir":      "nats.store_dir",
		"nats_retention":      "nats.stream_retention",
		"nats_durable_name":   "nats.durable_name",
		"nats_queue_group":    "nats.queue_group",
		"nats_subscribers":    "nats.subscribers_count",

		"store_path":           "store.path",
		"store_default_ttl":    "store.default_ttl",
		"store_gc_interval":    "store.gc_interval",
		"store_in_memory_only": "store.in_memory_only",

		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// GetKoanfInstance returns a fresh Koanf instance for advanced callers
// (tests, hot-reload experiments).
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}
