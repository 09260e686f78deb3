// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateCoordination(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CoordinationConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *CoordinationConfig) {}, false},
		{"zero epsilon", func(c *CoordinationConfig) { c.DecayEpsilon = 0 }, true},
		{"epsilon at 1", func(c *CoordinationConfig) { c.DecayEpsilon = 1 }, true},
		{"negative shortcut threshold", func(c *CoordinationConfig) { c.DTWShortcutThreshold = -1 }, true},
		{"speed zero", func(c *CoordinationConfig) { c.Speed = 0 }, true},
		{"speed four", func(c *CoordinationConfig) { c.Speed = 4 }, true},
		{"speed one is valid", func(c *CoordinationConfig) { c.Speed = 1 }, false},
		{"zero worker threads", func(c *CoordinationConfig) { c.WorkerThreads = 0 }, true},
		{"zero chunk size", func(c *CoordinationConfig) { c.WorkerChunkSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig().Coordination
			tt.mutate(&cfg)
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateServerPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port > 65535")
	}
}

func TestValidateStoreRequiresPathUnlessInMemory(t *testing.T) {
	cfg := defaultConfig()
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty store path")
	}
	cfg.Store.InMemoryOnly = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("in-memory store should not require a path, got: %v", err)
	}
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown logging format")
	}
}

func TestEnvTransformFuncMapsKnownKeys(t *testing.T) {
	tests := map[string]string{
		"COORDINATION_WORKER_THREADS":    "coordination.worker_threads",
		"COORDINATION_WORKER_CHUNK_SIZE": "coordination.worker_chunk_size",
		"HTTP_PORT":                      "server.port",
		"UNKNOWN_RANDOM_VAR":             "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadWithKoanfAppliesDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Coordination.WorkerThreads != 8 {
		t.Errorf("WorkerThreads = %d, want 8", cfg.Coordination.WorkerThreads)
	}
	if cfg.Coordination.Speed != 3 {
		t.Errorf("Speed = %d, want 3", cfg.Coordination.Speed)
	}
}

func TestLoadWithKoanfEnvOverride(t *testing.T) {
	t.Setenv("COORDINATION_WORKER_THREADS", "16")
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Coordination.WorkerThreads != 16 {
		t.Errorf("WorkerThreads = %d, want 16 from env override", cfg.Coordination.WorkerThreads)
	}
}
