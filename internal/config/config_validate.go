// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import "fmt"

// Validate checks the configuration for internally inconsistent or
// out-of-range values. It does not reach out to the network or filesystem.
func (c *Config) Validate() error {
	if err := c.Coordination.validate(); err != nil {
		return fmt.Errorf("coordination: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server: timeout must be positive")
	}
	if c.Store.Path == "" && !c.Store.InMemoryOnly {
		return fmt.Errorf("store: path is required unless in_memory_only is set")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	return nil
}

func (c *CoordinationConfig) validate() error {
	if c.DecayEpsilon <= 0 || c.DecayEpsilon >= 1 {
		return fmt.Errorf("decay_epsilon %v must be in (0, 1)", c.DecayEpsilon)
	}
	if c.DTWShortcutThreshold <= 0 {
		return fmt.Errorf("dtw_shortcut_threshold must be positive")
	}
	if c.Speed < 1 || c.Speed > 3 {
		return fmt.Errorf("speed %d must be 1, 2, or 3", c.Speed)
	}
	if c.WorkerThreads <= 0 {
		return fmt.Errorf("worker_threads must be positive")
	}
	if c.WorkerChunkSize <= 0 {
		return fmt.Errorf("worker_chunk_size must be positive")
	}
	return nil
}
