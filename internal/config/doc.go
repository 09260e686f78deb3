// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config loads and validates the coordination-detector's runtime
configuration: the core pipeline's tunables (decay, DTW shortcut, worker
pool sizing), the orchestrator's HTTP/queue/store settings, and logging.

# Layering

Three layers are merged in order, each able to override the previous:

 1. Defaults — a fully-populated Config literal.
 2. Config file — optional YAML, found via CONFIG_PATH or a default search path.
 3. Environment variables — explicit name mappings only; unmapped env vars
    are never silently absorbed into the config tree.

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	opts := coordination.DefaultOptions()
	opts.WorkerThreads = cfg.Coordination.WorkerThreads
	opts.WorkerChunkSize = cfg.Coordination.WorkerChunkSize
	edges, stats, err := coordination.Run(posts, exclude, opts)
*/
package config
