// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "fmt"

// Speed selects how many pipeline stages run past the entity-level
// detector.
type Speed int

const (
	// SpeedDetectorOnly runs stages 1-4 only (§4.4 output), additionally
	// filtering candidate pairs to those sharing more than one entity.
	SpeedDetectorOnly Speed = 1
	// SpeedRefinerOnly runs stages 1-5 (adds the DTW-based pairwise
	// refiner), without the multi-entity filter SpeedDetectorOnly applies.
	SpeedRefinerOnly Speed = 2
	// SpeedFull runs the complete pipeline including the group corrector.
	SpeedFull Speed = 3
)

// Options holds the core pipeline's tunables.
type Options struct {
	// DecayEpsilon is the τ floor below which a multi-edge bipartite
	// record is dropped (§4.3).
	DecayEpsilon float64

	// DTWShortcutThreshold is the sequence length above which both sides
	// of a DTW comparison are treated as maximally similar (§4.5).
	DTWShortcutThreshold int

	// Speed selects how much of the pipeline runs.
	Speed Speed

	// WorkerThreads sizes the refiner's worker pool (§4.5, §5).
	WorkerThreads int

	// WorkerChunkSize is the target rows per chunk handed to one worker.
	WorkerChunkSize int
}

// DefaultOptions returns the spec's default tunables.
func DefaultOptions() Options {
	return Options{
		DecayEpsilon:         1e-5,
		DTWShortcutThreshold: 1000,
		Speed:                SpeedFull,
		WorkerThreads:        8,
		WorkerChunkSize:      1000,
	}
}

func (o Options) validate() error {
	if o.DecayEpsilon <= 0 || o.DecayEpsilon >= 1 {
		return fmt.Errorf("%w: decay epsilon %v must be in (0, 1)", ErrInvalidConfig, o.DecayEpsilon)
	}
	if o.DTWShortcutThreshold <= 0 {
		return fmt.Errorf("%w: dtw shortcut threshold must be positive", ErrInvalidConfig)
	}
	if o.Speed < SpeedDetectorOnly || o.Speed > SpeedFull {
		return fmt.Errorf("%w: speed %d must be 1, 2, or 3", ErrInvalidConfig, o.Speed)
	}
	if o.WorkerThreads <= 0 {
		return fmt.Errorf("%w: worker threads must be positive", ErrInvalidConfig)
	}
	if o.WorkerChunkSize <= 0 {
		return fmt.Errorf("%w: worker chunk size must be positive", ErrInvalidConfig)
	}
	return nil
}
