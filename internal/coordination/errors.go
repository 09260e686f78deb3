// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "errors"

var (
	// ErrEmptyInput is returned when a stage receives no posts to process.
	ErrEmptyInput = errors.New("coordination: no posts to process")

	// ErrInvalidPost is returned when a post fails a basic shape invariant
	// (empty entity, non-finite or negative timestamp, empty user/post id).
	ErrInvalidPost = errors.New("coordination: invalid post record")

	// ErrInvalidConfig is returned when the pipeline's tunables are out of
	// their valid range.
	ErrInvalidConfig = errors.New("coordination: invalid configuration")
)
