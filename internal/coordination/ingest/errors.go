// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import "errors"

// ErrInputMalformed signals a required column missing, an unparseable
// timestamp, or non-UTF-8 bytes (§7 InputMalformed). Fatal; surfaced to
// the caller as the last Result on the stream.
var ErrInputMalformed = errors.New("ingest: malformed input")
