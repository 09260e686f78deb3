// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// trailingTZPattern matches a trailing "Z" or "+HH:MM"/"-HH:MM" offset on an
// otherwise-ISO-8601 timestamp.
var trailingTZPattern = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)

// isoLayouts are tried in order against a timestamp with its trailing
// timezone already stripped.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp, stripping a trailing
// timezone offset first (spec.md §6: "trailing timezone stripped before
// parsing"), and returns seconds since the Unix epoch.
func ParseTimestamp(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	stripped := trailingTZPattern.ReplaceAllString(trimmed, "")

	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, stripped)
		if err == nil {
			return float64(t.Unix()) + float64(t.Nanosecond())/1e9, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("%w: unparseable timestamp %q: %v", ErrInputMalformed, raw, lastErr)
}
