// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package ingest adapts external post sources (tabular files, search
// indices) into the coordination core's flat Post stream.
package ingest

import (
	"context"
	"strings"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

// Result is one post or a fatal error observed while streaming.
type Result struct {
	Post coordination.Post
	Err  error
}

// Source streams posts for one ingestion job. The returned channel is
// closed when the source is exhausted or ctx is cancelled; a Result with a
// non-nil Err is always the last value sent.
type Source interface {
	Posts(ctx context.Context) <-chan Result
}

// ExclusionSet is a case-insensitive, newline-delimited list of entities to
// drop, matching the coordination core's exclusion contract.
func ExclusionSet(lines []string) coordination.ExclusionSet {
	entities := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		entities = append(entities, l)
	}
	return coordination.NewExclusionSet(entities)
}

// ParseExclusionList splits a raw exclusion file body into entities, one
// per line.
func ParseExclusionList(body string) coordination.ExclusionSet {
	return ExclusionSet(strings.Split(body, "\n"))
}
