// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import (
	"context"
	"strings"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

// RawDoc is one document yielded by a Scanner: a search-index hit that has
// not yet been resolved into (user, entity, time, post_id) tuples.
type RawDoc struct {
	PostID string
	UserID string
	Text   string
	Time   string // raw ISO-8601, not yet parsed
	Links  []string
}

// ScanResult is one RawDoc or a fatal error observed while scanning.
type ScanResult struct {
	Doc RawDoc
	Err error
}

// Scanner is a cursor over a search index, standing in for an
// Elasticsearch helpers.scan-style paging iterator. Implementations close
// the returned channel when exhausted or ctx is cancelled.
type Scanner interface {
	Scan(ctx context.Context) <-chan ScanResult
}

// SearchIndexSource adapts a Scanner into the coordination core's Post
// stream, applying field-level link extraction when RawDoc.Links is
// populated and falling back to regex extraction over RawDoc.Text
// otherwise (hashtag, URL, or a caller-supplied pattern, per spec.md §6).
type SearchIndexSource struct {
	Scanner Scanner
	Extract ExtractConfig
}

func (s SearchIndexSource) Posts(ctx context.Context) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for sr := range s.Scanner.Scan(ctx) {
			if sr.Err != nil {
				out <- Result{Err: sr.Err}
				return
			}

			t, err := ParseTimestamp(sr.Doc.Time)
			if err != nil {
				out <- Result{Err: err}
				return
			}

			entities := sr.Doc.Links
			if len(entities) == 0 {
				entities = extractEntities(sr.Doc.Text, s.Extract)
			}

			for _, e := range entities {
				if s.Extract.Lowercase {
					e = strings.ToLower(e)
				}
				out <- Result{Post: coordination.Post{
					UserID:   sr.Doc.UserID,
					Entity:   e,
					PostTime: t,
					PostID:   sr.Doc.PostID,
				}}
			}
		}
	}()
	return out
}
