// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import (
	"context"
	"errors"
	"testing"
)

type fakeScanner struct {
	docs []RawDoc
	err  error
}

func (f fakeScanner) Scan(ctx context.Context) <-chan ScanResult {
	out := make(chan ScanResult, len(f.docs)+1)
	for _, d := range f.docs {
		out <- ScanResult{Doc: d}
	}
	if f.err != nil {
		out <- ScanResult{Err: f.err}
	}
	close(out)
	return out
}

func TestSearchIndexSourceFieldLinks(t *testing.T) {
	src := SearchIndexSource{
		Scanner: fakeScanner{docs: []RawDoc{
			{PostID: "p1", UserID: "u1", Time: "2024-01-01T00:00:00Z", Links: []string{"a.com", "b.com"}},
		}},
	}
	var posts []string
	for r := range src.Posts(context.Background()) {
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		posts = append(posts, r.Post.Entity)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
}

func TestSearchIndexSourceFallsBackToTextExtraction(t *testing.T) {
	src := SearchIndexSource{
		Scanner: fakeScanner{docs: []RawDoc{
			{PostID: "p1", UserID: "u1", Time: "2024-01-01T00:00:00Z", Text: "see https://example.com/x"},
		}},
	}
	var posts []string
	for r := range src.Posts(context.Background()) {
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		posts = append(posts, r.Post.Entity)
	}
	if len(posts) != 1 || posts[0] != "https://example.com/x" {
		t.Fatalf("unexpected posts: %v", posts)
	}
}

func TestSearchIndexSourcePropagatesScanError(t *testing.T) {
	boom := errors.New("boom")
	src := SearchIndexSource{Scanner: fakeScanner{err: boom}}
	var gotErr error
	for r := range src.Posts(context.Background()) {
		if r.Err != nil {
			gotErr = r.Err
		}
	}
	if !errors.Is(gotErr, boom) {
		t.Fatalf("expected scan error to propagate, got %v", gotErr)
	}
}

func TestExclusionSetParsesLines(t *testing.T) {
	set := ParseExclusionList("Spam.com\n\nnews.com\n")
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set))
	}
}
