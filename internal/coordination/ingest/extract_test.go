// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import (
	"reflect"
	"testing"
)

func TestExtractEntitiesDefaultURL(t *testing.T) {
	got := extractEntities("check out https://example.com/a and https://example.com/a again", ExtractConfig{})
	want := []string{"https://example.com/a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractEntitiesHashtag(t *testing.T) {
	got := extractEntities("big news #Breaking #breaking today", ExtractConfig{Pattern: HashtagPattern, Lowercase: true})
	want := []string{"#breaking"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractEntitiesNoMatches(t *testing.T) {
	got := extractEntities("nothing to see here", ExtractConfig{})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestSplitLinksDedupesAndTrims(t *testing.T) {
	got := splitLinks(" a.com, b.com ,a.com,", false)
	want := []string{"a.com", "b.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitLinksLowercase(t *testing.T) {
	got := splitLinks("A.com", true)
	want := []string{"a.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
