// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"errors"
	"testing"
)

func TestNormalizeEmptyInput(t *testing.T) {
	_, err := normalize(nil, nil, &Stats{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalizeRejectsInvalidPost(t *testing.T) {
	cases := []Post{
		{UserID: "", Entity: "e1", PostTime: 1, PostID: "p1"},
		{UserID: "u1", Entity: "", PostTime: 1, PostID: "p1"},
		{UserID: "u1", Entity: "e1", PostTime: 1, PostID: ""},
		{UserID: "u1", Entity: "e1", PostTime: -1, PostID: "p1"},
	}
	for i, c := range cases {
		_, err := normalize([]Post{c}, nil, &Stats{})
		if !errors.Is(err, ErrInvalidPost) {
			t.Fatalf("case %d: expected ErrInvalidPost, got %v", i, err)
		}
	}
}

func TestNormalizeDropsExcludedEntities(t *testing.T) {
	posts := []Post{
		{UserID: "u1", Entity: "Spam.com", PostTime: 1, PostID: "p1"},
		{UserID: "u2", Entity: "news.com", PostTime: 2, PostID: "p2"},
	}
	exclude := NewExclusionSet([]string{"spam.com"})
	stats := &Stats{}
	out, err := normalize(posts, exclude, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].entity != "news.com" {
		t.Fatalf("expected only news.com to survive, got %+v", out)
	}
	if stats.EntitiesDropped != 1 {
		t.Fatalf("expected 1 dropped entity, got %d", stats.EntitiesDropped)
	}
}

func TestNormalizeDeduplicates(t *testing.T) {
	posts := []Post{
		{UserID: "u1", Entity: "e1", PostTime: 1, PostID: "p1"},
		{UserID: "u1", Entity: "e1", PostTime: 1, PostID: "p1"},
	}
	out, err := normalize(posts, nil, &Stats{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected dedup to length 1, got %d", len(out))
	}
}

func TestNormalizeSetsPostsConsumed(t *testing.T) {
	posts := []Post{
		{UserID: "u1", Entity: "e1", PostTime: 1, PostID: "p1"},
		{UserID: "u2", Entity: "e1", PostTime: 2, PostID: "p2"},
	}
	stats := &Stats{}
	if _, err := normalize(posts, nil, stats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.PostsConsumed != 2 {
		t.Fatalf("expected PostsConsumed=2, got %d", stats.PostsConsumed)
	}
}
