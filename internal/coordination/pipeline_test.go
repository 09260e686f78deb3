// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"errors"
	"testing"
)

func coordinatedPosts() []Post {
	// Two users, alice and bob, post to the same two entities at exactly
	// the same moment each time (the hallmark of coordination); a third,
	// independent user posts once, which the pruner should discard.
	return []Post{
		{UserID: "alice", Entity: "linka.example", PostTime: 0, PostID: "p1"},
		{UserID: "bob", Entity: "linka.example", PostTime: 0, PostID: "p2"},
		{UserID: "alice", Entity: "linkb.example", PostTime: 10, PostID: "p3"},
		{UserID: "bob", Entity: "linkb.example", PostTime: 10, PostID: "p4"},
		{UserID: "carol", Entity: "lone.example", PostTime: 4, PostID: "p5"},
	}
}

func TestRunInvalidOptions(t *testing.T) {
	_, _, err := Run(coordinatedPosts(), nil, Options{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunEmptyAfterPruneReturnsEmpty(t *testing.T) {
	posts := []Post{
		{UserID: "carol", Entity: "lone.example", PostTime: 0, PostID: "p1"},
	}
	out, stats, err := Run(posts, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no edges once everything is pruned, got %d", len(out))
	}
	if stats.UsersDropped == 0 && stats.EntitiesDropped == 0 {
		t.Fatal("expected pruning to have dropped something")
	}
}

func TestRunSpeedFullFindsCoordinatedPair(t *testing.T) {
	out, stats, err := Run(coordinatedPosts(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CandidateEdges == 0 {
		t.Fatal("expected at least one candidate edge")
	}
	for _, e := range out {
		if e.Weight <= 0 {
			t.Fatalf("expected positive weight, got %+v", e)
		}
	}
}

func TestRunSpeedDetectorOnlyFiltersToMultiEntityPairs(t *testing.T) {
	opts := DefaultOptions()
	opts.Speed = SpeedDetectorOnly
	out, _, err := Run(coordinatedPosts(), nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]int{}
	for _, e := range out {
		seen[e.From+"|"+e.To]++
	}
	for pair, count := range seen {
		if count < 2 {
			t.Fatalf("speed=1 output for pair %s only spans %d entities, want >=2", pair, count)
		}
	}
}

func TestRunSpeedRefinerOnlySkipsCorrection(t *testing.T) {
	opts := DefaultOptions()
	opts.Speed = SpeedRefinerOnly
	_, stats, err := Run(coordinatedPosts(), nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RefinedEdges == 0 {
		t.Fatal("expected refined edges to be produced at speed=2")
	}
}

func TestRunExclusionSetDropsEntity(t *testing.T) {
	exclude := NewExclusionSet([]string{"linka.example"})
	out, stats, err := Run(coordinatedPosts(), exclude, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.EntitiesDropped == 0 {
		t.Fatal("expected the excluded entity to be counted as dropped")
	}
	for _, e := range out {
		if e.Entity == "linka.example" {
			t.Fatal("expected the excluded entity to never appear in output")
		}
	}
}
