// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"math"
	"strings"
	"time"

	"github.com/tomtom215/coordination-detector/internal/cache"
	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// ExclusionSet is a case-insensitive set of entities to drop during
// normalisation.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds an ExclusionSet from a list of entities,
// lower-casing each one.
func NewExclusionSet(entities []string) ExclusionSet {
	set := make(ExclusionSet, len(entities))
	for _, e := range entities {
		set[strings.ToLower(e)] = struct{}{}
	}
	return set
}

func (s ExclusionSet) contains(entity string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToLower(entity)]
	return ok
}

// normalizedPost is the flat (user, entity, time, post_id) tuple the
// normaliser emits for one (post, entity) pair.
type normalizedPost struct {
	user   string
	entity string
	time   float64
	postID string
}

// normalize deduplicates (user, entity) occurrences within each post,
// drops excluded entities, and flattens the post stream. It never emits
// the same (user, entity, post_id) triple twice.
func normalize(posts []Post, exclude ExclusionSet, stats *Stats) ([]normalizedPost, error) {
	if len(posts) == 0 {
		return nil, ErrEmptyInput
	}

	// Sized to the input so the bounded single pass below can never evict
	// a key before it's checked again: capacity exceeds the maximum
	// possible number of unique (user, entity, post_id) triples, so
	// ExactLRU's zero-false-positive guarantee also never degrades into a
	// false negative from premature eviction.
	dedup := cache.NewExactLRU(len(posts)+1, time.Hour)
	out := make([]normalizedPost, 0, len(posts))

	for _, p := range posts {
		if p.Entity == "" || p.UserID == "" || p.PostID == "" {
			return nil, ErrInvalidPost
		}
		if math.IsNaN(p.PostTime) || math.IsInf(p.PostTime, 0) || p.PostTime < 0 {
			return nil, ErrInvalidPost
		}
		if exclude.contains(p.Entity) {
			stats.EntitiesDropped++
			metrics.EntitiesDropped.Inc()
			continue
		}

		key := p.UserID + "\x00" + p.Entity + "\x00" + p.PostID
		if dedup.IsDuplicate(key) {
			continue
		}

		out = append(out, normalizedPost{
			user:   p.UserID,
			entity: p.Entity,
			time:   p.PostTime,
			postID: p.PostID,
		})
	}

	stats.PostsConsumed = len(out)
	return out, nil
}
