// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package cache provides thread-safe in-memory caching and deduplication
primitives: a TTL-based response cache and a Bloom-filter-backed
deduplication cache.

# Overview

Two independent concerns share this package because both are "remember
whether I've seen this key before" problems with different cost/accuracy
trade-offs:

  - Cache: a simple TTL map for caching expensive results (e.g. a rendered
    job-status response) with lazy expiration on Get.
  - DeduplicationCache (BloomLRU / ExactLRU): fast membership testing for
    high-cardinality keys. BloomLRU puts a Bloom filter in front of an
    exact LRU: the filter rejects definite non-duplicates in O(1), and the
    LRU is consulted only when the filter reports a possible hit. ExactLRU
    is the LRU alone, with no false positives; the coordination normaliser
    uses it for the (user, entity, post_id) triples it sees when folding a
    post stream.

# Usage Example

	c := cache.New(5 * time.Minute)
	c.Set("job:7f3a:status", status)
	if v, ok := c.Get("job:7f3a:status"); ok {
	    status := v.(JobStatus)
	}

Deduplication:

	dedup := cache.NewExactLRU(100000, time.Hour)
	key := userID + "|" + entity + "|" + postID
	if dedup.IsDuplicate(key) {
	    return // already folded this post/entity pair
	}

# Thread Safety

All types are safe for concurrent use via sync.RWMutex/sync.Mutex.

# Limitations

No distributed cache, no persistence, no size-bounded eviction on the plain
TTL cache — acceptable for the per-job, single-process scope this package is
used in.
*/
package cache
