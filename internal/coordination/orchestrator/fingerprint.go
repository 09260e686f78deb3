// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"crypto/md5" //nolint:gosec // fingerprinting for dedup, not a security boundary
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// TabularJobDescriptor fingerprints a tabular job: the input file's hash,
// the speed option, and the exclusion file's hash, concatenated.
type TabularJobDescriptor struct {
	InputFileHash     string `validate:"required"`
	Speed             int    `validate:"min=1,max=3"`
	ExclusionFileHash string `validate:"omitempty"`
}

// Fingerprint returns spec.md §6's MD5 of the concatenated components.
func (d TabularJobDescriptor) Fingerprint() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%d|%s", d.InputFileHash, d.Speed, d.ExclusionFileHash))) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// SearchIndexJobDescriptor fingerprints a search-index job by its
// canonical JSON form: sorted keys, no whitespace, UTF-8.
type SearchIndexJobDescriptor struct {
	Query          string   `json:"query" validate:"required"`
	IndexName      string   `json:"index_name" validate:"required"`
	ExcludedEntity []string `json:"excluded_entities" validate:"omitempty,dive,required"`
	Speed          int      `json:"speed" validate:"min=1,max=3"`
	LinkPattern    string   `json:"link_pattern,omitempty"`
	Lowercase      bool     `json:"lowercase"`
}

// Fingerprint returns the MD5 of the descriptor's canonical JSON
// encoding. Slice fields are sorted first so that two logically
// identical jobs fingerprint identically regardless of submission order.
func (d SearchIndexJobDescriptor) Fingerprint() (string, error) {
	sorted := d
	sorted.ExcludedEntity = append([]string(nil), d.ExcludedEntity...)
	sort.Strings(sorted.ExcludedEntity)

	canonical, err := canonicalJSON(sorted)
	if err != nil {
		return "", fmt.Errorf("canonicalize search-index job descriptor: %w", err)
	}
	sum := md5.Sum(canonical) //nolint:gosec
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON marshals v, then re-marshals it through a generic map so
// that object keys are sorted (encoding/json already sorts map keys) and
// no whitespace separators are introduced.
func canonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
