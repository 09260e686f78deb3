// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFingerprintSearchIndexRequestRejectsMissingQuery(t *testing.T) {
	srv := &Server{}
	body := `{"index_name":"posts"}`
	req := httptest.NewRequest("POST", "/jobs/process", strings.NewReader(body))

	_, _, err := srv.fingerprintSearchIndexRequest(req)
	if err == nil {
		t.Fatal("expected a validation error for a missing required query field")
	}
}

func TestFingerprintSearchIndexRequestAcceptsValidDescriptor(t *testing.T) {
	srv := &Server{}
	body := `{"query":"foo","index_name":"posts"}`
	req := httptest.NewRequest("POST", "/jobs/process", strings.NewReader(body))

	fp, speed, err := srv.fingerprintSearchIndexRequest(req)
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if fp == "" {
		t.Fatal("expected a non-empty fingerprint")
	}
	if speed != 3 {
		t.Fatalf("expected default speed 3, got %d", speed)
	}
}

func TestFingerprintSearchIndexRequestRejectsInvalidSpeed(t *testing.T) {
	srv := &Server{}
	body := `{"query":"foo","index_name":"posts","speed":9}`
	req := httptest.NewRequest("POST", "/jobs/process", strings.NewReader(body))

	_, _, err := srv.fingerprintSearchIndexRequest(req)
	if err == nil {
		t.Fatal("expected a validation error for an out-of-range speed")
	}
}
