// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordStage(t *testing.T) {
	before := counterValue(t, StageErrors.WithLabelValues("detect"))

	RecordStage("detect", 10*time.Millisecond, 42, nil)
	RecordStage("detect", 10*time.Millisecond, 0, errors.New("boom"))

	after := counterValue(t, StageErrors.WithLabelValues("detect"))
	if after != before+1 {
		t.Errorf("StageErrors = %v, want %v", after, before+1)
	}
}

func TestRecordJobSubmission(t *testing.T) {
	beforeSubmitted := counterValue(t, JobsSubmitted.WithLabelValues("tabular"))
	beforeDedup := counterValue(t, JobsDeduplicated)

	RecordJobSubmission("tabular", false)
	RecordJobSubmission("tabular", true)

	if got := counterValue(t, JobsSubmitted.WithLabelValues("tabular")); got != beforeSubmitted+1 {
		t.Errorf("JobsSubmitted = %v, want %v", got, beforeSubmitted+1)
	}
	if got := counterValue(t, JobsDeduplicated); got != beforeDedup+1 {
		t.Errorf("JobsDeduplicated = %v, want %v", got, beforeDedup+1)
	}
}

func TestRecordJobOutcome(t *testing.T) {
	before := counterValue(t, JobsFailed.WithLabelValues("dtw_timeout"))
	RecordJobOutcome(time.Second, "dtw_timeout")
	if got := counterValue(t, JobsFailed.WithLabelValues("dtw_timeout")); got != before+1 {
		t.Errorf("JobsFailed = %v, want %v", got, before+1)
	}

	// A successful job carries no reason and must not increment JobsFailed.
	before = counterValue(t, JobsFailed.WithLabelValues(""))
	RecordJobOutcome(time.Second, "")
	if got := counterValue(t, JobsFailed.WithLabelValues("")); got != before {
		t.Errorf("JobsFailed incremented for a successful job: %v -> %v", before, got)
	}
}

func TestRecordStoreOp(t *testing.T) {
	before := counterValue(t, StoreOperationErrors.WithLabelValues("put"))
	RecordStoreOp("put", time.Millisecond, errors.New("disk full"))
	if got := counterValue(t, StoreOperationErrors.WithLabelValues("put")); got != before+1 {
		t.Errorf("StoreOperationErrors = %v, want %v", got, before+1)
	}
}
