// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"errors"
	"time"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusQueued   Status = "queued"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
	StatusFailed   Status = "failed"
)

// ErrJobNotFound is returned when a job id has no record in the store.
var ErrJobNotFound = errors.New("orchestrator: job not found")

// ErrDuplicateJob is returned when a submitted job's fingerprint matches
// an already-queued or already-finished job.
var ErrDuplicateJob = errors.New("orchestrator: duplicate job")

// Job is the orchestrator's persisted record of one detection run.
type Job struct {
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Status      Status    `json:"status"`
	Speed       int       `json:"speed"`
	Error       string    `json:"error,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Subjects used on the job queue, one per lifecycle transition trigger.
const (
	SubjectJobSubmitted = "coordination.jobs.submitted"
)
