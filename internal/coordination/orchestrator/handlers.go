// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"crypto/md5" //nolint:gosec // fingerprinting for dedup, not a security boundary
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/coordination-detector/internal/coordination/store"
	"github.com/tomtom215/coordination-detector/internal/logging"
	"github.com/tomtom215/coordination-detector/internal/metrics"
	"github.com/tomtom215/coordination-detector/internal/validation"
)

const (
	jobTTL    = 24 * time.Hour
	keyJob    = "job:"
	keyResult = "result:"
	keyGraph  = "graph:"
	keyInput  = "input:"
	keyExclud = "exclude:"
)

// handleProcess accepts either a multipart tabular job (fields: posts,
// exclude, speed) or a JSON search-index job descriptor, fingerprints it,
// deduplicates against the store, and enqueues a new job.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fingerprint string
	var speed int
	var postsBytes, excludeBytes []byte
	var err error

	sourceType := "search_index"
	if isMultipart(r) {
		sourceType = "tabular"
		fingerprint, speed, postsBytes, excludeBytes, err = s.fingerprintTabularRequest(r)
	} else {
		fingerprint, speed, err = s.fingerprintSearchIndexRequest(r)
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if existing, ok := s.findByFingerprint(ctx, fingerprint); ok {
		metrics.RecordJobSubmission(sourceType, true)
		writeSuccess(w, r, existing)
		return
	}
	metrics.RecordJobSubmission(sourceType, false)

	if postsBytes != nil {
		if err := s.storePut(ctx, keyInput+fingerprint, postsBytes, jobTTL); err != nil {
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to stage input")
			return
		}
		if excludeBytes != nil {
			if err := s.storePut(ctx, keyExclud+fingerprint, excludeBytes, jobTTL); err != nil {
				writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to stage exclusion list")
				return
			}
		}
	}

	job := Job{
		ID:          fingerprint,
		Fingerprint: fingerprint,
		Status:      StatusQueued,
		Speed:       speed,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.persistJob(ctx, job); err != nil {
		logging.Error().Err(err).Msg("persist job")
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to persist job")
		return
	}
	if err := s.Queue.Enqueue(ctx, job); err != nil {
		logging.Error().Err(err).Msg("enqueue job")
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to enqueue job")
		return
	}

	writeCreated(w, r, job)
}

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}

// fingerprintTabularRequest hashes the posts file and exclusion file (if
// present) alongside the requested speed, per spec.md §6's tabular
// fingerprint rule, and returns their raw bytes for staging.
func (s *Server) fingerprintTabularRequest(r *http.Request) (fingerprint string, speed int, posts, exclude []byte, err error) {
	if err = r.ParseMultipartForm(64 << 20); err != nil {
		return "", 0, nil, nil, err
	}

	posts, err = readFormFile(r, "posts")
	if err != nil {
		return "", 0, nil, nil, err
	}
	exclude, _ = readFormFile(r, "exclude") // optional field

	speed = 3
	if v := r.FormValue("speed"); v != "" {
		parsed, convErr := strconv.Atoi(v)
		if convErr != nil {
			return "", 0, nil, nil, errors.New("speed must be an integer")
		}
		speed = parsed
	}

	desc := TabularJobDescriptor{InputFileHash: hashBytes(posts), Speed: speed, ExclusionFileHash: hashBytes(exclude)}
	if verr := validation.ValidateStruct(&desc); verr != nil {
		return "", 0, nil, nil, verr
	}
	return desc.Fingerprint(), speed, posts, exclude, nil
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func hashBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	sum := md5.Sum(b) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func (s *Server) fingerprintSearchIndexRequest(r *http.Request) (string, int, error) {
	var desc SearchIndexJobDescriptor
	if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
		return "", 0, err
	}
	if desc.Speed == 0 {
		desc.Speed = 3
	}
	if verr := validation.ValidateStruct(&desc); verr != nil {
		return "", 0, verr
	}
	fp, err := desc.Fingerprint()
	if err != nil {
		return "", 0, err
	}
	return fp, desc.Speed, nil
}

// findByFingerprint returns an existing job with the given fingerprint,
// if one has already been submitted.
func (s *Server) findByFingerprint(ctx context.Context, fingerprint string) (Job, bool) {
	raw, err := s.storeGet(ctx, keyJob+fingerprint)
	if err != nil {
		return Job{}, false
	}
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return Job{}, false
	}
	return job, true
}

func (s *Server) persistJob(ctx context.Context, job Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.storePut(ctx, keyJob+job.ID, raw, jobTTL)
}

// handleJobStatus returns the job's current lifecycle state.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	raw, err := s.storeGet(r.Context(), keyJob+id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "job not found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "datastore unavailable")
		return
	}

	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "corrupt job record")
		return
	}
	writeSuccess(w, r, job)
}

// handleJobResult returns the finished job's CSV edge table.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	raw, err := s.storeGet(r.Context(), keyResult+id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "result not found (job may still be running)")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "datastore unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	_, _ = w.Write(raw)
}

// handlePerformanceStats returns the sliding-window latency percentiles
// the performance middleware has accumulated for this process.
func (s *Server) handlePerformanceStats(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, s.perf.GetStats())
}

// handleJobGraph returns the renderer's edge-graph JSON.
func (s *Server) handleJobGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	raw, err := s.storeGet(r.Context(), keyGraph+id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "graph not found (job may still be running)")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "datastore unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(raw)
}
