// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coordination-detector/internal/logging"
)

// response is the standard JSON envelope for every handler in this package.
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
	Meta    meta        `json:"meta"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type meta struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// writeSuccess writes a 200 with data wrapped in the standard envelope.
func writeSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, r, http.StatusOK, response{Success: true, Data: data})
}

// writeCreated writes a 201 for a freshly-enqueued job.
func writeCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, r, http.StatusCreated, response{Success: true, Data: data})
}

// writeError writes an error envelope at the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, response{
		Success: false,
		Error:   &apiError{Code: code, Message: message, RequestID: logging.RequestIDFromContext(r.Context())},
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body response) {
	body.Meta = meta{
		RequestID: logging.RequestIDFromContext(r.Context()),
		Timestamp: time.Now(),
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}
