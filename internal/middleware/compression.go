// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// compressionThreshold is the minimum response size, in bytes, worth
// paying gzip's framing overhead for.
const compressionThreshold = 1024

// gzipWriterPool pools gzip writers to reduce allocations
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter buffers the full response body so Compression can
// decide, once the handler is done writing, whether the payload cleared
// compressionThreshold. Job results and edge graphs are bounded in size
// (one job's CSV/JSON output), so buffering the whole body is cheap
// relative to the pipeline run that produced it.
type gzipResponseWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	w.status = status
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *gzipResponseWriter) flush() error {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.buf.Len() < compressionThreshold {
		w.ResponseWriter.WriteHeader(w.status)
		_, err := w.ResponseWriter.Write(w.buf.Bytes())
		return err
	}

	gz := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(gz)
	gz.Reset(w.ResponseWriter)

	w.ResponseWriter.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)
	if _, err := gz.Write(w.buf.Bytes()); err != nil {
		return err
	}
	return gz.Close()
}

// Compression gzips responses over compressionThreshold bytes when the
// client sends Accept-Encoding: gzip. WebSocket upgrades pass through
// untouched.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		gzw := &gzipResponseWriter{ResponseWriter: w}
		next.ServeHTTP(gzw, r)
		_ = gzw.flush() // best-effort: response already committed
	})
}
