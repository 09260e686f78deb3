// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

// DefaultTreeConfig returns production-ready defaults, matching suture's
// own built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// SupervisorTree runs the job worker pool and the WebSocket hub as
// independently-restartable services under a single root supervisor.
type SupervisorTree struct {
	root      *suture.Supervisor
	messaging *suture.Supervisor
	workers   *suture.Supervisor
	config    TreeConfig
}

// NewSupervisorTree builds the tree's two child supervisors (workers,
// messaging) under a shared root, wired with sutureslog so restarts and
// failures surface through the service's structured logger.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) *SupervisorTree {
	if config.FailureThreshold == 0 {
		config = DefaultTreeConfig()
	}

	handler := &sutureslog.Handler{Logger: logger}
	eventHook := handler.MustHook()

	spec := suture.Spec{
		EventHook:        eventHook,
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	root := suture.New("coordination-detector", spec)
	workers := suture.New("job-workers", spec)
	messaging := suture.New("messaging", spec)

	root.Add(workers)
	root.Add(messaging)

	return &SupervisorTree{root: root, workers: workers, messaging: messaging, config: config}
}

// AddWorker registers a job-queue consumer under the worker-pool child
// supervisor. Call once per desired worker concurrency.
func (t *SupervisorTree) AddWorker(svc suture.Service) suture.ServiceToken {
	return t.workers.Add(svc)
}

// AddMessagingService registers the WebSocket hub (or any other
// messaging-layer service) under the messaging child supervisor.
func (t *SupervisorTree) AddMessagingService(svc suture.Service) suture.ServiceToken {
	return t.messaging.Add(svc)
}

// AddAPIService registers the HTTP server directly under the root
// supervisor, so its failures are visible at the top of the tree.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.root.Add(svc)
}

// ServeBackground starts the tree in a goroutine, returning a channel
// that receives the terminal error (or nil) once it stops.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that failed to stop within the
// configured shutdown timeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// Serve starts the tree and blocks until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// workerService adapts Worker.Run to suture.Service.
type workerService struct {
	worker *Worker
	name   string
}

// NewWorkerService wraps w for supervision, giving it name for logging.
func NewWorkerService(w *Worker, name string) suture.Service {
	return &workerService{worker: w, name: name}
}

func (s *workerService) Serve(ctx context.Context) error {
	return s.worker.Run(ctx)
}

func (s *workerService) String() string {
	return s.name
}

// hubService adapts Hub.Run to suture.Service.
type hubService struct {
	hub *Hub
}

// NewHubService wraps h for supervision.
func NewHubService(h *Hub) suture.Service {
	return &hubService{hub: h}
}

func (s *hubService) Serve(ctx context.Context) error {
	return s.hub.Run(ctx)
}

func (s *hubService) String() string {
	return "websocket-hub"
}

// httpService adapts an *http.Server to suture.Service, translating its
// blocking ListenAndServe into a context-aware Serve and calling Shutdown
// on cancellation.
type httpService struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewHTTPService wraps server for supervision with the given graceful
// shutdown timeout.
func NewHTTPService(server *http.Server, shutdownTimeout time.Duration) suture.Service {
	return &httpService{server: server, shutdownTimeout: shutdownTimeout}
}

func (s *httpService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *httpService) String() string {
	return "http-server"
}
