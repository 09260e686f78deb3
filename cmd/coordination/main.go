// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package main is the entry point for the coordination-detector service.
//
// It initializes, in order: configuration (Koanf v2), structured logging
// (zerolog), the Badger-backed job/result store, an embedded NATS
// JetStream server and the Watermill job queue built on top of it, the
// WebSocket status hub, the job worker, and the Chi HTTP API — then runs
// all of them under a thejerf/suture/v4 supervision tree until SIGINT or
// SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/coordination-detector/internal/config"
	"github.com/tomtom215/coordination-detector/internal/coordination"
	"github.com/tomtom215/coordination-detector/internal/coordination/orchestrator"
	"github.com/tomtom215/coordination-detector/internal/coordination/store"
	"github.com/tomtom215/coordination-detector/internal/logging"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting coordination-detector with supervisor tree")

	badgerStore, err := store.OpenBadgerStore(cfg.Store.Path, cfg.Store.InMemoryOnly)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open job store")
	}
	defer func() {
		if err := badgerStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing job store")
		}
	}()
	logging.Info().Str("path", cfg.Store.Path).Msg("Job store opened")

	natsURL := cfg.NATS.URL
	var embedded *orchestrator.EmbeddedServer
	if cfg.NATS.EmbeddedServer {
		embedded, err = orchestrator.NewEmbeddedServer(cfg.NATS.URL, cfg.NATS.StoreDir)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to start embedded NATS server")
		}
		defer embedded.Shutdown()
		natsURL = embedded.ClientURL()
		logging.Info().Str("url", natsURL).Msg("Embedded NATS JetStream server started")
	}

	queueCfg := orchestrator.DefaultQueueConfig(natsURL)
	queueCfg.DurableName = cfg.NATS.DurableName
	queueCfg.QueueGroup = cfg.NATS.QueueGroup
	queueCfg.SubscribersCount = cfg.NATS.SubscribersCount

	queue, err := orchestrator.NewQueue(queueCfg, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open job queue")
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing job queue")
		}
	}()
	logging.Info().Str("url", natsURL).Msg("Job queue connected")

	breakerCfg := orchestrator.DefaultCircuitBreakerConfig("job-store")
	breaker := orchestrator.NewStoreBreaker(breakerCfg)

	hub := orchestrator.NewHub()

	pipelineOpts := coordination.DefaultOptions()
	pipelineOpts.DecayEpsilon = cfg.Coordination.DecayEpsilon
	pipelineOpts.DTWShortcutThreshold = cfg.Coordination.DTWShortcutThreshold
	pipelineOpts.Speed = coordination.Speed(cfg.Coordination.Speed)
	pipelineOpts.WorkerThreads = cfg.Coordination.WorkerThreads
	pipelineOpts.WorkerChunkSize = cfg.Coordination.WorkerChunkSize

	worker := &orchestrator.Worker{
		Store:   badgerStore,
		Queue:   queue,
		Hub:     hub,
		Options: pipelineOpts,
	}

	server := &orchestrator.Server{
		Store:   badgerStore,
		Breaker: breaker,
		Queue:   queue,
		Hub:     hub,
		Middleware: orchestrator.MiddlewareConfig{
			CORSOrigins:       cfg.Security.CORSOrigins,
			RateLimitRequests: cfg.Security.RateLimitReqs,
			RateLimitWindow:   cfg.Security.RateLimitWindow,
			RateLimitDisabled: cfg.Security.RateLimitDisabled,
		},
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree := orchestrator.NewSupervisorTree(slogLogger, orchestrator.DefaultTreeConfig())

	tree.AddWorker(orchestrator.NewWorkerService(worker, "job-worker"))
	tree.AddMessagingService(orchestrator.NewHubService(hub))
	tree.AddAPIService(orchestrator.NewHTTPService(httpServer, 10*time.Second))

	logging.Info().Str("addr", httpServer.Addr).Msg("HTTP API, job worker, and status hub added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
