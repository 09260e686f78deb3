// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
)

// EmbeddedServer wraps a self-contained NATS JetStream instance, for
// single-process deployments with no external message broker. The
// teacher gates this behind a "nats" build tag since NATS is optional
// there; here the job queue is load-bearing so it's always compiled in.
type EmbeddedServer struct {
	server    *natsserver.Server
	clientURL string
}

// NewEmbeddedServer starts an embedded NATS server listening on the
// host:port parsed out of clientURL (e.g. "nats://127.0.0.1:4222"),
// persisting JetStream state under storeDir.
func NewEmbeddedServer(clientURL, storeDir string) (*EmbeddedServer, error) {
	host, port, err := splitHostPort(clientURL)
	if err != nil {
		return nil, fmt.Errorf("parse nats url: %w", err)
	}

	opts := &natsserver.Options{
		ServerName: "coordination-detector",
		Host:       host,
		Port:       port,
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: false,
		MaxPayload: 8 * 1024 * 1024,
	}

	ns, err := natsserver.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}
	ns.ConfigureLogger()

	go ns.Start()
	if !ns.ReadyForConnections(30 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("nats server not ready within timeout")
	}

	return &EmbeddedServer{server: ns, clientURL: ns.ClientURL()}, nil
}

// ClientURL returns the URL clients should connect to.
func (s *EmbeddedServer) ClientURL() string {
	return s.clientURL
}

// Shutdown gracefully stops the server, waiting for in-flight messages.
func (s *EmbeddedServer) Shutdown() {
	s.server.Shutdown()
	s.server.WaitForShutdown()
}

func splitHostPort(rawURL string) (string, int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, err
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		return u.Host, natsserver.DEFAULT_PORT, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, natsserver.DEFAULT_PORT, nil
	}
	return host, port, nil
}
