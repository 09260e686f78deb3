// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"sync"

	"github.com/tomtom215/coordination-detector/internal/logging"
)

// StatusEvent is pushed to every connected client whenever a job's
// lifecycle state changes.
type StatusEvent struct {
	JobID  string `json:"job_id"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Hub fans job-status events out to every connected WebSocket client,
// adapted from the teacher's playback-event hub: the message payload is a
// StatusEvent instead of a playback event, everything else — the
// register/unregister/broadcast channel trio and its priority-select
// loop — is unchanged in shape.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan StatusEvent
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan StatusEvent, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Broadcast pushes a status event to every connected client, dropping it
// for any client whose send buffer is full rather than blocking the hub.
func (h *Hub) Broadcast(event StatusEvent) {
	select {
	case h.broadcast <- event:
	default:
		logging.Warn().Str("job_id", event.JobID).Msg("job status broadcast buffer full, dropping event")
	}
}

// Run processes lifecycle and broadcast events until ctx is canceled.
// Client registration/unregistration is given priority over broadcasts so
// that client bookkeeping never lags behind a burst of status updates.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.removeClient(client)
		default:
		}

		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.send(event)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) send(event StatusEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			logging.Warn().Uint64("client_id", client.id).Msg("client send buffer full, dropping event")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
