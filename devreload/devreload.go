// Copyright 2026 The roc-package-web-app-react Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package devreload tells browsers in development to reload pages over
// WebSocket connections whenever page templates change.
package devreload

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Message types sent to browsers.
const (
	TypeReload = "reload"
	TypeError  = "error"
)

// Message is sent to browsers as JSON text message.
type Message struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

// Hub accepts WebSocket connections from browsers and broadcasts reload
// messages to them.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]struct{}
	writeMu  sync.Mutex // serializes writes, as connections allow only one writer.
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger; it defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// NewHub returns a new Hub without any connected clients.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients: map[*websocket.Conn]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request to a WebSocket connection and keeps it
// registered until the browser goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Msg("reload connection upgrade failed")
		return
	}
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug().Str("remote", r.RemoteAddr).Msg("reload client connected")

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
	h.logger.Debug().Str("remote", r.RemoteAddr).Msg("reload client disconnected")
}

// NotifyReload tells all connected browsers to reload.
func (h *Hub) NotifyReload() {
	h.broadcast(Message{Type: TypeReload})
}

// NotifyError tells all connected browsers about a failed reload.
func (h *Hub) NotifyError(err error) {
	h.broadcast(Message{Type: TypeError, Error: err.Error()})
}

// ClientCount returns the number of connected browsers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all browsers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug().Err(err).Msg("dropping reload client")
			h.remove(conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}
