// Package api exposes the pipeline over a WebSocket endpoint: one build
// request per connection, progress and result messages streamed back.
package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/scenefold/scenefold/internal/imagegen"
	"github.com/scenefold/scenefold/internal/logger"
	"github.com/scenefold/scenefold/internal/notify"
	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/pipeline"
	"github.com/scenefold/scenefold/internal/scene"
	"github.com/scenefold/scenefold/internal/store"
)

// BuildRequest is the single message a client sends after connecting.
type BuildRequest struct {
	SceneID    string               `json:"scene_id,omitempty"`
	Operations []pipeline.Operation `json:"operations"`
}

// Server upgrades build requests to WebSocket sessions and runs the
// pipeline with the socket as its progress channel.
type Server struct {
	registry *op.Registry
	store    store.Store
	fonts    scene.FontResolver
	images   imagegen.Generator
	render   pipeline.Renderer
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewServer wires a Server from the pipeline's collaborators.
func NewServer(registry *op.Registry, st store.Store, fonts scene.FontResolver, images imagegen.Generator, render pipeline.Renderer, log *logger.Logger) *Server {
	return &Server{
		registry: registry,
		store:    st,
		fonts:    fonts,
		images:   images,
		render:   render,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Register installs the server's routes on a mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/build", s.handleBuild)
	mux.HandleFunc("/api/health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed")
		return
	}
	defer conn.Close()

	var req BuildRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.log.Error(err, "malformed build request")
		_ = conn.WriteJSON(notify.Message{Type: notify.TypeFailed, Error: "malformed build request"})
		return
	}

	sceneID := req.SceneID
	if sceneID == "" {
		sceneID = uuid.NewString()
	}

	notifier := &socketNotifier{conn: conn}
	runner := pipeline.NewRunner(s.registry, s.store, notifier, s.fonts, s.images, s.render, s.log)

	// Failures are already published to the socket by the runner.
	if _, err := runner.Run(r.Context(), sceneID, req.Operations); err != nil {
		s.log.WithFields(map[string]any{"scene_id": sceneID}).Error(err, "build failed")
	}
}

// socketNotifier serializes pipeline messages onto one connection.
// gorilla/websocket allows a single concurrent writer, hence the mutex.
type socketNotifier struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (n *socketNotifier) Publish(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_ = n.conn.WriteJSON(msg)
}
