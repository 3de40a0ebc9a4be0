package langserver

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	glspserver "github.com/tliron/glsp/server"
	"go.uber.org/zap"

	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/features"
)

// Server owns the one Registry and worker pool a client connection
// shares, and exposes the two transports glslls speaks: stdio, for an
// editor spawning the binary directly, and WebSocket, for a browser or
// remote-tooling client.
type Server struct {
	registry *Registry
	cfg      features.Config
	logger   *zap.SugaredLogger
	includes *IncludeWatcher
}

// NewServer builds the shared registry against preamble and inv, ready
// to serve either transport. Every connection gets its own GLSPHandler
// but shares this one registry and Compiler, matching "one Compiler
// per workspace". A failure to start the include watcher is logged and
// otherwise ignored: recompilation still happens on every didChange,
// the watcher only adds the "someone edited a header I don't own" case.
func NewServer(ctx context.Context, cfg features.Config, preamble compiler.PreambleSource, inv compiler.Invocation, workers int, logger *zap.SugaredLogger) *Server {
	pool := NewPool(ctx, workers)
	registry := NewRegistry(pool, preamble, inv)
	s := &Server{registry: registry, cfg: cfg, logger: logger}

	iw, err := NewIncludeWatcher(registry, logger)
	if err != nil {
		logger.Warnw("include watcher disabled", "error", err)
		return s
	}
	s.includes = iw
	registry.OnCompiled(func(bc *BackgroundCompilation) {
		iw.NoteIncludes(bc.includePaths())
	})
	return s
}

// Close releases resources that outlive any single connection, namely
// the include watcher's fsnotify handle.
func (s *Server) Close() error {
	if s.includes != nil {
		return s.includes.Close()
	}
	return nil
}

// ServeStdio runs the protocol over stdin/stdout until the client
// disconnects or sends exit, blocking the calling goroutine.
func (s *Server) ServeStdio() error {
	h := NewGLSPHandler(s.registry, s.cfg, s.logger)
	protoHandler := h.Build()
	glspSrv := glspserver.NewServer(&protoHandler, "glslls", false)
	return glspSrv.RunStdio()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades an HTTP request to a WebSocket and serves one
// LSP connection over it, one GLSPHandler per connection sharing the
// server's Registry. Blocks until the connection closes.
func (s *Server) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("failed to upgrade websocket", "error", err, "remote", r.RemoteAddr)
		return
	}

	sessionID := uuid.NewString()
	sessionLogger := s.logger.With("session", sessionID)
	h := NewGLSPHandler(s.registry, s.cfg, sessionLogger)
	protoHandler := h.Build()
	glspSrv := glspserver.NewServer(&protoHandler, "glslls", false)

	sessionLogger.Infow("serving glslls over websocket", "remote", r.RemoteAddr)
	glspSrv.ServeWebSocket(conn)
	sessionLogger.Infow("websocket connection closed", "remote", r.RemoteAddr)
}
