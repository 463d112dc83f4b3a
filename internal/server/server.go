// Package server provides the live dashboard used by `webpulse watch
// --serve`. It serves the latest report as HTML and JSON and pushes every
// new report to connected browsers over a websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/middleware"
	"github.com/conneroisu/webpulse/internal/report"
)

// Client represents a WebSocket client
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// Options configure a dashboard server.
type Options struct {
	// Addr is the listen address, host:port.
	Addr string
	// AllowedOrigins are extra websocket origins, as hosts or URLs. The
	// listen address is always allowed.
	AllowedOrigins []string
	Logger         logging.Logger
}

// Server serves the dashboard
type Server struct {
	addr         string
	origins      []string
	logger       logging.Logger
	httpServer   *http.Server
	serverMutex  sync.RWMutex
	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn
	current      *report.Report
	reportMutex  sync.RWMutex
	done         chan struct{}
	shutdownOnce sync.Once
}

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string         `json:"type"`
	Report    *report.Report `json:"report,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// New creates a dashboard server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Server{
		addr:       opts.Addr,
		origins:    allowedHosts(opts.Addr, opts.AllowedOrigins),
		logger:     logger.WithComponent("server"),
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/fragment", s.handleFragment)
	mux.HandleFunc("/", s.handleIndex)

	return middleware.New(
		middleware.Recover(s.logger),
		middleware.Logging(s.logger),
		middleware.SecurityHeaders(),
	).Apply(mux)
}

// Start listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go s.runWebSocketHub(ctx)

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(shutdownCtx, err, "Dashboard shutdown failed")
		}
	}()

	s.logger.Info(ctx, "Dashboard listening", "addr", listener.Addr().String())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Publish stores r as the current report and pushes it to every connected
// client.
func (s *Server) Publish(r *report.Report) error {
	s.reportMutex.Lock()
	s.current = r
	s.reportMutex.Unlock()

	message, err := encodeUpdate(r)
	if err != nil {
		return err
	}

	select {
	case s.broadcast <- message:
	default:
		s.logger.Debug(context.Background(), "Dropping report update, broadcast queue full")
	}

	return nil
}

func encodeUpdate(r *report.Report) ([]byte, error) {
	message, err := json.Marshal(UpdateMessage{
		Type:      "report",
		Report:    r,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return message, nil
}

// Current returns the last published report, or nil.
func (s *Server) Current() *report.Report {
	s.reportMutex.RLock()
	defer s.reportMutex.RUnlock()
	return s.current
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// Shutdown closes every websocket connection and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Debug(ctx, "Shutting down dashboard")
		close(s.done)

		s.clientsMutex.Lock()
		// Each writePump closes its connection once send is closed.
		for _, client := range s.clients {
			close(client.send)
		}
		s.clients = make(map[*websocket.Conn]*Client)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}
