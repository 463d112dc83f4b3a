package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/webpulse/internal/validation"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "WebSocket upgrade failed")
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 16),
		server: s,
	}

	// The current report is queued before the hub can see the client.
	if current := s.Current(); current != nil {
		if message, err := encodeUpdate(current); err == nil {
			client.send <- message
		}
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go client.writePump()
	go client.readPump()
}

// checkOrigin accepts browser origins whose host is the listen address or
// one of the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if err := validation.ValidateOrigin(origin, s.origins); err != nil {
		s.logger.Debug(r.Context(), "Rejected websocket origin", "origin", origin, "reason", err.Error())
		return false
	}
	return true
}

// allowedHosts builds the origin allow-list from the listen address and the
// configured origins.
func allowedHosts(addr string, origins []string) []string {
	var hosts []string
	add := func(host string) {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" {
			return
		}
		for _, existing := range hosts {
			if existing == host {
				return
			}
		}
		hosts = append(hosts, host)
	}

	if host, port, err := net.SplitHostPort(addr); err == nil {
		switch host {
		case "", "0.0.0.0", "::", "localhost", "127.0.0.1":
			add(net.JoinHostPort("localhost", port))
			add(net.JoinHostPort("127.0.0.1", port))
		default:
			add(net.JoinHostPort(host, port))
		}
	}

	for _, origin := range origins {
		if host, err := validation.OriginHost(origin); err == nil {
			add(host)
		}
	}

	return hosts
}

func (s *Server) runWebSocketHub(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case client := <-s.register:
			if client == nil || client.conn == nil {
				continue
			}
			s.clientsMutex.Lock()
			s.clients[client.conn] = client
			clientCount := len(s.clients)
			s.clientsMutex.Unlock()
			s.logger.Debug(ctx, "Client connected", "clients", clientCount)

		case conn := <-s.unregister:
			if conn == nil {
				continue
			}
			s.clientsMutex.Lock()
			if client, ok := s.clients[conn]; ok {
				delete(s.clients, conn)
				close(client.send)
				s.logger.Debug(ctx, "Client disconnected", "clients", len(s.clients))
			}
			s.clientsMutex.Unlock()

		case message := <-s.broadcast:
			s.clientsMutex.Lock()
			for conn, client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Slow clients are dropped.
					delete(s.clients, conn)
					close(client.send)
				}
			}
			s.clientsMutex.Unlock()
		}
	}
}

// readPump drains the connection until the peer goes away. Clients never
// send anything meaningful.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c.conn:
		case <-c.server.done:
		}
		c.conn.CloseNow()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		if _, _, err := c.conn.Read(context.Background()); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				c.server.logger.Debug(context.Background(), "WebSocket read ended", "error", err)
			}
			return
		}
	}
}

// writePump pumps messages to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	ctx := context.Background()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusNormalClosure, "")
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.server.logger.Debug(ctx, "WebSocket write failed", "error", err)
				c.conn.CloseNow()
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				c.conn.CloseNow()
				return
			}
		}
	}
}
