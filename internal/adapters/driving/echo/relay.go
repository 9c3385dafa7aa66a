// Package echo runs a WebSocket relay that greets each client and echoes
// every text message back with a prefix. It is used to check connectivity
// from the client side.
package echo

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/custodia-labs/ideapad/internal/logger"
)

// Greeting is sent once when a client connects.
const Greeting = "Hello! You are connected to the WebSocket server."

// ReplyPrefix precedes every echoed message.
const ReplyPrefix = "Server received: "

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 64 << 10
)

// Relay accepts WebSocket connections and echoes messages.
type Relay struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewRelay creates a relay. Any origin may connect.
func NewRelay() *Relay {
	return &Relay{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Clients returns the number of connected clients.
func (r *Relay) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		logger.Warn("echo: upgrade failed: %v", err)
		return
	}
	r.track(conn, true)
	defer func() {
		r.track(conn, false)
		conn.Close()
		logger.Info("echo: client disconnected")
	}()
	logger.Info("echo: client connected from %s", req.RemoteAddr)

	conn.SetReadLimit(maxMessageSize)
	if err := r.write(conn, websocket.TextMessage, []byte(Greeting)); err != nil {
		return
	}

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("echo: read: %v", err)
			}
			return
		}
		logger.Debug("echo: received %q", msg)
		reply := append([]byte(ReplyPrefix), msg...)
		if err := r.write(conn, kind, reply); err != nil {
			return
		}
	}
}

func (r *Relay) write(conn *websocket.Conn, kind int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(kind, data); err != nil {
		logger.Warn("echo: write: %v", err)
		return err
	}
	return nil
}

func (r *Relay) track(conn *websocket.Conn, add bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if add {
		r.conns[conn] = struct{}{}
	} else {
		delete(r.conns, conn)
	}
}

// closeAll sends a close frame to every connected client.
func (r *Relay) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range r.conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
}

// ListenAndServe serves the relay on addr until ctx is cancelled.
func (r *Relay) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("echo: WebSocket server running on ws://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		r.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
