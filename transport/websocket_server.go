package transport

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned by Accept after Close has been called.
var ErrClosed = errors.New("transport: server transport closed")

// WebSocketServerTransport is the default ServerTransport: an HTTP server
// per listen address that upgrades every incoming request to a WebSocket
// connection and hands it to Accept.
type WebSocketServerTransport struct {
	upgrader websocket.Upgrader
	servers  []*http.Server
	addrs    []string
	accepted chan *WebSocketClientTransport
	errs     chan error
	closed   chan struct{}
}

// NewWebSocketServerTransport returns a ServerTransport ready to Listen.
func NewWebSocketServerTransport() *WebSocketServerTransport {
	return &WebSocketServerTransport{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		accepted: make(chan *WebSocketClientTransport),
		errs:     make(chan error, 1),
		closed:   make(chan struct{}),
	}
}

func (t *WebSocketServerTransport) Listen(ctx context.Context, addresses []string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", t.handleUpgrade)

	for _, addr := range addresses {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		srv := &http.Server{Handler: mux}
		t.servers = append(t.servers, srv)
		t.addrs = append(t.addrs, ln.Addr().String())

		go func(ln net.Listener, srv *http.Server) {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				select {
				case t.errs <- err:
				default:
				}
			}
		}(ln, srv)
	}
	return nil
}

func (t *WebSocketServerTransport) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	select {
	case t.accepted <- newWebSocketClientTransportFromConn(conn):
	case <-t.closed:
		conn.Close()
	}
}

// Addrs returns the actual bound address for every address passed to
// Listen, in order; useful when an ephemeral port (":0") was requested.
func (t *WebSocketServerTransport) Addrs() []string {
	return t.addrs
}

func (t *WebSocketServerTransport) Accept(ctx context.Context) (ClientTransport, error) {
	select {
	case conn := <-t.accepted:
		return conn, nil
	case err := <-t.errs:
		return nil, err
	case <-t.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *WebSocketServerTransport) Close() error {
	select {
	case <-t.closed:
		return nil
	default:
		close(t.closed)
	}
	var firstErr error
	for _, srv := range t.servers {
		if err := srv.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
