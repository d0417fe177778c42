package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

// ErrNotConnected is returned by Send/Recv before Connect has succeeded.
var ErrNotConnected = errors.New("transport: not connected")

// WebSocketClientTransport is the default ClientTransport, a thin wrapper
// over a single gorilla/websocket connection.
type WebSocketClientTransport struct {
	dialer *websocket.Dialer
	conn   *websocket.Conn
}

// NewWebSocketClientTransport returns a ClientTransport ready to Connect.
func NewWebSocketClientTransport() *WebSocketClientTransport {
	return &WebSocketClientTransport{dialer: websocket.DefaultDialer}
}

func (t *WebSocketClientTransport) Connect(ctx context.Context, address string) error {
	conn, _, err := t.dialer.DialContext(ctx, address, http.Header{})
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

func (t *WebSocketClientTransport) Send(ctx context.Context, data []byte) error {
	if t.conn == nil {
		return ErrNotConnected
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(deadline)
	}
	return t.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (t *WebSocketClientTransport) Recv(ctx context.Context) ([]byte, error) {
	if t.conn == nil {
		return nil, ErrNotConnected
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(deadline)
	}
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *WebSocketClientTransport) Disconnect() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// newWebSocketClientTransportFromConn wraps an already-upgraded server-side
// connection, used by WebSocketServerTransport.Accept.
func newWebSocketClientTransportFromConn(conn *websocket.Conn) *WebSocketClientTransport {
	return &WebSocketClientTransport{conn: conn}
}
