// Package transport implements the connect/send/recv/accept/disconnect
// suspension points of spec.md §4.4/§5 over github.com/gorilla/websocket,
// the only WebSocket library present (indirectly) in the teacher's own
// go.mod. No teacher or pack source file calls gorilla/websocket directly;
// the transport's shape is grounded on
// original_source/src/io/network/transport.rs's ClientTransport/
// ServerTransport traits instead, with the library supplying the concrete
// wire framing.
package transport

import "context"

// ClientTransport is the connection a Client or an accepted Server peer
// sends/receives framed messages over.
type ClientTransport interface {
	// Connect dials address.
	Connect(ctx context.Context, address string) error
	// Send writes one framed message.
	Send(ctx context.Context, data []byte) error
	// Recv blocks for the next framed message.
	Recv(ctx context.Context) ([]byte, error)
	// Disconnect closes the connection.
	Disconnect() error
}

// ServerTransport listens on one or more addresses and yields accepted
// peer connections.
type ServerTransport interface {
	// Listen binds addresses.
	Listen(ctx context.Context, addresses []string) error
	// Accept blocks for the next incoming connection.
	Accept(ctx context.Context) (ClientTransport, error)
	// Close shuts the listener down, unblocking any pending Accept.
	Close() error
}
