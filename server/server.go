package server

import (
	"context"
	"errors"
	"sync"

	"github.com/certen/ledger-core/codec"
	"github.com/certen/ledger-core/protocol"
	"github.com/certen/ledger-core/store"
	"github.com/certen/ledger-core/transport"
)

// ErrNoThreadLimit is returned by Serve when ThreadLimit is zero.
var ErrNoThreadLimit = errors.New("server: thread limit must be greater than zero")

// Server binds a ServerTransport and dispatches every accepted connection's
// requests through a Router to a Handler, backed by a single Store.
type Server struct {
	Transport   transport.ServerTransport
	Store       *store.Store
	Handler     Handler
	Router      *Router
	ThreadLimit uint64
	Metrics     *Metrics
}

// New returns a Server with a fresh Metrics registry.
func New(t transport.ServerTransport, st *store.Store, h Handler, r *Router, threadLimit uint64) *Server {
	return &Server{
		Transport:   t,
		Store:       st,
		Handler:     h,
		Router:      r,
		ThreadLimit: threadLimit,
		Metrics:     NewMetrics(),
	}
}

// Serve binds addresses and serves connections until ctx is cancelled or
// Transport.Close is called. Each accepted connection runs on its own
// goroutine; request routing itself is bounded by a ThreadLimit-sized
// semaphore shared across every connection, so no more than ThreadLimit
// requests are in flight concurrently. Store.Lock/Unlock brackets each
// routed request, so only one of those in-flight requests actually
// touches the Store at a time -- matching the store.lock() held across
// the whole router.route(...) call in
// original_source/src/io/network/server/server.rs, which makes one
// request a serializable unit against the store (spec.md §5).
//
// Grounded on original_source/src/io/network/server/server.rs's serve
// method, whose threads_num-gated accept loop is the same idea; the
// source's thread::spawn followed immediately by .join() blocks the
// accept loop until each spawned request finishes, so threads_num there
// never exceeds 1 in practice despite the counter and limit. Serve
// reworks the concurrency into a genuine bounded worker pool while
// keeping the store-wide serialization the source relies on (see
// DESIGN.md).
func (s *Server) Serve(ctx context.Context, addresses []string) error {
	if s.ThreadLimit == 0 {
		return ErrNoThreadLimit
	}
	if err := s.Transport.Listen(ctx, addresses); err != nil {
		return err
	}

	sem := make(chan struct{}, s.ThreadLimit)
	var wg sync.WaitGroup

	for {
		conn, err := s.Transport.Accept(ctx)
		if err != nil {
			wg.Wait()
			if errors.Is(err, context.Canceled) || errors.Is(err, transport.ErrClosed) {
				return nil
			}
			return err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveConn(ctx, conn, sem)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn transport.ClientTransport, sem chan struct{}) {
	defer conn.Disconnect()
	for {
		raw, err := conn.Recv(ctx)
		if err != nil {
			return
		}

		sem <- struct{}{}
		resp, ok := s.handleOne(raw)
		<-sem
		if !ok {
			return
		}

		data, err := codec.ToBytes(resp)
		if err != nil {
			return
		}
		if err := conn.Send(ctx, data); err != nil {
			return
		}
	}
}

// handleOne decodes, routes, and records metrics for a single raw
// request frame. The bool return is false when the frame itself could not
// be decoded or routed at all (a protocol violation, not a handler-level
// error -- those surface as an Error-resource Response, not here).
//
// s.Store.Lock is held across the entire Router.Route call, so the
// request's session check, handler dispatch, and any backend reads/writes
// it performs all happen as one serializable unit against the Store, even
// though multiple workers may be decoding/encoding frames concurrently.
func (s *Server) handleOne(raw []byte) (protocol.Response, bool) {
	var req protocol.Request
	if err := codec.FromBytes(raw, &req); err != nil {
		return protocol.Response{}, false
	}

	s.Metrics.workerStarted()
	s.Store.Lock()
	resp, err := s.Router.Route(s.Store, s.Handler, req)
	s.Store.Unlock()
	s.Metrics.workerFinished()
	if err != nil {
		return protocol.Response{}, false
	}

	s.Metrics.observe(req.Message.Method, resp, nil)
	return resp, true
}
