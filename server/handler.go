package server

import (
	"github.com/certen/ledger-core/protocol"
	"github.com/certen/ledger-core/store"
)

// Handler is implemented by whatever serves the ledger's request methods.
// Grounded on original_source/src/io/network/server/handler.rs's
// Handler trait, one handle_* method per Method variant.
type Handler interface {
	// Middlewares returns handler-level middleware, run after the
	// router's own chain but before dispatch (spec.md §4.4 step 3;
	// original_source/src/io/network/server/router.rs's
	// handler.middlewares(store, params) pass). The zero-value
	// implementation -- returning (nil, nil) -- is fine for handlers
	// with nothing to add.
	Middlewares(st *store.Store, req protocol.Request) ([]Middleware, error)

	HandlePing(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleSession(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleCount(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleList(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleLookup(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleGet(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleCreate(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleUpdate(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleUpsert(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleDelete(st *store.Store, req protocol.Request) (protocol.Response, error)
	HandleCustom(st *store.Store, req protocol.Request) (protocol.Response, error)
}

// errorResponse builds a Response carrying resource=Error, the universal
// reply for any failed handler call (spec.md §4.4).
func errorResponse(req protocol.Request, cause error) protocol.Response {
	msg := req.Message
	msg.Resource = protocol.ResourceError
	msg.Payload = []byte(cause.Error())
	return protocol.Response{Message: msg}
}
