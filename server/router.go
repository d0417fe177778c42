package server

import (
	"errors"

	"github.com/certen/ledger-core/protocol"
	"github.com/certen/ledger-core/store"
)

// ErrUnknownMethod is returned for a Method the router has no case for.
var ErrUnknownMethod = errors.New("server: unknown method")

// Middleware runs before dispatch, letting a router rewrite or reject a
// request (e.g. rate limiting, auditing). Middlewares run in order; the
// first error short-circuits the chain.
type Middleware func(st *store.Store, req protocol.Request) (protocol.Request, error)

// Router dispatches a checked Request to the matching Handler method and
// verifies the response's method echoes the request's (invariant R1).
// Grounded on original_source/src/io/network/server/router.rs's route
// method and its per-Method response.method() check.
type Router struct {
	Middlewares []Middleware
}

// NewRouter returns a Router running middlewares, in order, before every
// dispatch.
func NewRouter(middlewares ...Middleware) *Router {
	return &Router{Middlewares: middlewares}
}

// Route validates req, runs the middleware chain, dispatches to handler,
// and checks the resulting response's method against req's.
func (r *Router) Route(st *store.Store, handler Handler, req protocol.Request) (protocol.Response, error) {
	if err := req.Message.Check(); err != nil {
		return protocol.Response{}, err
	}

	for _, mw := range r.Middlewares {
		var err error
		req, err = mw(st, req)
		if err != nil {
			return protocol.Response{}, err
		}
	}

	handlerMWs, err := handler.Middlewares(st, req)
	if err != nil {
		return protocol.Response{}, err
	}
	for _, mw := range handlerMWs {
		req, err = mw(st, req)
		if err != nil {
			return protocol.Response{}, err
		}
	}

	var resp protocol.Response
	switch req.Message.Method {
	case protocol.MethodPing:
		resp, err = handler.HandlePing(st, req)
	case protocol.MethodSession:
		resp, err = handler.HandleSession(st, req)
	case protocol.MethodCount:
		resp, err = handler.HandleCount(st, req)
	case protocol.MethodList:
		resp, err = handler.HandleList(st, req)
	case protocol.MethodLookup:
		resp, err = handler.HandleLookup(st, req)
	case protocol.MethodGet:
		resp, err = handler.HandleGet(st, req)
	case protocol.MethodCreate:
		resp, err = handler.HandleCreate(st, req)
	case protocol.MethodUpdate:
		resp, err = handler.HandleUpdate(st, req)
	case protocol.MethodUpsert:
		resp, err = handler.HandleUpsert(st, req)
	case protocol.MethodDelete:
		resp, err = handler.HandleDelete(st, req)
	case protocol.MethodCustom:
		resp, err = handler.HandleCustom(st, req)
	default:
		return protocol.Response{}, ErrUnknownMethod
	}
	if err != nil {
		return errorResponse(req, err), nil
	}

	if err := resp.Message.Check(); err != nil {
		return protocol.Response{}, err
	}
	if err := protocol.CheckMethodMatch(req, resp); err != nil {
		return protocol.Response{}, err
	}
	return resp, nil
}
