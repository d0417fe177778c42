package protocol

import (
	"encoding/json"
	"errors"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
	"github.com/certen/ledger-core/model"
	"github.com/certen/ledger-core/store"
)

// ErrInvalidMethod is returned when a Message's Method/Resource pairing
// violates the matrix of spec.md §4.4, or when a Response's method doesn't
// match its Request's (invariant R1/R2).
var ErrInvalidMethod = errors.New("protocol: invalid method/resource pairing")

// Message is the unit exchanged over a ClientTransport/ServerTransport
// connection (spec.md §4.4). Grounded on
// original_source/src/io/network/message/message.rs.
type Message struct {
	ID        model.Digest  `json:"id"`
	Meta      meta.Meta     `json:"meta"`
	Nonce     uint64        `json:"nonce"`
	Session   store.Session `json:"session"`
	Sender    Node          `json:"sender"`
	Receivers []Node        `json:"receivers"`
	Method    Method        `json:"method"`
	Resource  Resource      `json:"resource"`
	Payload   []byte        `json:"payload,omitempty"`
}

// checkMethodResource enforces spec.md §4.4's method-resource matrix:
//   - Ping pairs only with None.
//   - Session pairs only with Session.
//   - Count/List/Lookup/Get/Create/Update/Upsert/Delete pair with any data
//     resource (Node..BlockGraph).
//   - Custom pairs with EvalParams/EvalResult (read) or
//     EvalMutParams/EvalMutResult (read-write).
//   - Error pairs with any method, since it is the universal reply carrier.
func checkMethodResource(method Method, resource Resource) error {
	if resource == ResourceError {
		return nil
	}

	switch method {
	case MethodPing:
		if resource != ResourceNone {
			return ErrInvalidMethod
		}
	case MethodSession:
		if resource != ResourceSession {
			return ErrInvalidMethod
		}
	case MethodCount, MethodList, MethodLookup, MethodGet,
		MethodCreate, MethodUpdate, MethodUpsert, MethodDelete:
		if !resource.isDataResource() {
			return ErrInvalidMethod
		}
	case MethodCustom:
		switch resource {
		case ResourceEvalParams, ResourceEvalResult, ResourceEvalMutParams, ResourceEvalMutResult:
		default:
			return ErrInvalidMethod
		}
	default:
		return ErrInvalidMethod
	}
	return nil
}

// NewMessage builds and validates a Message's method/resource pairing
// (invariant R2: mismatch is rejected at construction time).
func NewMessage(method Method, resource Resource, sender Node, receivers []Node, payload []byte) (Message, error) {
	if err := checkMethodResource(method, resource); err != nil {
		return Message{}, err
	}
	m := Message{
		Sender:    sender,
		Receivers: receivers,
		Method:    method,
		Resource:  resource,
		Payload:   payload,
		Meta:      meta.Default(),
	}
	m.refreshSize()
	return m, nil
}

// refreshSize sets Meta.Size to the length of m's JSON encoding. Size is
// itself part of that encoding, so it repeats until the two agree.
func (m *Message) refreshSize() {
	for {
		b, err := json.Marshal(m)
		if err != nil || uint64(len(b)) == m.Meta.Size {
			return
		}
		m.Meta.SetSize(uint64(len(b)))
	}
}

// WithSession attaches a session to the message.
func (m Message) WithSession(session store.Session) (Message, error) {
	m.Session = session
	m.refreshSize()
	return m, nil
}

// WithNonce sets the message's replay-protection nonce.
func (m Message) WithNonce(nonce uint64) (Message, error) {
	m.Nonce = nonce
	m.refreshSize()
	return m, nil
}

func (m Message) digestPreimage() ([]byte, error) {
	preimage := m
	preimage.ID = model.Digest{}
	preimage.refreshSize()
	return json.Marshal(preimage)
}

// Finalize computes and sets m.ID by hashing m with id cleared (the
// "hash-with-id=0" convention, spec.md §4.1), then validates the result.
func (m Message) Finalize(h capability.Hasher) (Message, error) {
	msg, err := m.digestPreimage()
	if err != nil {
		return Message{}, err
	}
	digest, err := h.Digest(msg)
	if err != nil {
		return Message{}, err
	}
	if len(digest) != len(m.ID) {
		return Message{}, model.ErrInvalidDigest
	}
	copy(m.ID[:], digest)
	m.refreshSize()

	if err := checkMethodResource(m.Method, m.Resource); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Check validates m's meta, size invariant, and method/resource pairing.
func (m Message) Check() error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := m.Meta.CheckSize(uint64(len(b))); err != nil {
		return err
	}
	if err := m.Meta.Check(); err != nil {
		return err
	}
	if err := m.Sender.Check(); err != nil {
		return err
	}
	for _, r := range m.Receivers {
		if err := r.Check(); err != nil {
			return err
		}
	}
	return checkMethodResource(m.Method, m.Resource)
}

// Request wraps a Message the Client sends.
type Request struct {
	Message Message `json:"message"`
}

// Response wraps a Message the Server returns.
type Response struct {
	Message Message `json:"message"`
}

// IsError reports whether the response carries an Error-resource payload.
func (r Response) IsError() bool {
	return r.Message.Resource == ResourceError
}

// CheckMethodMatch enforces invariant R1: a successful exchange's response
// method must equal its request's method.
func CheckMethodMatch(req Request, resp Response) error {
	if resp.IsError() {
		return nil
	}
	if req.Message.Method != resp.Message.Method {
		return ErrInvalidMethod
	}
	return nil
}
