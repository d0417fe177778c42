package protocol

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/certen/ledger-core/meta"
)

// Node identifies a peer a Message can be addressed to or from (spec.md
// §4.4 "sender:Node, receivers:[Node]"). ID is a process-lifetime peer
// identifier, grounded on the teacher's pkg/attestation/service.go, which
// keys its bundle/request bookkeeping by uuid.UUID rather than by address
// string alone (addresses can be reused across reconnects; the uuid
// cannot).
type Node struct {
	ID      uuid.UUID `json:"id"`
	Meta    meta.Meta `json:"meta"`
	Address string    `json:"address"`
	Payload []byte    `json:"payload,omitempty"`
}

// NewNode returns a Node with a fresh identity for address.
func NewNode(address string, payload []byte) Node {
	n := Node{
		ID:      uuid.New(),
		Meta:    meta.Default(),
		Address: address,
		Payload: payload,
	}
	// Size is part of the encoding it measures, so repeat until they agree.
	for {
		b, err := json.Marshal(n)
		if err != nil || uint64(len(b)) == n.Meta.Size {
			break
		}
		n.Meta.SetSize(uint64(len(b)))
	}
	return n
}

func (n Node) Check() error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if n.Meta.Size != uint64(len(b)) {
		return meta.ErrInvalidSize
	}
	return n.Meta.Check()
}
