package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// Transaction spends zero or more Inputs and creates zero or more Outputs
// (spec.md §3.2). InputsLen/OutputsLen are maintained redundantly alongside
// Inputs/Outputs, and Check enforces the length-discipline invariant by
// comparing them against the slice lengths, matching
// original_source/src/model/transaction.rs's separate *_len fields.
type Transaction struct {
	ID         Digest    `json:"id"`
	Meta       meta.Meta `json:"meta"`
	Inputs     []Input   `json:"inputs"`
	InputsLen  uint64    `json:"inputs_len"`
	Outputs    []Output  `json:"outputs"`
	OutputsLen uint64    `json:"outputs_len"`
	Payload    Payload   `json:"payload,omitempty"`
}

func NewTransaction() Transaction {
	t := Transaction{Meta: meta.Default()}
	t.refreshSize()
	return t
}

func (t *Transaction) refreshSize() {
	size, _ := jsonSize(t)
	t.Meta.SetSize(size)
}

func (t Transaction) WithMeta(m meta.Meta) (Transaction, error) {
	if err := m.Check(); err != nil {
		return Transaction{}, err
	}
	t.Meta = m
	t.refreshSize()
	return t, nil
}

// WithInputs replaces t's inputs and keeps InputsLen in sync.
func (t Transaction) WithInputs(inputs []Input) (Transaction, error) {
	t.Inputs = inputs
	t.InputsLen = uint64(len(inputs))
	t.refreshSize()
	return t, nil
}

// WithOutputs replaces t's outputs and keeps OutputsLen in sync.
func (t Transaction) WithOutputs(outputs []Output) (Transaction, error) {
	t.Outputs = outputs
	t.OutputsLen = uint64(len(outputs))
	t.refreshSize()
	return t, nil
}

func (t Transaction) WithPayload(payload Payload) (Transaction, error) {
	t.Payload = payload
	t.refreshSize()
	return t, nil
}

func (t Transaction) Digest(h capability.Hasher) (Digest, error) {
	preimage := t
	preimage.ID = Digest{}
	preimage.refreshSize()

	msg, err := json.Marshal(preimage)
	if err != nil {
		return Digest{}, err
	}
	d, err := h.Digest(msg)
	if err != nil {
		return Digest{}, err
	}
	var out Digest
	if len(d) != len(out) {
		return Digest{}, ErrInvalidDigest
	}
	copy(out[:], d)
	return out, nil
}

func (t Transaction) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := t.Digest(h)
	if err != nil {
		return false, err
	}
	return want == t.ID, nil
}

func (t Transaction) CheckDigest(h capability.Hasher) error {
	ok, err := t.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

// Finalize validates every input's signature and sub-digest, then seals t:
// computes and sets ID, refreshes size, and validates structural invariants
// (spec.md §4.2 Transaction finalization).
func (t Transaction) Finalize(h capability.Hasher, s capability.Signer) (Transaction, error) {
	for i := range t.Inputs {
		if err := t.Inputs[i].CheckSignature(s); err != nil {
			return Transaction{}, err
		}
		if err := t.Inputs[i].CheckDigest(h); err != nil {
			return Transaction{}, err
		}
	}

	id, err := t.Digest(h)
	if err != nil {
		return Transaction{}, err
	}
	t.ID = id
	t.refreshSize()

	if err := t.Check(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Check validates t's structural invariants: serialized size matches Meta,
// Meta is well-formed, and the *_len fields agree with the actual slice
// lengths (spec.md §3.2 Transaction invariants).
func (t Transaction) Check() error {
	size, err := jsonSize(&t)
	if err != nil {
		return err
	}
	if t.Meta.Size != size {
		return ErrInvalidSize
	}
	if err := t.Meta.Check(); err != nil {
		return err
	}
	if t.InputsLen != uint64(len(t.Inputs)) {
		return ErrInvalidLength
	}
	if t.OutputsLen != uint64(len(t.Outputs)) {
		return ErrInvalidLength
	}
	for i := range t.Inputs {
		if err := t.Inputs[i].Check(); err != nil {
			return err
		}
	}
	for i := range t.Outputs {
		if err := t.Outputs[i].Check(); err != nil {
			return err
		}
	}
	return nil
}

func (Transaction) StorePrefix() []byte { return typeCodePrefix(3) }
func (t Transaction) StoreKey() []byte  { return t.ID[:] }
func (t Transaction) StoreValue() ([]byte, error) {
	return json.Marshal(t)
}
