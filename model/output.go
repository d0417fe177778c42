package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// Output represents the output of a Transaction (spec.md §3.2). Grounded on
// original_source/src/model/output.rs.
type Output struct {
	ID      Digest    `json:"id"`
	Meta    meta.Meta `json:"meta"`
	Amount  Amount    `json:"amount"`
	Payload Payload   `json:"payload,omitempty"`
}

// NewOutput returns a zero-value Output with default Meta.
func NewOutput() Output {
	o := Output{Meta: meta.Default()}
	o.refreshSize()
	return o
}

func (o *Output) refreshSize() {
	size, _ := jsonSize(o)
	o.Meta.SetSize(size)
}

func (o Output) WithMeta(m meta.Meta) (Output, error) {
	if err := m.Check(); err != nil {
		return Output{}, err
	}
	o.Meta = m
	o.refreshSize()
	return o, nil
}

// WithAmount sets the Output's amount; amount must be non-negative, which
// uint64 guarantees by construction (spec.md §3.2 "amount >= 0").
func (o Output) WithAmount(amount Amount) (Output, error) {
	o.Amount = amount
	o.refreshSize()
	return o, nil
}

func (o Output) WithPayload(payload Payload) (Output, error) {
	o.Payload = payload
	o.refreshSize()
	return o, nil
}

func (o Output) Digest(h capability.Hasher) (Digest, error) {
	preimage := o
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

func (o Output) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := o.Digest(h)
	if err != nil {
		return false, err
	}
	return want == o.ID, nil
}

func (o Output) CheckDigest(h capability.Hasher) error {
	ok, err := o.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

func (o Output) Finalize(h capability.Hasher) (Output, error) {
	id, err := o.Digest(h)
	if err != nil {
		return Output{}, err
	}
	o.ID = id
	o.refreshSize()
	if err := o.Check(); err != nil {
		return Output{}, err
	}
	return o, nil
}

func (o Output) Check() error {
	size, err := jsonSize(&o)
	if err != nil {
		return err
	}
	if o.Meta.Size != size {
		return ErrInvalidSize
	}
	return o.Meta.Check()
}

func (Output) StorePrefix() []byte { return typeCodePrefix(1) }
func (o Output) StoreKey() []byte  { return o.ID[:] }
func (o Output) StoreValue() ([]byte, error) {
	return json.Marshal(o)
}
