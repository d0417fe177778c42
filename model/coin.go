package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// Coin represents a past Transaction Output, referenceable as an Input's
// spend source (spec.md §3.2). Grounded on
// original_source/src/model/coin.rs.
type Coin struct {
	ID        Digest    `json:"id"`
	Meta      meta.Meta `json:"meta"`
	TxID      Digest    `json:"tx_id"`
	OutIdx    uint64    `json:"out_idx"`
	OutAmount Amount    `json:"out_amount"`
}

// NewCoin returns a zero-value Coin with default Meta, ready for the builder
// chain.
func NewCoin() Coin {
	c := Coin{Meta: meta.Default()}
	c.refreshSize()
	return c
}

func (c *Coin) refreshSize() {
	size, _ := jsonSize(c)
	c.Meta.SetSize(size)
}

// WithMeta sets the Coin's metadata.
func (c Coin) WithMeta(m meta.Meta) (Coin, error) {
	if err := m.Check(); err != nil {
		return Coin{}, err
	}
	c.Meta = m
	c.refreshSize()
	return c, nil
}

// WithOutputData sets the Output this Coin references.
func (c Coin) WithOutputData(txID Digest, outIdx uint64, outAmount Amount) (Coin, error) {
	c.TxID = txID
	c.OutIdx = outIdx
	c.OutAmount = outAmount
	c.refreshSize()
	return c, nil
}

// Digest computes the Coin's content digest: hash of the Coin serialized
// with ID zeroed (spec.md §4.1 "hash-with-id=0").
func (c Coin) Digest(h capability.Hasher) (Digest, error) {
	preimage := c
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

// VerifyDigest reports whether c.ID matches c's computed digest under h.
func (c Coin) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := c.Digest(h)
	if err != nil {
		return false, err
	}
	return want == c.ID, nil
}

// CheckDigest is VerifyDigest mapped onto ErrInvalidDigest.
func (c Coin) CheckDigest(h capability.Hasher) error {
	ok, err := c.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

// Finalize seals c: computes and sets ID, refreshes size, and validates
// structural invariants.
func (c Coin) Finalize(h capability.Hasher) (Coin, error) {
	id, err := c.Digest(h)
	if err != nil {
		return Coin{}, err
	}
	c.ID = id
	c.refreshSize()

	if err := c.Check(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

// Check validates c's structural invariants independent of any capability.
func (c Coin) Check() error {
	size, err := jsonSize(&c)
	if err != nil {
		return err
	}
	if c.Meta.Size != size {
		return ErrInvalidSize
	}
	return c.Meta.Check()
}

func jsonSize(v any) (uint64, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return uint64(len(b)), nil
}

// StorePrefix namespaces Coin records in a Store (spec.md §4.3 Storable
// binding); 8-byte little-endian type code, as in
// original_source/src/model/coin.rs's COIN_CODE.
func (Coin) StorePrefix() []byte {
	return typeCodePrefix(0)
}

// StoreKey is the Coin's id.
func (c Coin) StoreKey() []byte {
	return c.ID[:]
}

// StoreValue is the Coin's canonical JSON encoding.
func (c Coin) StoreValue() ([]byte, error) {
	return json.Marshal(c)
}

func typeCodePrefix(code uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(code >> (8 * i))
	}
	return b
}
