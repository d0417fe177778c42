package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// Input binds a Coin as a Transaction's spend source, authorized by a
// signature over the Input itself (spec.md §3.2). Grounded on
// original_source/src/model/input.rs.
type Input struct {
	ID        Digest    `json:"id"`
	Meta      meta.Meta `json:"meta"`
	Coin      Coin      `json:"coin"`
	Payload   Payload   `json:"payload,omitempty"`
	PublicKey PublicKey `json:"public_key"`
	Signature Signature `json:"signature"`
}

func NewInput() Input {
	i := Input{Meta: meta.Default()}
	i.refreshSize()
	return i
}

func (i *Input) refreshSize() {
	size, _ := jsonSize(i)
	i.Meta.SetSize(size)
}

func (i Input) WithMeta(m meta.Meta) (Input, error) {
	if err := m.Check(); err != nil {
		return Input{}, err
	}
	i.Meta = m
	i.refreshSize()
	return i, nil
}

func (i Input) WithCoin(c Coin) (Input, error) {
	i.Coin = c
	i.refreshSize()
	return i, nil
}

func (i Input) WithPayload(payload Payload) (Input, error) {
	i.Payload = payload
	i.refreshSize()
	return i, nil
}

// signPreimage returns the canonical bytes signed/verified: the Input with
// id, signature, and public_key zeroed except public_key which must be set
// to the signer's key so the signature commits to who signed it, matching
// spec.md §3.2 Input's invariant ("signature verifies over (self with
// id=default, signature=default, public_key set) under public_key").
func (i Input) signPreimage(pk PublicKey) ([]byte, error) {
	preimage := i
	preimage.ID = Digest{}
	preimage.Signature = Signature{}
	preimage.PublicKey = pk
	preimage.refreshSize()
	return json.Marshal(preimage)
}

// Sign signs the Input under sk (whose matching public key is pk) and sets
// both PublicKey and Signature.
func (i Input) Sign(s capability.Signer, pk []byte, sk []byte) (Input, error) {
	var pkArr PublicKey
	if len(pk) != len(pkArr) {
		return Input{}, ErrInvalidSignature
	}
	copy(pkArr[:], pk)

	msg, err := i.signPreimage(pkArr)
	if err != nil {
		return Input{}, err
	}
	sig, err := s.Sign(msg, sk)
	if err != nil {
		return Input{}, err
	}
	var sigArr Signature
	if len(sig) != len(sigArr) {
		return Input{}, ErrInvalidSignature
	}
	copy(sigArr[:], sig)

	i.PublicKey = pkArr
	i.Signature = sigArr
	i.refreshSize()
	return i, nil
}

// VerifySignature reports whether i.Signature is valid over i under
// i.PublicKey.
func (i Input) VerifySignature(s capability.Signer) (bool, error) {
	msg, err := i.signPreimage(i.PublicKey)
	if err != nil {
		return false, err
	}
	return s.Verify(msg, i.PublicKey[:], i.Signature[:]), nil
}

func (i Input) CheckSignature(s capability.Signer) error {
	ok, err := i.VerifySignature(s)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

func (i Input) Digest(h capability.Hasher) (Digest, error) {
	preimage := i
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

func (i Input) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := i.Digest(h)
	if err != nil {
		return false, err
	}
	return want == i.ID, nil
}

func (i Input) CheckDigest(h capability.Hasher) error {
	ok, err := i.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

// Finalize seals i: validates the signature, computes and sets ID, and
// runs structural Check.
func (i Input) Finalize(h capability.Hasher, s capability.Signer) (Input, error) {
	if err := i.CheckSignature(s); err != nil {
		return Input{}, err
	}

	id, err := i.Digest(h)
	if err != nil {
		return Input{}, err
	}
	i.ID = id
	i.refreshSize()

	if err := i.Check(); err != nil {
		return Input{}, err
	}
	return i, nil
}

func (i Input) Check() error {
	size, err := jsonSize(&i)
	if err != nil {
		return err
	}
	if i.Meta.Size != size {
		return ErrInvalidSize
	}
	if err := i.Meta.Check(); err != nil {
		return err
	}
	return i.Coin.Check()
}

func (Input) StorePrefix() []byte { return typeCodePrefix(2) }
func (i Input) StoreKey() []byte  { return i.ID[:] }
func (i Input) StoreValue() ([]byte, error) {
	return json.Marshal(i)
}
