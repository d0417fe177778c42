package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// Wallet tracks an account's spent and unspent Coins, optionally
// authenticated by a signature under an embedded public key (spec.md
// §3.2). The owner keys are optional: an unsigned Wallet is a plain
// bookkeeping record, while a signed one commits its holder to its
// contents. Grounded on original_source/src/model/wallet.rs.
type Wallet struct {
	ID         Digest     `json:"id"`
	Meta       meta.Meta  `json:"meta"`
	Spent      []Coin     `json:"spent"`
	SpentLen   uint64     `json:"spent_len"`
	Unspent    []Coin     `json:"unspent"`
	UnspentLen uint64     `json:"unspent_len"`
	Payload    Payload    `json:"payload,omitempty"`
	PublicKey  *PublicKey `json:"public_key,omitempty"`
	Signature  *Signature `json:"signature,omitempty"`
}

func NewWallet() Wallet {
	w := Wallet{Meta: meta.Default()}
	w.refreshSize()
	return w
}

func (w *Wallet) refreshSize() {
	size, _ := jsonSize(w)
	w.Meta.SetSize(size)
}

func (w Wallet) WithMeta(m meta.Meta) (Wallet, error) {
	if err := m.Check(); err != nil {
		return Wallet{}, err
	}
	w.Meta = m
	w.refreshSize()
	return w, nil
}

func (w Wallet) WithSpent(spent []Coin) (Wallet, error) {
	w.Spent = spent
	w.SpentLen = uint64(len(spent))
	w.refreshSize()
	return w, nil
}

func (w Wallet) WithUnspent(unspent []Coin) (Wallet, error) {
	w.Unspent = unspent
	w.UnspentLen = uint64(len(unspent))
	w.refreshSize()
	return w, nil
}

func (w Wallet) WithPayload(payload Payload) (Wallet, error) {
	w.Payload = payload
	w.refreshSize()
	return w, nil
}

// signPreimage returns the canonical bytes signed/verified: w with id and
// signature zeroed/cleared and public_key set, mirroring Input's
// self-signing convention (spec.md §4.1).
func (w Wallet) signPreimage(pk PublicKey) ([]byte, error) {
	preimage := w
	preimage.ID = Digest{}
	preimage.Signature = nil
	preimage.PublicKey = &pk
	preimage.refreshSize()
	return json.Marshal(preimage)
}

// Sign signs w under sk (whose matching public key is pk), setting both
// PublicKey and Signature.
func (w Wallet) Sign(s capability.Signer, pk []byte, sk []byte) (Wallet, error) {
	var pkArr PublicKey
	if len(pk) != len(pkArr) {
		return Wallet{}, ErrInvalidSignature
	}
	copy(pkArr[:], pk)

	msg, err := w.signPreimage(pkArr)
	if err != nil {
		return Wallet{}, err
	}
	sig, err := s.Sign(msg, sk)
	if err != nil {
		return Wallet{}, err
	}
	var sigArr Signature
	if len(sig) != len(sigArr) {
		return Wallet{}, ErrInvalidSignature
	}
	copy(sigArr[:], sig)

	w.PublicKey = &pkArr
	w.Signature = &sigArr
	w.refreshSize()
	return w, nil
}

// VerifySignature reports whether w carries a valid signature. A Wallet
// with no PublicKey/Signature set is unsigned and always verifies true,
// since signing is optional (spec.md §3.2).
func (w Wallet) VerifySignature(s capability.Signer) (bool, error) {
	if w.PublicKey == nil || w.Signature == nil {
		return true, nil
	}
	msg, err := w.signPreimage(*w.PublicKey)
	if err != nil {
		return false, err
	}
	return s.Verify(msg, w.PublicKey[:], w.Signature[:]), nil
}

func (w Wallet) CheckSignature(s capability.Signer) error {
	ok, err := w.VerifySignature(s)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

func (w Wallet) Digest(h capability.Hasher) (Digest, error) {
	preimage := w
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

func (w Wallet) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := w.Digest(h)
	if err != nil {
		return false, err
	}
	return want == w.ID, nil
}

func (w Wallet) CheckDigest(h capability.Hasher) error {
	ok, err := w.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

// Finalize validates the optional signature, then seals w: computes and
// sets ID, refreshes size, and validates structural invariants.
func (w Wallet) Finalize(h capability.Hasher, s capability.Signer) (Wallet, error) {
	if err := w.CheckSignature(s); err != nil {
		return Wallet{}, err
	}

	id, err := w.Digest(h)
	if err != nil {
		return Wallet{}, err
	}
	w.ID = id
	w.refreshSize()

	if err := w.Check(); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// Check validates w's structural invariants, including that Spent and
// Unspent are disjoint by Coin id (spec.md §3.2 "spent ∩ unspent = ∅").
func (w Wallet) Check() error {
	size, err := jsonSize(&w)
	if err != nil {
		return err
	}
	if w.Meta.Size != size {
		return ErrInvalidSize
	}
	if err := w.Meta.Check(); err != nil {
		return err
	}
	if w.SpentLen != uint64(len(w.Spent)) {
		return ErrInvalidLength
	}
	if w.UnspentLen != uint64(len(w.Unspent)) {
		return ErrInvalidLength
	}

	spentSet := make(map[Digest]struct{}, len(w.Spent))
	for _, c := range w.Spent {
		spentSet[c.ID] = struct{}{}
	}
	for _, c := range w.Unspent {
		if _, overlap := spentSet[c.ID]; overlap {
			return ErrInvalidDigest
		}
	}
	return nil
}

func (Wallet) StorePrefix() []byte { return typeCodePrefix(7) }
func (w Wallet) StoreKey() []byte  { return w.ID[:] }
func (w Wallet) StoreValue() ([]byte, error) {
	return json.Marshal(w)
}
