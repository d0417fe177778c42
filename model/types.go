// Package model implements the authenticated data model of spec.md §3: Coin,
// Input, Output, Transaction, BlockNode, Block, BlockGraph and Wallet, built
// through fluent builders and sealed by Finalize.
package model

import "encoding/hex"

// Digest is the fixed-size identity type for every entity's id, produced by
// a capability.Hasher. The core is parameterized over "a fixed-size,
// serializable byte sequence" (spec.md §4.1); this module fixes that to the
// 32-byte output of capability.SHA256Hasher, the default Hasher.
type Digest [32]byte

// MarshalJSON renders a Digest as a lowercase hex string so the canonical
// JSON serialization used for sizing/digesting stays deterministic and
// human-inspectable, matching the hex round-trip format of spec.md §6.
func (d Digest) MarshalJSON() ([]byte, error) {
	return marshalHexArray(d[:])
}

func (d *Digest) UnmarshalJSON(b []byte) error {
	return unmarshalHexArray(b, d[:])
}

// IsZero reports whether d is the all-zero placeholder used as the
// self-hashing preimage convention (spec.md §9 "Self-hashing with id=0").
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// PublicKey is the fixed-size public key type, sized for capability.Ed25519Signer.
type PublicKey [32]byte

func (k PublicKey) MarshalJSON() ([]byte, error)    { return marshalHexArray(k[:]) }
func (k *PublicKey) UnmarshalJSON(b []byte) error { return unmarshalHexArray(b, k[:]) }

// Signature is the fixed-size signature type, sized for capability.Ed25519Signer.
type Signature [64]byte

func (s Signature) MarshalJSON() ([]byte, error)    { return marshalHexArray(s[:]) }
func (s *Signature) UnmarshalJSON(b []byte) error { return unmarshalHexArray(b, s[:]) }

// Proof is the fixed-size consensus-proof type, sized for capability.BLSProver.
type Proof [48]byte

func (p Proof) MarshalJSON() ([]byte, error)    { return marshalHexArray(p[:]) }
func (p *Proof) UnmarshalJSON(b []byte) error { return unmarshalHexArray(b, p[:]) }

// Commitment is the fixed-size type a BlockGraph commits its frontier to,
// sized for capability.SHA256Committer.
type Commitment [32]byte

func (c Commitment) MarshalJSON() ([]byte, error)    { return marshalHexArray(c[:]) }
func (c *Commitment) UnmarshalJSON(b []byte) error { return unmarshalHexArray(b, c[:]) }

// Tag is the fixed-size authentication tag a BlockGraph optionally carries,
// sized for capability.HMACAuthenticator.
type Tag [32]byte

func (t Tag) MarshalJSON() ([]byte, error)    { return marshalHexArray(t[:]) }
func (t *Tag) UnmarshalJSON(b []byte) error { return unmarshalHexArray(b, t[:]) }

// Amount is the numeric type coins/outputs are denominated in. spec.md
// leaves A generic; the core fixes it to uint64 "satoshi-style" integer
// amounts, policy conservation (sum(outputs) <= sum(inputs)) is left to the
// handler layer per spec.md §9.
type Amount = uint64

// Payload is an opaque, application-defined blob carried by most entities.
type Payload = []byte

func marshalHexArray(b []byte) ([]byte, error) {
	out := make([]byte, 0, len(b)*2+2)
	out = append(out, '"')
	out = append(out, []byte(hex.EncodeToString(b))...)
	out = append(out, '"')
	return out, nil
}

func unmarshalHexArray(b []byte, dst []byte) error {
	if len(b) < 2 {
		return errShortHexLiteral
	}
	s := string(b[1 : len(b)-1])
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(decoded) != len(dst) {
		return errHexLengthMismatch
	}
	copy(dst, decoded)
	return nil
}
