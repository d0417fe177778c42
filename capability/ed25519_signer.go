package capability

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
)

// Ed25519Signer is the default Signer, grounded on the teacher's
// pkg/attestation/service.go AttestationSigner, which signs validator
// attestations with crypto/ed25519 directly.
type Ed25519Signer struct{}

// NewEd25519Signer returns a ready-to-use Ed25519Signer.
func NewEd25519Signer() *Ed25519Signer { return &Ed25519Signer{} }

func (Ed25519Signer) GenerateKeys(seed []byte) ([]byte, []byte, error) {
	var r io.Reader = rand.Reader
	if seed != nil {
		if len(seed) < ed25519.SeedSize {
			return nil, nil, fmt.Errorf("capability: seed must be at least %d bytes", ed25519.SeedSize)
		}
		r = bytes.NewReader(seed)
	}
	pk, sk, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("capability: key generation failed: %w", err)
	}
	return []byte(pk), []byte(sk), nil
}

func (Ed25519Signer) Sign(msg []byte, sk []byte) ([]byte, error) {
	if len(sk) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("capability: invalid private key size %d", len(sk))
	}
	return ed25519.Sign(ed25519.PrivateKey(sk), msg), nil
}

func (Ed25519Signer) Verify(msg []byte, pk []byte, sig []byte) bool {
	if len(pk) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), msg, sig)
}

func (s Ed25519Signer) Check(msg []byte, pk []byte, sig []byte) error {
	return checkFromVerify(s.Verify(msg, pk, sig))
}

// PublicKeySize, PrivateKeySize and SignatureSize mirror ed25519's fixed
// sizes, exposed so model builders can validate field lengths up front.
const (
	PublicKeySize  = ed25519.PublicKeySize
	PrivateKeySize = ed25519.PrivateKeySize
	SignatureSize  = ed25519.SignatureSize
)
