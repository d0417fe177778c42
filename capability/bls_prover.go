package capability

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// domainProof is the domain-separation tag used when hashing a message to a
// G1 point, keeping block proofs distinguishable from any other use of the
// curve in the same process.
const domainProof = "CERTEN_LEDGER_CORE_BLOCK_PROOF_V1"

// Proof sizes for the BLS12-381 instantiation: 32-byte scalar secret key,
// 96-byte compressed G2 public key, 48-byte compressed G1 proof.
const (
	BLSPrivateKeySize = 32
	BLSPublicKeySize  = 96
	BLSProofSize      = 48
)

var (
	blsInitOnce sync.Once
	blsG1Gen    bls12381.G1Affine
	blsG2Gen    bls12381.G2Affine
)

func initBLS() {
	blsInitOnce.Do(func() {
		_, _, blsG1Gen, blsG2Gen = bls12381.Generators()
	})
}

// BLSProver is a Prover backed by a single BLS12-381 key pair: Prove signs
// the message with the held secret scalar, Verify checks the pairing
// equation against the held public point. It stands in for a pluggable
// consensus proof (PoW/PoS/zk); the core never assumes anything about what
// "proof" means beyond prove/verify/check.
//
// Adapted from the teacher's pkg/crypto/bls/bls.go, trimmed to the single
// prove/verify path the Prover capability needs (aggregate-signature
// helpers specific to multi-validator attestation quorums are dropped).
type BLSProver struct {
	sk fr.Element
	pk bls12381.G2Affine
}

// NewBLSProver derives a BLSProver's key pair from seed (at least
// BLSPrivateKeySize bytes) or, if seed is nil, from crypto/rand.
func NewBLSProver(seed []byte) (*BLSProver, error) {
	initBLS()

	var sk fr.Element
	if seed == nil {
		if _, err := sk.SetRandom(); err != nil {
			return nil, fmt.Errorf("capability: bls keygen failed: %w", err)
		}
	} else {
		if len(seed) < BLSPrivateKeySize {
			return nil, fmt.Errorf("capability: bls seed must be at least %d bytes", BLSPrivateKeySize)
		}
		h := sha256.Sum256(seed)
		sk.SetBytes(h[:])
	}

	p := &BLSProver{sk: sk}
	p.derivePublicKey()
	return p, nil
}

func (p *BLSProver) derivePublicKey() {
	var skBig big.Int
	p.sk.BigInt(&skBig)
	p.pk.ScalarMultiplication(&blsG2Gen, &skBig)
}

// PublicKey returns the compressed G2 public-key bytes, for distribution
// to verifiers that do not hold the secret scalar.
func (p *BLSProver) PublicKey() []byte {
	b := p.pk.Bytes()
	return b[:]
}

func hashMessageToG1(msg []byte) bls12381.G1Affine {
	h := sha256.New()
	h.Write([]byte(domainProof))
	h.Write(msg)
	base := h.Sum(nil)

	for counter := uint64(0); counter < 1000; counter++ {
		h2 := sha256.New()
		h2.Write(base)
		binary.Write(h2, binary.BigEndian, counter)
		digest := h2.Sum(nil)

		var point bls12381.G1Affine
		if _, err := point.SetBytes(digest); err == nil && !point.IsInfinity() {
			return point
		}

		var scalar fr.Element
		scalar.SetBytes(digest)
		var scalarBig big.Int
		scalar.BigInt(&scalarBig)

		var result bls12381.G1Affine
		result.ScalarMultiplication(&blsG1Gen, &scalarBig)
		if !result.IsInfinity() {
			return result
		}
	}
	return blsG1Gen
}

func (p *BLSProver) Prove(msg []byte) ([]byte, error) {
	h := hashMessageToG1(msg)

	var skBig big.Int
	p.sk.BigInt(&skBig)

	var sig bls12381.G1Affine
	sig.ScalarMultiplication(&h, &skBig)

	b := sig.Bytes()
	return b[:], nil
}

func (p *BLSProver) Verify(msg []byte, proof []byte) bool {
	var sig bls12381.G1Affine
	if _, err := sig.SetBytes(proof); err != nil {
		return false
	}

	h := hashMessageToG1(msg)

	var negPK bls12381.G2Affine
	negPK.Neg(&p.pk)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{sig, h},
		[]bls12381.G2Affine{blsG2Gen, negPK},
	)
	return err == nil && ok
}

func (p *BLSProver) Check(msg []byte, proof []byte) error {
	return checkFromVerify(p.Verify(msg, proof))
}
