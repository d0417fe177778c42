package model

import (
	"testing"

	"github.com/certen/ledger-core/capability"
)

func newTestHasher() capability.Hasher {
	return capability.NewSHA256Hasher()
}

func newTestSigner(t *testing.T) capability.Signer {
	t.Helper()
	return capability.NewEd25519Signer()
}

func newFinalizedTestCoin(t *testing.T) (Coin, error) {
	t.Helper()
	hasher := newTestHasher()
	c, err := NewCoin().WithOutputData(Digest{0x01}, 0, 100)
	if err != nil {
		return Coin{}, err
	}
	return c.Finalize(hasher)
}

func newTestProver(t *testing.T) capability.Prover {
	t.Helper()
	p, err := capability.NewBLSProver(nil)
	if err != nil {
		t.Fatalf("NewBLSProver: %v", err)
	}
	return p
}
