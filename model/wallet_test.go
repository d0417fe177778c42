package model

import "testing"

// newFinalizedTestCoinAt builds a distinct, finalized Coin referencing
// outIdx of a fixed tx, so callers can build non-colliding Spent/Unspent
// sets.
func newFinalizedTestCoinAt(t *testing.T, outIdx uint64) Coin {
	t.Helper()
	hasher := newTestHasher()
	c, err := NewCoin().WithOutputData(Digest{0x09}, outIdx, 100)
	if err != nil {
		t.Fatalf("WithOutputData: %v", err)
	}
	c, err = c.Finalize(hasher)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return c
}

func TestWalletUnsignedRoundTrip(t *testing.T) {
	hasher := newTestHasher()
	signer := newTestSigner(t)

	w, err := NewWallet().WithUnspent([]Coin{
		newFinalizedTestCoinAt(t, 0),
		newFinalizedTestCoinAt(t, 1),
	})
	if err != nil {
		t.Fatalf("WithUnspent: %v", err)
	}
	sealed, err := w.Finalize(hasher, signer)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := sealed.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(sealed.Unspent) != 2 {
		t.Fatalf("expected 2 unspent coins, got %d", len(sealed.Unspent))
	}
}

func TestWalletSignedRoundTrip(t *testing.T) {
	hasher := newTestHasher()
	signer := newTestSigner(t)
	pk, sk, err := signer.GenerateKeys(nil)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	w, err := NewWallet().WithUnspent([]Coin{newFinalizedTestCoinAt(t, 0)})
	if err != nil {
		t.Fatalf("WithUnspent: %v", err)
	}
	w, err = w.Sign(signer, pk, sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	sealed, err := w.Finalize(hasher, signer)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := sealed.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	tampered := sealed
	tampered.Payload = []byte("tamper")
	ok, err := tampered.VerifySignature(signer)
	if err != nil {
		t.Fatalf("VerifySignature: %v", err)
	}
	if ok {
		t.Fatalf("expected tampered wallet to fail signature verification")
	}
}

func TestWalletSpentUnspentOverlapRejected(t *testing.T) {
	shared := newFinalizedTestCoinAt(t, 0)

	w, err := NewWallet().WithSpent([]Coin{shared})
	if err != nil {
		t.Fatalf("WithSpent: %v", err)
	}
	w, err = w.WithUnspent([]Coin{shared})
	if err != nil {
		t.Fatalf("WithUnspent: %v", err)
	}
	if err := w.Check(); err != ErrInvalidDigest {
		t.Fatalf("expected ErrInvalidDigest, got %v", err)
	}
}
