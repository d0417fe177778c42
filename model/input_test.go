package model

import "testing"

func TestInputSignAndFinalize(t *testing.T) {
	signer := newTestSigner(t)
	pk, sk, err := signer.GenerateKeys(nil)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	coin, err := newFinalizedTestCoin(t)
	if err != nil {
		t.Fatalf("newFinalizedTestCoin: %v", err)
	}

	in, err := NewInput().WithCoin(coin)
	if err != nil {
		t.Fatalf("WithCoin: %v", err)
	}
	in, err = in.Sign(signer, pk, sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := in.VerifySignature(signer)
	if err != nil {
		t.Fatalf("VerifySignature: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid signature")
	}

	hasher := newTestHasher()
	sealed, err := in.Finalize(hasher, signer)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if sealed.ID.IsZero() {
		t.Fatalf("expected non-zero id after Finalize")
	}
	if err := sealed.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	tampered := sealed
	tampered.Payload = []byte("tampered")
	ok, err = tampered.VerifySignature(signer)
	if err != nil {
		t.Fatalf("VerifySignature: %v", err)
	}
	if ok {
		t.Fatalf("expected tampered input to fail signature verification")
	}
}
