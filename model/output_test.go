package model

import "testing"

func TestOutputFinalizeAndDigest(t *testing.T) {
	hasher := newTestHasher()

	o, err := NewOutput().WithAmount(1000)
	if err != nil {
		t.Fatalf("WithAmount: %v", err)
	}
	o, err = o.WithPayload([]byte("memo"))
	if err != nil {
		t.Fatalf("WithPayload: %v", err)
	}

	sealed, err := o.Finalize(hasher)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := sealed.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	ok, err := sealed.VerifyDigest(hasher)
	if err != nil {
		t.Fatalf("VerifyDigest: %v", err)
	}
	if !ok {
		t.Fatalf("expected digest to verify")
	}

	tampered := sealed
	tampered.Amount = 1
	if err := tampered.CheckDigest(hasher); err == nil {
		t.Fatalf("expected tampered output to fail digest check")
	}
}
