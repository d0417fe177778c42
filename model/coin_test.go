package model

import "testing"

func TestCoinFinalizeAndDigestStability(t *testing.T) {
	hasher := newTestHasher()

	c, err := NewCoin().WithOutputData(Digest{0x42}, 3, 250)
	if err != nil {
		t.Fatalf("WithOutputData: %v", err)
	}
	sealed, err := c.Finalize(hasher)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if sealed.ID.IsZero() {
		t.Fatalf("expected non-zero id")
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

	again, err := sealed.Digest(hasher)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if again != sealed.ID {
		t.Fatalf("expected digest recomputation to be stable")
	}

	tampered := sealed
	tampered.OutAmount = 999
	if err := tampered.CheckDigest(hasher); err == nil {
		t.Fatalf("expected tampered coin to fail digest check")
	}
}

func TestCoinSizeInvariantRefreshedOnMutation(t *testing.T) {
	c := NewCoin()
	initialSize := c.Meta.Size

	c, err := c.WithOutputData(Digest{0x01}, 1, 500)
	if err != nil {
		t.Fatalf("WithOutputData: %v", err)
	}
	if c.Meta.Size == initialSize {
		t.Fatalf("expected size to change after mutation")
	}
	if err := c.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
}
