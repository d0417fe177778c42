package store

import (
	"testing"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/model"
)

func TestStorableCoinRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	sess, _ := s.Session(PermissionWrite)

	hasher := capability.NewSHA256Hasher()
	coin, err := model.NewCoin().WithOutputData(model.Digest{0x01}, 0, 100)
	if err != nil {
		t.Fatalf("WithOutputData: %v", err)
	}
	coin, err = coin.Finalize(hasher)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if err := CreateStorable(s, sess, coin); err != nil {
		t.Fatalf("CreateStorable: %v", err)
	}
	if err := CreateStorable(s, sess, coin); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	raw, err := GetStorableBytes(s, sess, coin)
	if err != nil {
		t.Fatalf("GetStorableBytes: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected non-empty stored value")
	}

	ok, err := LookupStorable(s, sess, coin)
	if err != nil {
		t.Fatalf("LookupStorable: %v", err)
	}
	if !ok {
		t.Fatalf("expected coin to be present")
	}

	if err := DeleteStorable(s, sess, coin); err != nil {
		t.Fatalf("DeleteStorable: %v", err)
	}
	ok, err = LookupStorable(s, sess, coin)
	if err != nil {
		t.Fatalf("LookupStorable after delete: %v", err)
	}
	if ok {
		t.Fatalf("expected coin to be absent after delete")
	}
}
