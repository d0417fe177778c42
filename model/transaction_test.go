package model

import (
	"testing"

	"github.com/certen/ledger-core/capability"
)

func newFinalizedTestInput(t *testing.T, signer capability.Signer) Input {
	t.Helper()
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
	s := newTestSigner(t)
	in, err = in.Sign(s, pk, sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	sealed, err := in.Finalize(newTestHasher(), s)
	if err != nil {
		t.Fatalf("Finalize input: %v", err)
	}
	return sealed
}

func TestTransactionFinalizeAndLengthDiscipline(t *testing.T) {
	signer := newTestSigner(t)
	in := newFinalizedTestInput(t, signer)

	out, err := NewOutput().WithAmount(100)
	if err != nil {
		t.Fatalf("WithAmount: %v", err)
	}
	out, err = out.Finalize(newTestHasher())
	if err != nil {
		t.Fatalf("Finalize output: %v", err)
	}

	tx, err := NewTransaction().WithInputs([]Input{in})
	if err != nil {
		t.Fatalf("WithInputs: %v", err)
	}
	tx, err = tx.WithOutputs([]Output{out})
	if err != nil {
		t.Fatalf("WithOutputs: %v", err)
	}

	sealed, err := tx.Finalize(newTestHasher(), signer)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := sealed.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if sealed.InputsLen != 1 || sealed.OutputsLen != 1 {
		t.Fatalf("expected lengths 1/1, got %d/%d", sealed.InputsLen, sealed.OutputsLen)
	}

	broken := sealed
	broken.InputsLen = 2
	if err := broken.Check(); err != ErrInvalidLength {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}
