package model

import "testing"

func TestBlockFinalizeGenesisAndChild(t *testing.T) {
	hasher := newTestHasher()
	signer := newTestSigner(t)
	prover := newTestProver(t)

	in := newFinalizedTestInput(t, signer)
	tx, err := NewTransaction().WithInputs([]Input{in})
	if err != nil {
		t.Fatalf("WithInputs: %v", err)
	}
	tx, err = tx.Finalize(hasher, signer)
	if err != nil {
		t.Fatalf("Finalize tx: %v", err)
	}

	genesis, err := NewBlock().WithTransactions([]Transaction{tx})
	if err != nil {
		t.Fatalf("WithTransactions: %v", err)
	}
	genesis, err = genesis.Finalize(hasher, signer, prover)
	if err != nil {
		t.Fatalf("Finalize genesis: %v", err)
	}
	if genesis.Height != 0 {
		t.Fatalf("expected genesis height 0, got %d", genesis.Height)
	}
	if err := genesis.Check(); err != nil {
		t.Fatalf("Check genesis: %v", err)
	}
	ok, err := genesis.VerifyProof(prover)
	if err != nil {
		t.Fatalf("VerifyProof: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid proof")
	}

	node, err := NewBlockNode().WithBlockData(genesis.ID, genesis.Height)
	if err != nil {
		t.Fatalf("WithBlockData: %v", err)
	}
	node, err = node.Finalize(hasher)
	if err != nil {
		t.Fatalf("Finalize node: %v", err)
	}

	child, err := NewBlock().WithPrevBlocks([]BlockNode{node})
	if err != nil {
		t.Fatalf("WithPrevBlocks: %v", err)
	}
	child, err = child.Finalize(hasher, signer, prover)
	if err != nil {
		t.Fatalf("Finalize child: %v", err)
	}
	if child.Height != 1 {
		t.Fatalf("expected child height 1, got %d", child.Height)
	}
}
