package capability

import "testing"

func TestSHA256HasherRoundTrip(t *testing.T) {
	h := NewSHA256Hasher()
	msg := []byte("digest me")

	d, err := h.Digest(msg)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if !h.Verify(msg, d) {
		t.Fatal("Verify should succeed on the digest just computed")
	}
	if err := h.Check(msg, d); err != nil {
		t.Fatalf("Check should succeed: %v", err)
	}

	if h.Verify([]byte("different message"), d) {
		t.Fatal("Verify should fail for a perturbed message")
	}
}

func TestEd25519SignerRoundTrip(t *testing.T) {
	s := NewEd25519Signer()
	pk, sk, err := s.GenerateKeys(nil)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	msg := []byte("sign me")
	sig, err := s.Sign(msg, sk)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !s.Verify(msg, pk, sig) {
		t.Fatal("Verify should succeed for a freshly produced signature")
	}
	if s.Verify([]byte("tampered"), pk, sig) {
		t.Fatal("Verify should fail for a perturbed message")
	}
	if err := s.Check(msg, pk, sig); err != nil {
		t.Fatalf("Check should succeed: %v", err)
	}
}

func TestEd25519SignerDeterministicSeed(t *testing.T) {
	s := NewEd25519Signer()
	seed := make([]byte, PrivateKeySize)
	for i := range seed {
		seed[i] = byte(i)
	}

	pk1, sk1, err := s.GenerateKeys(seed)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	pk2, sk2, err := s.GenerateKeys(seed)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	if string(pk1) != string(pk2) || string(sk1) != string(sk2) {
		t.Fatal("same seed must produce the same key pair")
	}
}

func TestBLSProverRoundTrip(t *testing.T) {
	p, err := NewBLSProver([]byte("a deterministic 32+ byte seed!!!"))
	if err != nil {
		t.Fatalf("NewBLSProver: %v", err)
	}

	msg := []byte("block payload")
	proof, err := p.Prove(msg)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof) != BLSProofSize {
		t.Fatalf("proof size = %d, want %d", len(proof), BLSProofSize)
	}
	if !p.Verify(msg, proof) {
		t.Fatal("Verify should succeed for a freshly produced proof")
	}
	if p.Verify([]byte("different payload"), proof) {
		t.Fatal("Verify should fail for a perturbed message")
	}
	if err := p.Check(msg, proof); err != nil {
		t.Fatalf("Check should succeed: %v", err)
	}
}

func TestSHA256CommitterAndHMACAuthenticator(t *testing.T) {
	c := NewSHA256Committer()
	msg := []byte("frontier snapshot")
	commitment, err := c.Commit(msg)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !c.Verify(msg, commitment) {
		t.Fatal("Verify should succeed for the commitment just produced")
	}

	a := NewHMACAuthenticator()
	key := []byte("shared-secret-key")
	tag, err := a.Authenticate(msg, key)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !a.Verify(msg, key, tag) {
		t.Fatal("Verify should succeed for the tag just produced")
	}
	if a.Verify(msg, []byte("wrong-key"), tag) {
		t.Fatal("Verify should fail under the wrong key")
	}
}
