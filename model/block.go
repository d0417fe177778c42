package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// Block seals a batch of Transactions on top of zero or more previous
// blocks, identified by their BlockNode pointers, and carries a consensus
// Proof over its own content (spec.md §3.2, §4.2). Grounded on
// original_source/src/model/block.rs.
type Block struct {
	ID                Digest        `json:"id"`
	Meta              meta.Meta     `json:"meta"`
	Height            uint64        `json:"height"`
	PrevBlocks        []BlockNode   `json:"prev_blocks"`
	PrevBlocksLen     uint64        `json:"prev_blocks_len"`
	Transactions      []Transaction `json:"transactions"`
	TransactionsLen   uint64        `json:"transactions_len"`
	Payload           Payload       `json:"payload,omitempty"`
	Proof             Proof         `json:"proof"`
}

func NewBlock() Block {
	b := Block{Meta: meta.Default()}
	b.refreshSize()
	return b
}

func (b *Block) refreshSize() {
	size, _ := jsonSize(b)
	b.Meta.SetSize(size)
}

func (b Block) WithMeta(m meta.Meta) (Block, error) {
	if err := m.Check(); err != nil {
		return Block{}, err
	}
	b.Meta = m
	b.refreshSize()
	return b, nil
}

func (b Block) WithPrevBlocks(prevBlocks []BlockNode) (Block, error) {
	b.PrevBlocks = prevBlocks
	b.PrevBlocksLen = uint64(len(prevBlocks))
	b.refreshSize()
	return b, nil
}

func (b Block) WithTransactions(transactions []Transaction) (Block, error) {
	b.Transactions = transactions
	b.TransactionsLen = uint64(len(transactions))
	b.refreshSize()
	return b, nil
}

func (b Block) WithPayload(payload Payload) (Block, error) {
	b.Payload = payload
	b.refreshSize()
	return b, nil
}

// provePreimage returns the canonical bytes proved/verified: b with id and
// proof both zeroed, so the proof never signs over itself (spec.md §4.2
// step 4, the "hash-with-id=0" convention extended to the proof field).
func (b Block) provePreimage() ([]byte, error) {
	preimage := b
	preimage.ID = Digest{}
	preimage.Proof = Proof{}
	preimage.refreshSize()
	return json.Marshal(preimage)
}

// Digest hashes b with both id and proof zeroed, so the id never depends on
// the proof.
func (b Block) Digest(h capability.Hasher) (Digest, error) {
	preimage := b
	preimage.ID = Digest{}
	preimage.Proof = Proof{}
	preimage.refreshSize()

	msg, err := json.Marshal(preimage)
	if err != nil {
		return Digest{}, err
	}
	d, err := h.Digest(msg)
	if err != nil {
		return Digest{}, err
	}
	var out Digest
	if len(d) != len(out) {
		return Digest{}, ErrInvalidDigest
	}
	copy(out[:], d)
	return out, nil
}

func (b Block) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := b.Digest(h)
	if err != nil {
		return false, err
	}
	return want == b.ID, nil
}

func (b Block) CheckDigest(h capability.Hasher) error {
	ok, err := b.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

func (b Block) VerifyProof(p capability.Prover) (bool, error) {
	msg, err := b.provePreimage()
	if err != nil {
		return false, err
	}
	return p.Verify(msg, b.Proof[:]), nil
}

func (b Block) CheckProof(p capability.Prover) error {
	ok, err := b.VerifyProof(p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidProof
	}
	return nil
}

// maxPrevHeight returns 1 plus the maximum height among prevBlocks, or 0 if
// prevBlocks is empty (the genesis case), per spec.md §4.2 step 3.
func maxPrevHeight(prevBlocks []BlockNode) uint64 {
	if len(prevBlocks) == 0 {
		return 0
	}
	var max uint64
	for i, n := range prevBlocks {
		if i == 0 || n.BlockHeight > max {
			max = n.BlockHeight
		}
	}
	return max + 1
}

// Finalize runs the Block sealing algorithm (spec.md §4.2):
//  1. validate Meta and every sub-entity (transactions, their inputs/outputs)
//  2. verify every transaction's input signatures and sub-digests
//  3. set height to 1+max(prevBlocks.height), or 0 if prevBlocks is empty
//  4. zero id and proof, then run the Prover over the result to produce Proof
//  5. recompute size with id still zeroed, then compute and set id from the digest
//  6. run Check to validate the fully-sealed Block
func (b Block) Finalize(h capability.Hasher, s capability.Signer, p capability.Prover) (Block, error) {
	for i := range b.Transactions {
		if err := b.Transactions[i].Check(); err != nil {
			return Block{}, err
		}
		for j := range b.Transactions[i].Inputs {
			if err := b.Transactions[i].Inputs[j].CheckSignature(s); err != nil {
				return Block{}, err
			}
		}
		if err := b.Transactions[i].CheckDigest(h); err != nil {
			return Block{}, err
		}
	}

	b.Height = maxPrevHeight(b.PrevBlocks)

	b.ID = Digest{}
	b.Proof = Proof{}
	b.refreshSize()

	proveMsg, err := b.provePreimage()
	if err != nil {
		return Block{}, err
	}
	proof, err := p.Prove(proveMsg)
	if err != nil {
		return Block{}, err
	}
	if len(proof) != len(b.Proof) {
		return Block{}, ErrInvalidProof
	}
	copy(b.Proof[:], proof)
	b.refreshSize()

	id, err := b.Digest(h)
	if err != nil {
		return Block{}, err
	}
	b.ID = id
	b.refreshSize()

	if err := b.Check(); err != nil {
		return Block{}, err
	}
	return b, nil
}

func (b Block) Check() error {
	size, err := jsonSize(&b)
	if err != nil {
		return err
	}
	if b.Meta.Size != size {
		return ErrInvalidSize
	}
	if err := b.Meta.Check(); err != nil {
		return err
	}
	if b.PrevBlocksLen != uint64(len(b.PrevBlocks)) {
		return ErrInvalidLength
	}
	if b.TransactionsLen != uint64(len(b.Transactions)) {
		return ErrInvalidLength
	}
	wantHeight := maxPrevHeight(b.PrevBlocks)
	if b.Height != wantHeight {
		return ErrInvalidHeight
	}
	for i := range b.PrevBlocks {
		if err := b.PrevBlocks[i].Check(); err != nil {
			return err
		}
	}
	for i := range b.Transactions {
		if err := b.Transactions[i].Check(); err != nil {
			return err
		}
	}
	return nil
}

func (Block) StorePrefix() []byte { return typeCodePrefix(5) }
func (b Block) StoreKey() []byte  { return b.ID[:] }
func (b Block) StoreValue() ([]byte, error) {
	return json.Marshal(b)
}
