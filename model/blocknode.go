package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// BlockNode is a lightweight pointer to a Block in the BlockGraph's
// frontier, carrying just enough to compute height without loading the
// full Block (spec.md §3.2). Grounded on
// original_source/src/model/block_node.rs.
type BlockNode struct {
	ID          Digest    `json:"id"`
	Meta        meta.Meta `json:"meta"`
	BlockID     Digest    `json:"block_id"`
	BlockHeight uint64    `json:"block_height"`
}

func NewBlockNode() BlockNode {
	n := BlockNode{Meta: meta.Default()}
	n.refreshSize()
	return n
}

func (n *BlockNode) refreshSize() {
	size, _ := jsonSize(n)
	n.Meta.SetSize(size)
}

func (n BlockNode) WithMeta(m meta.Meta) (BlockNode, error) {
	if err := m.Check(); err != nil {
		return BlockNode{}, err
	}
	n.Meta = m
	n.refreshSize()
	return n, nil
}

// WithBlockData sets the Block this node points to and its height.
func (n BlockNode) WithBlockData(blockID Digest, blockHeight uint64) (BlockNode, error) {
	n.BlockID = blockID
	n.BlockHeight = blockHeight
	n.refreshSize()
	return n, nil
}

func (n BlockNode) Digest(h capability.Hasher) (Digest, error) {
	preimage := n
	preimage.ID = Digest{}
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

func (n BlockNode) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := n.Digest(h)
	if err != nil {
		return false, err
	}
	return want == n.ID, nil
}

func (n BlockNode) CheckDigest(h capability.Hasher) error {
	ok, err := n.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

func (n BlockNode) Finalize(h capability.Hasher) (BlockNode, error) {
	id, err := n.Digest(h)
	if err != nil {
		return BlockNode{}, err
	}
	n.ID = id
	n.refreshSize()
	if err := n.Check(); err != nil {
		return BlockNode{}, err
	}
	return n, nil
}

func (n BlockNode) Check() error {
	size, err := jsonSize(&n)
	if err != nil {
		return err
	}
	if n.Meta.Size != size {
		return ErrInvalidSize
	}
	return n.Meta.Check()
}

func (BlockNode) StorePrefix() []byte { return typeCodePrefix(4) }
func (n BlockNode) StoreKey() []byte  { return n.ID[:] }
func (n BlockNode) StoreValue() ([]byte, error) {
	return json.Marshal(n)
}
