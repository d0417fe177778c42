package model

import (
	"encoding/json"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/meta"
)

// BlockGraph tracks the frontier of a block DAG: the set of BlockNodes with
// no known successor, plus an optional pointer at the currently selected
// tip (spec.md §3.2). Grounded on original_source/src/model/block_graph.rs.
type BlockGraph struct {
	ID          Digest      `json:"id"`
	Meta        meta.Meta   `json:"meta"`
	Height      uint64      `json:"height"`
	TipIdx      *uint64     `json:"tip_idx,omitempty"`
	Frontier    []BlockNode `json:"frontier"`
	FrontierLen uint64      `json:"frontier_len"`
	Payload     Payload     `json:"payload,omitempty"`
	Commitment  Commitment  `json:"commitment"`
	Tag         *Tag        `json:"tag,omitempty"`
}

func NewBlockGraph() BlockGraph {
	g := BlockGraph{Meta: meta.Default()}
	g.refreshSize()
	return g
}

func (g *BlockGraph) refreshSize() {
	size, _ := jsonSize(g)
	g.Meta.SetSize(size)
}

func (g BlockGraph) WithMeta(m meta.Meta) (BlockGraph, error) {
	if err := m.Check(); err != nil {
		return BlockGraph{}, err
	}
	g.Meta = m
	g.refreshSize()
	return g, nil
}

// WithTipIdx sets the optional index into Frontier identifying the
// currently selected tip. Pass nil to clear it.
func (g BlockGraph) WithTipIdx(tipIdx *uint64) (BlockGraph, error) {
	if tipIdx != nil && *tipIdx >= uint64(len(g.Frontier)) {
		return BlockGraph{}, ErrInvalidIndex
	}
	g.TipIdx = tipIdx
	g.refreshSize()
	return g, nil
}

func (g BlockGraph) WithPayload(payload Payload) (BlockGraph, error) {
	g.Payload = payload
	g.refreshSize()
	return g, nil
}

// InsertBlockNode applies a new Block's node to the frontier: every node in
// prevBlockIDs is removed from the frontier (it now has a known successor),
// and node is appended. Height is recomputed as the max height across the
// resulting frontier (spec.md §4.2 BlockGraph update), and TipIdx is
// cleared. It never returns an error: a node already in the frontier is
// appended again, and ids in prevBlockIDs that are not in the frontier are
// ignored.
func (g BlockGraph) InsertBlockNode(node BlockNode, prevBlockIDs []Digest) (BlockGraph, error) {
	prevSet := make(map[Digest]struct{}, len(prevBlockIDs))
	for _, id := range prevBlockIDs {
		prevSet[id] = struct{}{}
	}

	next := make([]BlockNode, 0, len(g.Frontier)+1)
	for _, n := range g.Frontier {
		if _, referenced := prevSet[n.ID]; referenced {
			continue
		}
		next = append(next, n)
	}
	next = append(next, node)

	g.Frontier = next
	g.FrontierLen = uint64(len(next))
	g.TipIdx = nil

	var maxHeight uint64
	for i, n := range next {
		if i == 0 || n.BlockHeight > maxHeight {
			maxHeight = n.BlockHeight
		}
	}
	g.Height = maxHeight
	g.refreshSize()
	return g, nil
}

func (g BlockGraph) Digest(h capability.Hasher) (Digest, error) {
	preimage := g
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

func (g BlockGraph) VerifyDigest(h capability.Hasher) (bool, error) {
	want, err := g.Digest(h)
	if err != nil {
		return false, err
	}
	return want == g.ID, nil
}

func (g BlockGraph) CheckDigest(h capability.Hasher) error {
	ok, err := g.VerifyDigest(h)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidDigest
	}
	return nil
}

// commitPreimage returns the canonical bytes committed to/verified: g with
// id and commitment both zeroed, so the commitment never commits over
// itself (the same "hash-with-id=0" convention Block.provePreimage uses
// for Proof).
func (g BlockGraph) commitPreimage() ([]byte, error) {
	preimage := g
	preimage.ID = Digest{}
	preimage.Commitment = Commitment{}
	preimage.refreshSize()
	return json.Marshal(preimage)
}

// Commit seals g's frontier under c, setting Commitment. Called by
// Finalize; exposed so callers can derive a commitment on its own. The
// returned graph has ID cleared, so its digest does not verify until
// Finalize sets ID again.
func (g BlockGraph) Commit(c capability.Committer) (BlockGraph, error) {
	g.ID = Digest{}
	g.Commitment = Commitment{}
	g.refreshSize()

	msg, err := g.commitPreimage()
	if err != nil {
		return BlockGraph{}, err
	}
	commitment, err := c.Commit(msg)
	if err != nil {
		return BlockGraph{}, err
	}
	if len(commitment) != len(g.Commitment) {
		return BlockGraph{}, ErrInvalidCommitment
	}
	copy(g.Commitment[:], commitment)
	g.refreshSize()
	return g, nil
}

// VerifyCommit reports whether g.Commitment matches c.Commit over g's
// commit preimage.
func (g BlockGraph) VerifyCommit(c capability.Committer) (bool, error) {
	msg, err := g.commitPreimage()
	if err != nil {
		return false, err
	}
	return c.Verify(msg, g.Commitment[:]), nil
}

// CheckCommit is VerifyCommit mapped onto ErrInvalidCommitment.
func (g BlockGraph) CheckCommit(c capability.Committer) error {
	ok, err := g.VerifyCommit(c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCommitment
	}
	return nil
}

// authenticatePreimage returns the canonical bytes authenticated/verified:
// g with id and tag cleared, keeping the sealed Commitment -- mirroring
// Wallet.signPreimage's zero-the-authenticating-field convention.
func (g BlockGraph) authenticatePreimage() ([]byte, error) {
	preimage := g
	preimage.ID = Digest{}
	preimage.Tag = nil
	preimage.refreshSize()
	return json.Marshal(preimage)
}

// Authenticate tags g under a symmetric key, setting Tag. Authentication
// is optional (spec.md §4.2 "commit/authenticate (BlockGraph)" names the
// pair the way Wallet.Sign is optional for its holder): a BlockGraph
// exchanged between trusted peers over an already-authenticated channel
// need never call this.
func (g BlockGraph) Authenticate(a capability.Authenticator, key []byte) (BlockGraph, error) {
	msg, err := g.authenticatePreimage()
	if err != nil {
		return BlockGraph{}, err
	}
	tagBytes, err := a.Authenticate(msg, key)
	if err != nil {
		return BlockGraph{}, err
	}
	var tag Tag
	if len(tagBytes) != len(tag) {
		return BlockGraph{}, ErrInvalidTag
	}
	copy(tag[:], tagBytes)
	g.Tag = &tag
	g.refreshSize()
	return g, nil
}

// VerifyAuthenticate reports whether g carries a valid tag under key. A
// BlockGraph with no Tag set is unauthenticated and always verifies true.
func (g BlockGraph) VerifyAuthenticate(a capability.Authenticator, key []byte) (bool, error) {
	if g.Tag == nil {
		return true, nil
	}
	msg, err := g.authenticatePreimage()
	if err != nil {
		return false, err
	}
	return a.Verify(msg, key, g.Tag[:]), nil
}

// CheckAuthenticate is VerifyAuthenticate mapped onto ErrInvalidTag.
func (g BlockGraph) CheckAuthenticate(a capability.Authenticator, key []byte) error {
	ok, err := g.VerifyAuthenticate(a, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTag
	}
	return nil
}

// Finalize seals g: commits the frontier under c, computes and sets ID,
// refreshes size, and validates structural invariants.
func (g BlockGraph) Finalize(h capability.Hasher, c capability.Committer) (BlockGraph, error) {
	g, err := g.Commit(c)
	if err != nil {
		return BlockGraph{}, err
	}

	id, err := g.Digest(h)
	if err != nil {
		return BlockGraph{}, err
	}
	g.ID = id
	g.refreshSize()
	if err := g.Check(); err != nil {
		return BlockGraph{}, err
	}
	return g, nil
}

func (g BlockGraph) Check() error {
	size, err := jsonSize(&g)
	if err != nil {
		return err
	}
	if g.Meta.Size != size {
		return ErrInvalidSize
	}
	if err := g.Meta.Check(); err != nil {
		return err
	}
	if g.FrontierLen != uint64(len(g.Frontier)) {
		return ErrInvalidLength
	}
	if g.TipIdx != nil && *g.TipIdx >= g.FrontierLen {
		return ErrInvalidIndex
	}
	var maxHeight uint64
	for i, n := range g.Frontier {
		if i == 0 || n.BlockHeight > maxHeight {
			maxHeight = n.BlockHeight
		}
		if err := n.Check(); err != nil {
			return err
		}
	}
	if len(g.Frontier) > 0 && g.Height != maxHeight {
		return ErrInvalidHeight
	}
	if len(g.Frontier) == 0 && g.Height != 0 {
		return ErrInvalidHeight
	}
	return nil
}

func (BlockGraph) StorePrefix() []byte { return typeCodePrefix(6) }
func (g BlockGraph) StoreKey() []byte  { return g.ID[:] }
func (g BlockGraph) StoreValue() ([]byte, error) {
	return json.Marshal(g)
}
