package store

import (
	"bytes"

	dbm "github.com/cometbft/cometbft-db"
)

// cometBackend wraps a cometbft-db dbm.DB as a Store backend, giving the
// ledger a pluggable persistent option (goleveldb, memdb, boltdb, ...)
// behind the same interface the in-memory backend satisfies. Adapted from
// the teacher's pkg/kvdb/adapter.go KVAdapter, generalized from a single
// get/set pair to the full range-query surface the Store needs.
type cometBackend struct {
	db dbm.DB
}

// newCometBackend wraps db. The caller owns db's lifecycle (Close).
func newCometBackend(db dbm.DB) *cometBackend {
	return &cometBackend{db: db}
}

func (b *cometBackend) get(key []byte) ([]byte, error) {
	return b.db.Get(key)
}

func (b *cometBackend) has(key []byte) (bool, error) {
	return b.db.Has(key)
}

// set uses SetSync for durable writes at commit time, as the teacher's
// adapter does.
func (b *cometBackend) set(key, value []byte) error {
	return b.db.SetSync(key, value)
}

func (b *cometBackend) delete(key []byte) error {
	return b.db.DeleteSync(key)
}

func (b *cometBackend) count(from, to []byte) (uint64, error) {
	it, err := b.db.Iterator(from, to)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	var n uint64
	for ; it.Valid(); it.Next() {
		n++
	}
	return n, it.Error()
}

func (b *cometBackend) list(from, to []byte, limit *uint64) ([][]byte, error) {
	it, err := b.db.Iterator(from, to)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out [][]byte
	for ; it.Valid(); it.Next() {
		if limit != nil && uint64(len(out)) >= *limit {
			break
		}
		v := it.Value()
		cp := make([]byte, len(v))
		copy(cp, v)
		out = append(out, cp)
	}
	return out, it.Error()
}

func (b *cometBackend) dump(prefix []byte) (map[string][]byte, error) {
	it, err := b.db.Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	out := make(map[string][]byte)
	for ; it.Valid(); it.Next() {
		k := it.Key()
		if prefix != nil && !bytes.HasPrefix(k, prefix) {
			continue
		}
		v := it.Value()
		cp := make([]byte, len(v))
		copy(cp, v)
		out[string(k)] = cp
	}
	return out, it.Error()
}
