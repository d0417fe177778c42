package store

// Backend is the raw byte-oriented storage a Store validates session and
// permission around. Factoring it out lets the validation logic in
// store.go (session lookup, expiry, permission ordering) stay identical
// across the in-memory and cometbft-db-backed implementations, matching
// original_source/src/io/store.rs's *_cb methods which are backend-agnostic
// by construction.
type Backend interface {
	get(key []byte) ([]byte, error)
	has(key []byte) (bool, error)
	set(key, value []byte) error
	delete(key []byte) error
	// count returns the number of keys in the half-open range [from, to).
	// A nil from/to means unbounded on that side.
	count(from, to []byte) (uint64, error)
	// list returns values in the half-open range [from, to), capped at
	// limit if non-nil.
	list(from, to []byte, limit *uint64) ([][]byte, error)
	// dump returns every stored key/value pair under prefix, used by the
	// "dump" custom op.
	dump(prefix []byte) (map[string][]byte, error)
}
