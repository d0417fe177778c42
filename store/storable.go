package store

import "bytes"

// Storable is satisfied by any model entity that can be bound to a Store:
// an 8-byte type prefix namespacing its records, a deterministic key
// (usually its id), and a value encoding (usually itself). Mirrors
// original_source/src/io/store.rs's Storable<S, K, V> trait as a plain,
// non-generic Go interface (spec.md §4.3 "Storable binding").
type Storable interface {
	StorePrefix() []byte
	StoreKey() []byte
	StoreValue() ([]byte, error)
}

func prefixedKey(t Storable) []byte {
	return append(append([]byte{}, t.StorePrefix()...), t.StoreKey()...)
}

// CreateStorable inserts t under its namespaced key, failing with
// ErrAlreadyExists if already present.
func CreateStorable(s *Store, session Session, t Storable) error {
	value, err := t.StoreValue()
	if err != nil {
		return err
	}
	return s.Create(session, prefixedKey(t), value)
}

// UpdateStorable overwrites t's stored value, failing with ErrNotFound if
// absent.
func UpdateStorable(s *Store, session Session, t Storable) error {
	value, err := t.StoreValue()
	if err != nil {
		return err
	}
	return s.Update(session, prefixedKey(t), value)
}

// UpsertStorable writes t's stored value unconditionally.
func UpsertStorable(s *Store, session Session, t Storable) error {
	value, err := t.StoreValue()
	if err != nil {
		return err
	}
	return s.Upsert(session, prefixedKey(t), value)
}

// DeleteStorable removes t, failing with ErrNotFound if absent.
func DeleteStorable(s *Store, session Session, t Storable) error {
	return s.Delete(session, prefixedKey(t))
}

// GetStorableBytes returns the raw stored value for t's namespaced key.
func GetStorableBytes(s *Store, session Session, t Storable) ([]byte, error) {
	return s.Get(session, prefixedKey(t))
}

// LookupStorable reports whether t's namespaced key is present.
func LookupStorable(s *Store, session Session, t Storable) (bool, error) {
	return s.Lookup(session, prefixedKey(t))
}

// ListPrefix returns the raw values of every key under prefix, in key
// order, respecting the same Read-permission check as List.
func (s *Store) ListPrefix(session Session, prefix []byte) ([][]byte, error) {
	if err := s.validate(session, PermissionRead); err != nil {
		return nil, err
	}
	dump, err := s.backend.dump(prefix)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(dump))
	for k := range dump {
		keys = append(keys, []byte(k))
	}
	sortByteSlices(keys)

	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, dump[string(k)])
	}
	return out, nil
}

func sortByteSlices(keys [][]byte) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && bytes.Compare(keys[j-1], keys[j]) > 0; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}
