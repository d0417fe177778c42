package store

import (
	"bytes"
	"sync"
	"time"

	dbm "github.com/cometbft/cometbft-db"
)

// Store is the session-authorized key/value container of spec.md §4.3. All
// operations besides Session itself require a live, non-expired Session
// with sufficient Permission, validated in the order session existence →
// expiry → permission, followed by the op's own range/count/key checks
// (grounded on original_source/src/io/store.rs's *_cb chain).
type Store struct {
	backend Backend

	mu       sync.Mutex
	sessions map[uint64]Session
	nextID   uint64
	now      func() time.Time

	routeMu sync.Mutex
}

// NewMemoryStore returns a Store backed by an in-memory map, the default
// for tests and single-process use.
func NewMemoryStore() *Store {
	return newStore(newMemoryBackend())
}

// NewCometStore returns a Store backed by a cometbft-db database, giving
// callers a pluggable persistent option (goleveldb, memdb, boltdb, ...).
func NewCometStore(db dbm.DB) *Store {
	return newStore(newCometBackend(db))
}

func newStore(b Backend) *Store {
	return &Store{
		backend:  b,
		sessions: make(map[uint64]Session),
		now:      time.Now,
	}
}

// Lock acquires the store-wide mutual-exclusion guard that makes one
// routed request a serializable unit against the store, as
// original_source/src/io/network/server/server.rs's serve holds
// store.lock() across the whole router.route(...) call. Callers must
// Unlock once the request has been fully handled.
func (s *Store) Lock() {
	s.routeMu.Lock()
}

// Unlock releases the guard acquired by Lock.
func (s *Store) Unlock() {
	s.routeMu.Unlock()
}

// Session issues a fresh session with DefaultSessionTTL and a monotonically
// increasing id (spec.md §4.3 "session(permission)").
func (s *Store) Session(permission Permission) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sess := Session{
		ID:         s.nextID,
		Permission: permission,
		ExpiresAt:  s.now().Add(DefaultSessionTTL),
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// validate runs the shared session/permission validation every
// authorized op shares: session existence, non-expiry, then a minimum
// required permission. Per the Open Question resolution in DESIGN.md, the
// ordering None < Read < Write is enforced with >=, so a Write session
// satisfies a Read requirement (spec.md §8 S-5).
func (s *Store) validate(session Session, minPermission Permission) error {
	s.mu.Lock()
	current, ok := s.sessions[session.ID]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	if current.IsExpired(s.now()) {
		return ErrExpiredSession
	}
	if current.Permission < minPermission {
		return ErrInvalidPermission
	}
	return nil
}

// Count returns the number of keys in the half-open range [from, to).
// from >= to (when both given) is an error (spec.md §4.3, invariant S-4).
func (s *Store) Count(session Session, from, to []byte) (uint64, error) {
	if err := s.validate(session, PermissionRead); err != nil {
		return 0, err
	}
	if from != nil && to != nil && bytes.Compare(from, to) >= 0 {
		return 0, ErrInvalidRange
	}
	return s.backend.count(from, to)
}

// List returns values in the half-open range [from, to), optionally capped
// at count. count=0 is an error (spec.md §4.3).
func (s *Store) List(session Session, from, to []byte, count *uint64) ([][]byte, error) {
	if err := s.validate(session, PermissionRead); err != nil {
		return nil, err
	}
	if from != nil && to != nil && bytes.Compare(from, to) >= 0 {
		return nil, ErrInvalidRange
	}
	if count != nil && *count == 0 {
		return nil, ErrInvalidCount
	}
	return s.backend.list(from, to, count)
}

// Lookup reports whether key is present.
func (s *Store) Lookup(session Session, key []byte) (bool, error) {
	if err := s.validate(session, PermissionRead); err != nil {
		return false, err
	}
	return s.backend.has(key)
}

// Get returns key's value, or ErrNotFound if absent.
func (s *Store) Get(session Session, key []byte) ([]byte, error) {
	if err := s.validate(session, PermissionRead); err != nil {
		return nil, err
	}
	ok, err := s.backend.has(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.backend.get(key)
}

// Create inserts key/value, failing with ErrAlreadyExists if key is
// already present.
func (s *Store) Create(session Session, key, value []byte) error {
	if err := s.validate(session, PermissionWrite); err != nil {
		return err
	}
	ok, err := s.backend.has(key)
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyExists
	}
	return s.backend.set(key, value)
}

// Update overwrites key's value, failing with ErrNotFound if key is
// absent.
func (s *Store) Update(session Session, key, value []byte) error {
	if err := s.validate(session, PermissionWrite); err != nil {
		return err
	}
	ok, err := s.backend.has(key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.backend.set(key, value)
}

// Upsert writes key/value unconditionally.
func (s *Store) Upsert(session Session, key, value []byte) error {
	if err := s.validate(session, PermissionWrite); err != nil {
		return err
	}
	return s.backend.set(key, value)
}

// Delete removes key, failing with ErrNotFound if key is absent.
func (s *Store) Delete(session Session, key []byte) error {
	if err := s.validate(session, PermissionWrite); err != nil {
		return err
	}
	ok, err := s.backend.has(key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.backend.delete(key)
}
