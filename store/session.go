// Package store implements the session-authorized key/value Store of
// spec.md §4.3: range queries, CRUD on opaque byte keys/values, and a
// Storable interface binding that namespaces domain entities by an 8-byte type
// prefix. Grounded on original_source/src/io/store.rs and
// original_source/src/io/session.rs, and on the teacher's
// pkg/kvdb/adapter.go KV wrapper for the persistent backend.
package store

import "time"

// Permission is strictly ordered None < Read < Write (spec.md §3.3),
// matching original_source's io::Permission enum.
type Permission int

const (
	PermissionNone Permission = iota
	PermissionRead
	PermissionWrite
)

func (p Permission) String() string {
	switch p {
	case PermissionNone:
		return "none"
	case PermissionRead:
		return "read"
	case PermissionWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Session is the capability token issued by session(permission) and
// required by every other Store operation (spec.md §3.3).
type Session struct {
	ID         uint64     `json:"id"`
	Permission Permission `json:"permission"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Payload    []byte     `json:"payload,omitempty"`
}

// IsExpired reports whether the session has passed its expiry (invariant
// S-1: now() < expires_at is checked before any session-authorized op).
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// DefaultSessionTTL is the lifetime a freshly issued Session carries
// (spec.md §4.3 "e.g., 1 hour").
const DefaultSessionTTL = time.Hour
