package capability

import (
	"bytes"
	"crypto/sha256"
)

// SHA256Hasher is the default Hasher, grounded on the plain crypto/sha256
// hashing used throughout the teacher's pkg/commitment and pkg/crypto/bls
// packages.
type SHA256Hasher struct{}

// NewSHA256Hasher returns a ready-to-use SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher { return &SHA256Hasher{} }

func (SHA256Hasher) Digest(msg []byte) ([]byte, error) {
	sum := sha256.Sum256(msg)
	return sum[:], nil
}

func (h SHA256Hasher) Verify(msg []byte, digest []byte) bool {
	got, err := h.Digest(msg)
	if err != nil {
		return false
	}
	return bytes.Equal(got, digest)
}

func (h SHA256Hasher) Check(msg []byte, digest []byte) error {
	return checkFromVerify(h.Verify(msg, digest))
}

// Size is the fixed digest size produced by SHA256Hasher.
func (SHA256Hasher) Size() int { return sha256.Size }
