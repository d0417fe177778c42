package capability

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
)

// SHA256Committer is the default Committer: a commitment is simply
// SHA-256(msg), adapted from the teacher's pkg/commitment/commitment.go
// HashConcat helper (used there to commit to canonicalized JSON blobs).
type SHA256Committer struct{}

// NewSHA256Committer returns a ready-to-use SHA256Committer.
func NewSHA256Committer() *SHA256Committer { return &SHA256Committer{} }

func (SHA256Committer) Commit(msg []byte) ([]byte, error) {
	sum := sha256.Sum256(msg)
	return sum[:], nil
}

func (c SHA256Committer) Verify(msg []byte, commitment []byte) bool {
	got, err := c.Commit(msg)
	if err != nil {
		return false
	}
	return bytes.Equal(got, commitment)
}

func (c SHA256Committer) Check(msg []byte, commitment []byte) error {
	return checkFromVerify(c.Verify(msg, commitment))
}

// HMACAuthenticator is the default Authenticator: tag = HMAC-SHA256(key, msg).
type HMACAuthenticator struct{}

// NewHMACAuthenticator returns a ready-to-use HMACAuthenticator.
func NewHMACAuthenticator() *HMACAuthenticator { return &HMACAuthenticator{} }

func (HMACAuthenticator) Authenticate(msg []byte, key []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil), nil
}

func (a HMACAuthenticator) Verify(msg []byte, key []byte, tag []byte) bool {
	got, err := a.Authenticate(msg, key)
	if err != nil {
		return false
	}
	return hmac.Equal(got, tag)
}

func (a HMACAuthenticator) Check(msg []byte, key []byte, tag []byte) error {
	return checkFromVerify(a.Verify(msg, key, tag))
}
