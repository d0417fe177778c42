// Package capability defines the pluggable cryptographic contracts the
// ledger core is parameterized over: hashing, signing, proving, committing,
// and authenticating. The core never inspects the byte layout of a digest,
// key, signature, or proof beyond what these interfaces expose.
package capability

import "errors"

// ErrVerifyFailed is returned by a Check method when the corresponding
// Verify call reports failure.
var ErrVerifyFailed = errors.New("capability: verification failed")

// Hasher computes and verifies a fixed-size digest over an arbitrary message.
type Hasher interface {
	// Digest returns the digest of msg.
	Digest(msg []byte) ([]byte, error)
	// Verify reports whether digest is the digest of msg.
	Verify(msg []byte, digest []byte) bool
	// Check is Verify mapped onto ErrVerifyFailed.
	Check(msg []byte, digest []byte) error
}

// Signer generates keys and produces/verifies signatures over a message.
type Signer interface {
	// GenerateKeys derives a (public, private) key pair. A nil seed requests
	// fresh randomness.
	GenerateKeys(seed []byte) (pk []byte, sk []byte, err error)
	// Sign signs msg under sk.
	Sign(msg []byte, sk []byte) ([]byte, error)
	// Verify reports whether sig is a valid signature over msg under pk.
	Verify(msg []byte, pk []byte, sig []byte) bool
	// Check is Verify mapped onto ErrVerifyFailed.
	Check(msg []byte, pk []byte, sig []byte) error
}

// Prover produces and verifies a proof over a message (e.g. a block's
// consensus proof). Fork-choice and the consensus algorithm itself live
// outside the core; Prover is only the pluggable proof primitive.
type Prover interface {
	Prove(msg []byte) ([]byte, error)
	Verify(msg []byte, proof []byte) bool
	Check(msg []byte, proof []byte) error
}

// Committer produces and verifies a symmetric commitment over a message,
// used by BlockGraph to commit to its frontier without a public-key scheme.
type Committer interface {
	Commit(msg []byte) ([]byte, error)
	Verify(msg []byte, commitment []byte) bool
	Check(msg []byte, commitment []byte) error
}

// Authenticator produces and verifies a MAC-like tag over a message under a
// symmetric key.
type Authenticator interface {
	Authenticate(msg []byte, key []byte) ([]byte, error)
	Verify(msg []byte, key []byte, tag []byte) bool
	Check(msg []byte, key []byte, tag []byte) error
}

// checkFromVerify is the shared "Verify -> Check" adapter used by every
// concrete implementation in this package, mirroring the original source's
// Hash::check/Sign::check/Prove::check contracts.
func checkFromVerify(ok bool) error {
	if !ok {
		return ErrVerifyFailed
	}
	return nil
}
