// Package codec implements the three wire/storage encodings spec.md §6
// requires every entity to round-trip through: canonical JSON, a compact
// binary encoding, and hex. Grounded on the teacher's
// pkg/commitment/commitment.go canonical-JSON approach for the text path;
// github.com/fxamacker/cbor/v2 (already present transitively in the
// teacher's go.mod) supplies the binary path, since no teacher file
// performs binary serialization directly.
package codec

import (
	"encoding/hex"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	// Full-precision timestamps, so time.Time fields such as
	// Session.ExpiresAt round-trip unchanged.
	opts.Time = cbor.TimeRFC3339Nano
	mode, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// ToJSON renders v as canonical JSON.
func ToJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// FromJSON parses JSON into v.
func FromJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ToBytes renders v as canonical CBOR, the core's compact binary wire
// format.
func ToBytes(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// FromBytes parses CBOR into v.
func FromBytes(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

// ToHex renders v as canonical binary (the same encoding ToBytes
// produces), then hex-encodes it, matching
// original_source/src/base/serialize.rs's to_hex = hex::encode(to_bytes(t)?).
func ToHex(v any) (string, error) {
	b, err := ToBytes(v)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// FromHex decodes a hex string produced by ToHex back into v.
func FromHex(s string, v any) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	return FromBytes(b, v)
}
