package store

import (
	"encoding/hex"
	"encoding/json"
	"errors"
)

// ErrUnknownCustomOp is returned by Custom for an unrecognized op name.
var ErrUnknownCustomOp = errors.New("store: unknown custom op")

// dumpResult is the JSON shape returned by the "dump" custom op: every
// stored key (hex-encoded) and its raw value, optionally filtered by a
// prefix.
type dumpResult struct {
	Keys   []string `json:"keys"`
	Values [][]byte `json:"values"`
}

// dumpParams is the optional JSON payload accepted by "dump": a byte
// prefix to filter on. A nil/empty payload dumps everything.
type dumpParams struct {
	Prefix []byte `json:"prefix,omitempty"`
}

// Custom runs a backend-defined operation (spec.md §4.3 "custom(session,
// params)"). The only op this core defines is "dump", grounded on
// original_source's tests/fixture/io/store/custom_op.rs, which exercises a
// store-introspection custom op; applications may extend this switch with
// their own op names without changing the Store's public surface.
func (s *Store) Custom(session Session, op string, params []byte) ([]byte, error) {
	switch op {
	case "dump":
		if err := s.validate(session, PermissionRead); err != nil {
			return nil, err
		}
		var p dumpParams
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, err
			}
		}
		raw, err := s.backend.dump(p.Prefix)
		if err != nil {
			return nil, err
		}
		keys := make([][]byte, 0, len(raw))
		for k := range raw {
			keys = append(keys, []byte(k))
		}
		sortByteSlices(keys)

		result := dumpResult{Keys: make([]string, 0, len(keys)), Values: make([][]byte, 0, len(keys))}
		for _, k := range keys {
			result.Keys = append(result.Keys, hex.EncodeToString(k))
			result.Values = append(result.Values, raw[string(k)])
		}
		return json.Marshal(result)
	default:
		return nil, ErrUnknownCustomOp
	}
}
