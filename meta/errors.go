package meta

import "errors"

// Sentinel errors for Meta and Version validation, matching the flat error
// taxonomy of spec.md §7.
var (
	ErrInvalidSize        = errors.New("meta: invalid size")
	ErrInvalidStage        = errors.New("meta: invalid stage")
	ErrInvalidVersion      = errors.New("meta: invalid version")
	ErrInvalidPrerelease   = errors.New("meta: invalid prerelease")
	ErrInvalidBuildmeta    = errors.New("meta: invalid buildmeta")
)
