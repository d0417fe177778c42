package meta

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semver-like version tag carried by every Meta, grounded on
// original_source/src/utils/version.rs's major.minor.patch[-pre][+build]
// validation.
type Version struct {
	Major      uint32
	Minor      uint32
	Patch      uint32
	Prerelease string
	Buildmeta  string
}

// NewVersion builds and validates a Version.
func NewVersion(major, minor, patch uint32, prerelease, buildmeta string) (Version, error) {
	v := Version{Major: major, Minor: minor, Patch: patch, Prerelease: prerelease, Buildmeta: buildmeta}
	if err := v.Check(); err != nil {
		return Version{}, err
	}
	return v, nil
}

// String renders the version as "major.minor.patch[-prerelease][+buildmeta]".
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Buildmeta != "" {
		b.WriteByte('+')
		b.WriteString(v.Buildmeta)
	}
	return b.String()
}

// Size is the byte length of v's canonical string form; it is what Meta.Size
// actually accounts for, matching how the original's Sizable impl treats
// strings.
func (v Version) Size() uint64 {
	return uint64(len(v.String()))
}

func isAlphaNumHyphen(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

func isAlphaHyphen(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-') {
			return false
		}
	}
	return true
}

// CheckPrerelease validates the prerelease component: only letters and
// hyphens, matching PRERELEASE_VERSION in the original source.
func CheckPrerelease(pre string) error {
	if !isAlphaHyphen(pre) {
		return ErrInvalidPrerelease
	}
	return nil
}

// CheckBuildmeta validates the buildmeta component: alphanumerics and
// hyphens, matching BUILDMETA_VERSION in the original source.
func CheckBuildmeta(build string) error {
	if !isAlphaNumHyphen(build) {
		return ErrInvalidBuildmeta
	}
	return nil
}

// Check validates every component of v.
func (v Version) Check() error {
	if err := CheckPrerelease(v.Prerelease); err != nil {
		return err
	}
	if err := CheckBuildmeta(v.Buildmeta); err != nil {
		return err
	}
	return nil
}

// ParseVersion parses a "major.minor.patch[-pre][+build]" string.
func ParseVersion(s string) (Version, error) {
	rest := s
	var buildmeta string
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		buildmeta = rest[i+1:]
		rest = rest[:i]
	}
	var prerelease string
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		prerelease = rest[i+1:]
		rest = rest[:i]
	}

	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return Version{}, ErrInvalidVersion
	}
	nums := make([]uint32, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Version{}, ErrInvalidVersion
		}
		nums[i] = uint32(n)
	}

	return NewVersion(nums[0], nums[1], nums[2], prerelease, buildmeta)
}

// Compare returns -1, 0, or 1 comparing v to other: numeric components first,
// then prerelease (absent > present, mirroring semver precedence where a
// prerelease version is lower than its release), then buildmeta
// lexicographically.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpUint32(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpUint32(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return cmpUint32(v.Patch, other.Patch)
	}
	if c := comparePrerelease(v.Prerelease, other.Prerelease); c != 0 {
		return c
	}
	return strings.Compare(v.Buildmeta, other.Buildmeta)
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePrerelease(a, b string) int {
	if a == "" {
		if b == "" {
			return 0
		}
		return 1
	}
	if b == "" {
		return -1
	}
	return strings.Compare(a, b)
}
