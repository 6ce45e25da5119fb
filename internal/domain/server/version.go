package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparsableVersion signals a version string with no usable numeric components.
var ErrUnparsableVersion = errors.New("unparsable version")

// Version is a numeric (major, minor, patch) triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String renders the version in dotted form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tier returns the compatibility tier for the major version.
func (v Version) Tier() Tier {
	return Tier("solr_" + strconv.Itoa(v.Major))
}

// ParseVersion parses "M", "M.m" or "M.m.p", right-padding missing components with zero.
// Build metadata after the first space or hyphen is ignored; components past the third are dropped.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " -"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty", ErrUnparsableVersion)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrUnparsableVersion, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Resolution is either a resolved version or unresolved. There is no placeholder version.
type Resolution struct {
	version  Version
	resolved bool
}

// Resolved wraps a real version.
func Resolved(v Version) Resolution {
	return Resolution{version: v, resolved: true}
}

// Unresolved marks the version as undeterminable.
func Unresolved() Resolution {
	return Resolution{}
}

// Version returns the version and whether it was resolved.
func (r Resolution) Version() (Version, bool) {
	return r.version, r.resolved
}
