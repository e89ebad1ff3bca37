// Package increment maps a semantic version onto the increment keyword the
// heyVR upload API expects in place of an absolute version.
package increment

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Kind is an increment keyword.
type Kind string

// Increment keywords understood by the upload API.
const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// String returns the keyword.
func (k Kind) String() string { return string(k) }

// Classify selects the increment keyword from the trailing zero components
// of version. It is a suffix match: "1.10.0" is minor, "0.0.0" is major.
func Classify(version string) Kind {
	switch {
	case strings.HasSuffix(version, ".0.0"):
		return Major
	case strings.HasSuffix(version, ".0"):
		return Minor
	default:
		return Patch
	}
}

// ErrNotSemver is returned by Validate for strings that are not x.y.z.
var ErrNotSemver = errors.New("not a x.y.z semantic version")

// Validate reports whether version is a strict x.y.z semantic version with
// non-negative integer components and no pre-release or build suffix.
func Validate(version string) error {
	v := "v" + version
	if !semver.IsValid(v) || semver.Canonical(v) != v || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return fmt.Errorf("%q: %w", version, ErrNotSemver)
	}
	return nil
}
