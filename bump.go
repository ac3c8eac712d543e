package nextver

import (
	"fmt"

	"github.com/blang/semver"
)

// Bump applies severity to the semantic version in current and returns the
// result in release form. Prerelease and build metadata on current are
// accepted but never carried over.
func Bump(severity Severity, current string) (string, error) {
	v, err := semver.Parse(current)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidVersion, current, err)
	}

	var next semver.Version
	switch severity {
	case SeverityMajor:
		next = semver.Version{Major: v.Major + 1}
	case SeverityMinor:
		next = semver.Version{Major: v.Major, Minor: v.Minor + 1}
	case SeverityPatch:
		next = semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	case SeverityNone:
		next = semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownBump, severity)
	}

	return next.String(), nil
}
