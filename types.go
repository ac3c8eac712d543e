// Package nextver computes the next semantic version of a project from its
// Conventional Commits history.
package nextver

import (
	"fmt"
	"strings"
)

// Severity is the magnitude of a version increase. Values are ordered so
// that a larger Severity always means a bigger bump.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityPatch
	SeverityMinor
	SeverityMajor
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityPatch:
		return "patch"
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BumpMode selects how the bump is decided: BumpAuto derives it from the
// commit messages, every other mode forces the matching Severity.
type BumpMode int

const (
	BumpAuto BumpMode = iota
	BumpNone
	BumpPatch
	BumpMinor
	BumpMajor
)

var bumpModeNames = map[BumpMode]string{
	BumpAuto:  "auto",
	BumpNone:  "none",
	BumpPatch: "patch",
	BumpMinor: "minor",
	BumpMajor: "major",
}

func (m BumpMode) String() string {
	if name, ok := bumpModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("bumpmode(%d)", int(m))
}

// ParseBumpMode converts a mode name such as "auto" or "Minor" into a BumpMode
func ParseBumpMode(s string) (BumpMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for mode, name := range bumpModeNames {
		if name == want {
			return mode, nil
		}
	}
	return BumpAuto, fmt.Errorf("%w: %q", ErrUnknownBump, s)
}

// Severity returns the severity an explicit mode forces. BumpAuto has no
// fixed severity and must go through the classifier instead.
func (m BumpMode) Severity() (Severity, error) {
	switch m {
	case BumpNone:
		return SeverityNone, nil
	case BumpPatch:
		return SeverityPatch, nil
	case BumpMinor:
		return SeverityMinor, nil
	case BumpMajor:
		return SeverityMajor, nil
	default:
		return SeverityNone, fmt.Errorf("%w: %s has no fixed severity", ErrUnknownBump, m)
	}
}

// Resolution is the outcome of a single version resolution
type Resolution struct {
	// Version is the computed next version, release or prerelease form
	Version string `json:"version"`

	// Current is the version text extracted from the last tag
	Current string `json:"current"`

	// Severity is the bump that was applied to Current
	Severity Severity `json:"bump"`

	// LastTag is the tag the version was extracted from, if any
	LastTag *string `json:"last_tag,omitempty"`

	// Commits is the number of commits considered
	Commits int `json:"commits"`

	// Release reports whether the prerelease suffix was skipped on purpose
	Release bool `json:"release"`
}
