package nextver

import "errors"

var (
	// ErrInvalidPattern is returned when a configured regular expression
	// does not compile. Patterns are only compiled when they are needed.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidVersion is returned when the text extracted from a tag is
	// not a semantic version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrNoCommitsOnRelease is returned when a release is requested but
	// there is nothing to release.
	ErrNoCommitsOnRelease = errors.New("no commits to release")

	// ErrUnknownBump is returned when a bump mode cannot be turned into a
	// concrete severity.
	ErrUnknownBump = errors.New("unknown bump")
)
