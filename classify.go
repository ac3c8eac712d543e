package nextver

import "regexp"

type commitMatcher struct {
	major *regexp.Regexp
	minor *regexp.Regexp
	patch *regexp.Regexp
}

func newCommitMatcher(majorRegex, minorRegex, patchRegex string) (*commitMatcher, error) {
	major, err := compilePattern("major_regex", majorRegex)
	if err != nil {
		return nil, err
	}
	minor, err := compilePattern("minor_regex", minorRegex)
	if err != nil {
		return nil, err
	}
	patch, err := compilePattern("patch_regex", patchRegex)
	if err != nil {
		return nil, err
	}
	return &commitMatcher{major: major, minor: minor, patch: patch}, nil
}

// Classify reduces commit messages to the single bump they call for.
//
// Patterns are searched anywhere in the full message, so "^feat" only
// matches the subject line while "BREAKING CHANGE:" may sit in a footer.
// The first major match wins outright. Minor never gets downgraded by a
// later patch, and a commit matching nothing still counts as a patch.
// An empty list needs no bump at all.
func Classify(majorRegex, minorRegex, patchRegex string, commits []string) (Severity, error) {
	m, err := newCommitMatcher(majorRegex, minorRegex, patchRegex)
	if err != nil {
		return SeverityNone, err
	}

	severity := SeverityNone
	for _, msg := range commits {
		switch {
		case m.major.MatchString(msg):
			return SeverityMajor, nil
		case m.minor.MatchString(msg):
			severity = max(severity, SeverityMinor)
		case m.patch.MatchString(msg):
			severity = max(severity, SeverityPatch)
		default:
			// unstructured commits are still worth a release
			severity = max(severity, SeverityPatch)
		}
	}

	return severity, nil
}
