package nextver

import (
	"fmt"
	"regexp"
)

const zeroVersion = "0.0.0"

// CurrentVersion finds the version embedded in lastTag using tagRegex.
// The first match anywhere in the tag is returned as-is; it is only
// validated as semver when it gets bumped. A nil tag, or one the pattern
// does not match, yields "0.0.0".
func CurrentVersion(tagRegex string, lastTag *string) (string, error) {
	re, err := compilePattern("tag_regex", tagRegex)
	if err != nil {
		return "", err
	}

	if lastTag == nil {
		return zeroVersion, nil
	}

	if loc := re.FindStringIndex(*lastTag); loc != nil {
		return (*lastTag)[loc[0]:loc[1]], nil
	}
	return zeroVersion, nil
}

func compilePattern(option, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidPattern, option, pattern, err)
	}
	return re, nil
}
