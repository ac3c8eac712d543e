package nextver

import "fmt"

// Prerelease labels version as not yet released, counting the pending
// commits: 1.3.0 with prefix "alpha" and 2 commits becomes 1.3.0-alpha.2.
// Without pending commits the version is returned unchanged.
func Prerelease(version, prefix string, commitCount int) string {
	if commitCount <= 0 {
		return version
	}
	return fmt.Sprintf("%s-%s.%d", version, prefix, commitCount)
}
