package nextver

import "fmt"

// Repository is the version control view needed to resolve a version
type Repository interface {
	// LastTag returns the most recent reachable tag, or nil when there is none
	LastTag() (*string, error)

	// CommitsSinceLastTag returns the full messages of the commits made
	// after the last tag
	CommitsSinceLastTag() ([]string, error)
}

// ResolveRepository reads the last tag and pending commits from repo and
// resolves the next version from them.
func ResolveRepository(cfg ProjectConfig, repo Repository, mode BumpMode, release bool) (*Resolution, error) {
	lastTag, err := repo.LastTag()
	if err != nil {
		return nil, fmt.Errorf("reading last tag: %w", err)
	}

	commits, err := repo.CommitsSinceLastTag()
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}

	return ResolveDetailed(cfg, mode, release, commits, lastTag)
}
