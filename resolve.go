package nextver

import "fmt"

// Resolve computes the next version string for the given commits and last
// tag. See ResolveDetailed.
func Resolve(cfg ProjectConfig, mode BumpMode, release bool, commits []string, lastTag *string) (string, error) {
	res, err := ResolveDetailed(cfg, mode, release, commits, lastTag)
	if err != nil {
		return "", err
	}
	return res.Version, nil
}

// ResolveDetailed computes the next version and reports how it got there.
//
// With BumpAuto the bump is classified from commits, any other mode is
// applied as-is. Unless release is set, pending commits are counted into a
// prerelease suffix. Releasing without commits fails with
// ErrNoCommitsOnRelease, except for BumpAuto with a previous tag, which
// reports that tag's version again. Any error aborts the resolution.
func ResolveDetailed(cfg ProjectConfig, mode BumpMode, release bool, commits []string, lastTag *string) (*Resolution, error) {
	// only an automatic bump may re-release the last tag unchanged
	if release && len(commits) == 0 && (lastTag == nil || mode != BumpAuto) {
		return nil, ErrNoCommitsOnRelease
	}

	severity, err := resolveSeverity(cfg, mode, commits)
	if err != nil {
		return nil, fmt.Errorf("classifying bump: %w", err)
	}

	current, err := CurrentVersion(cfg.TagRegex, lastTag)
	if err != nil {
		return nil, fmt.Errorf("extracting current version: %w", err)
	}

	version, err := Bump(severity, current)
	if err != nil {
		return nil, fmt.Errorf("bumping version: %w", err)
	}

	if !release {
		version = Prerelease(version, cfg.PrereleasePrefix, len(commits))
	}

	return &Resolution{
		Version:  version,
		Current:  current,
		Severity: severity,
		LastTag:  lastTag,
		Commits:  len(commits),
		Release:  release,
	}, nil
}

func resolveSeverity(cfg ProjectConfig, mode BumpMode, commits []string) (Severity, error) {
	if mode == BumpAuto {
		return Classify(cfg.MajorRegex, cfg.MinorRegex, cfg.PatchRegex, commits)
	}
	return mode.Severity()
}
