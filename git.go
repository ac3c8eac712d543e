// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.

package nextver

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/sirupsen/logrus"
)

// GitOptions configures how a GitRepository reads tags and commits
type GitOptions struct {
	// Commitish is the commit versions are computed for (default: "HEAD")
	Commitish plumbing.Revision

	// TagFilter allows filtering which tags to consider
	TagFilter func(string) bool

	// TagPattern is a regex pattern to filter tags (alternative to TagFilter)
	TagPattern string

	// Logger receives debug output, discarded when nil
	Logger logrus.FieldLogger
}

// GitRepository reads the last tag and the commits made since it from a
// go-git repository.
type GitRepository struct {
	repo      *git.Repository
	head      *object.Commit
	tagFilter func(string) bool
	log       logrus.FieldLogger

	scanned bool
	lastTag *plumbing.Reference
	tagged  *object.Commit
}

var _ Repository = (*GitRepository)(nil)

// OpenRepository opens a Git repository at the specified path
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// NewGitRepository resolves opts.Commitish in repo and returns a Repository
// reading history from there.
func NewGitRepository(repo *git.Repository, opts GitOptions) (*GitRepository, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}

	if opts.Commitish == "" {
		opts.Commitish = "HEAD"
	}

	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}

	if opts.TagPattern != "" && opts.TagFilter == nil {
		re, err := compilePattern("tag_pattern", opts.TagPattern)
		if err != nil {
			return nil, err
		}
		opts.TagFilter = re.MatchString
	}

	revision, err := repo.ResolveRevision(opts.Commitish)
	if err != nil {
		return nil, fmt.Errorf("resolving commitish %q: %w", opts.Commitish, err)
	}

	head, err := repo.CommitObject(*revision)
	if err != nil {
		return nil, fmt.Errorf("getting commit object: %w", err)
	}

	return &GitRepository{
		repo:      repo,
		head:      head,
		tagFilter: opts.TagFilter,
		log:       opts.Logger.WithField("commitish", string(opts.Commitish)),
	}, nil
}

// LastTag returns the short name of the nearest tag reachable from the
// commitish, or nil when no tag is reachable.
func (g *GitRepository) LastTag() (*string, error) {
	if err := g.scan(); err != nil {
		return nil, err
	}
	if g.lastTag == nil {
		return nil, nil
	}
	name := g.lastTag.Name().Short()
	return &name, nil
}

// CommitsSinceLastTag returns the full commit messages reachable from the
// commitish but not from the last tag, newest first. Without a tag the
// whole history is returned.
func (g *GitRepository) CommitsSinceLastTag() ([]string, error) {
	if err := g.scan(); err != nil {
		return nil, err
	}

	released := map[plumbing.Hash]bool{}
	if g.tagged != nil {
		err := object.NewCommitPreorderIter(g.tagged, nil, nil).ForEach(func(c *object.Commit) error {
			released[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking released history: %w", err)
		}
	}

	var messages []string
	err := object.NewCommitPreorderIter(g.head, released, nil).ForEach(func(c *object.Commit) error {
		messages = append(messages, c.Message)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commits: %w", err)
	}

	g.log.WithField("commits", len(messages)).Debug("collected commits since last tag")
	return messages, nil
}

func (g *GitRepository) scan() error {
	if g.scanned {
		return nil
	}

	tags, err := tagsByCommit(g.repo, g.tagFilter)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}

	err = object.NewCommitPreorderIter(g.head, nil, nil).ForEach(func(c *object.Commit) error {
		if refs, ok := tags[c.Hash]; ok {
			g.lastTag = newestTag(refs)
			g.tagged = c
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("finding recent tag: %w", err)
	}

	if g.lastTag != nil {
		g.log.WithFields(logrus.Fields{
			"tag":    g.lastTag.Name().Short(),
			"commit": g.tagged.Hash.String()[:8],
		}).Debug("found last tag")
	} else {
		g.log.Debug("no reachable tag")
	}

	g.scanned = true
	return nil
}

// tagsByCommit indexes tags by the commit they point at, peeling annotated
// tags to their target.
func tagsByCommit(repo *git.Repository, tagFilter func(string) bool) (map[plumbing.Hash][]*plumbing.Reference, error) {
	tags, err := repo.Tags()
	if err != nil {
		return nil, err
	}

	index := map[plumbing.Hash][]*plumbing.Reference{}
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		if tagFilter != nil && !tagFilter(ref.Name().Short()) {
			return nil
		}

		obj, err := repo.TagObject(ref.Hash())
		switch err {
		case nil:
			// Annotated tag
			index[obj.Target] = append(index[obj.Target], ref)
		case plumbing.ErrObjectNotFound:
			// Lightweight tag
			index[ref.Hash()] = append(index[ref.Hash()], ref)
		default:
			return err
		}

		return nil
	})

	return index, err
}

// newestTag picks one tag among several on the same commit: the highest
// version wins, then the name.
func newestTag(refs []*plumbing.Reference) *plumbing.Reference {
	sorted := append([]*plumbing.Reference(nil), refs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name().Short(), sorted[j].Name().Short()
		va, errA := semver.ParseTolerant(stripModuleTagPrefixes(a))
		vb, errB := semver.ParseTolerant(stripModuleTagPrefixes(b))
		switch {
		case errA == nil && errB == nil && !va.EQ(vb):
			return va.GT(vb)
		case errA == nil && errB != nil:
			return true
		case errA != nil && errB == nil:
			return false
		}
		return a > b
	})
	return sorted[0]
}

func stripModuleTagPrefixes(tag string) string {
	_, versionComponent := path.Split(tag)
	return strings.TrimPrefix(versionComponent, "v")
}
