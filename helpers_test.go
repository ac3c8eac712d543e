package nextver

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
)

var testSignature = &object.Signature{
	Name:  "test",
	Email: "test@example.com",
	When:  time.Now(),
}

// historyStep is one commit in a test history, optionally tagged
type historyStep struct {
	message string
	tags    []string
}

// testRepoCreate creates a new in-memory git repository for testing
func testRepoCreate() (*git.Repository, error) {
	storage := memory.NewStorage()
	fs := memfs.New()
	return git.Init(storage, fs)
}

// testRepoFSCreate creates a new filesystem-based git repository for testing,
// with the object store under path/.git so it can be reopened from disk
func testRepoFSCreate(path string) (*git.Repository, error) {
	dotGit := osfs.New(filepath.Join(path, ".git"))
	storage := filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault())
	return git.Init(storage, osfs.New(path))
}

// testRepoCommit writes a unique file and commits it with message
func testRepoCommit(repo *git.Repository, message string) (plumbing.Hash, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	head, err := repo.Head()
	count := 0
	if err == nil {
		iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
		if err != nil {
			return plumbing.ZeroHash, err
		}
		_ = iter.ForEach(func(*object.Commit) error {
			count++
			return nil
		})
	}

	filename := fmt.Sprintf("file_%d.txt", count)
	if err := writeFile(workTree.Filesystem, filename, message); err != nil {
		return plumbing.ZeroHash, err
	}

	if _, err := workTree.Add(filename); err != nil {
		return plumbing.ZeroHash, err
	}

	return workTree.Commit(message, &git.CommitOptions{Author: testSignature})
}

// testRepoHistory replays steps in order, oldest first, tagging commits
// with lightweight tags as requested
func testRepoHistory(repo *git.Repository, steps []historyStep) (*git.Repository, error) {
	for _, step := range steps {
		hash, err := testRepoCommit(repo, step.message)
		if err != nil {
			return nil, err
		}

		for _, tag := range step.tags {
			if _, err := repo.CreateTag(tag, hash, nil); err != nil {
				return nil, err
			}
		}
	}

	return repo, nil
}

// writeFile writes content to a file in the given filesystem
func writeFile(fs billy.Filesystem, filename, content string) error {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte(content))
	return err
}

// trimMessages strips the trailing whitespace git keeps on messages
func trimMessages(messages []string) []string {
	trimmed := make([]string, 0, len(messages))
	for _, m := range messages {
		trimmed = append(trimmed, strings.TrimSpace(m))
	}
	return trimmed
}

func strPtr(s string) *string {
	return &s
}
