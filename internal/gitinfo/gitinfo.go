// Package gitinfo looks up when content files last changed according to the
// commit history of the repository that contains them.
package gitinfo

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	ferrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

// History answers last modified queries against a single repository.
// Results are cached per path.
type History struct {
	repo *git.Repository
	root string

	mu    sync.Mutex
	cache map[string]entry
}

type entry struct {
	when time.Time
	ok   bool
}

// Open finds the repository containing path, walking up to the nearest .git.
func Open(path string) (*History, error) {
	abs, err := resolve(path)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to resolve repository path").
			WithCause(err).WithContext("path", path).Build()
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, ferrors.ContentReadError("failed to open git repository").
			WithCause(err).WithContext("path", path).Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ferrors.ContentReadError("git repository has no worktree").
			WithCause(err).WithContext("path", path).Build()
	}
	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, ferrors.FileSystemError("failed to resolve worktree root").
			WithCause(err).WithContext("path", path).Build()
	}

	return &History{repo: repo, root: root, cache: make(map[string]entry)}, nil
}

// Root returns the worktree root.
func (h *History) Root() string { return h.root }

// LastModified returns the committer time of the newest commit touching path.
// Files outside the worktree or without history report false.
func (h *History) LastModified(path string) (time.Time, bool) {
	abs, err := resolve(path)
	if err != nil {
		return time.Time{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if e, hit := h.cache[abs]; hit {
		return e.when, e.ok
	}
	when, ok := h.lookup(abs)
	h.cache[abs] = entry{when: when, ok: ok}
	return when, ok
}

func (h *History) lookup(abs string) (time.Time, bool) {
	rel, err := filepath.Rel(h.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)

	cIter, err := h.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return time.Time{}, false
	}
	defer cIter.Close()

	var when time.Time
	found := false
	err = cIter.ForEach(func(c *object.Commit) error {
		when = c.Committer.When.UTC()
		found = true
		return storer.ErrStop
	})
	if err != nil {
		return time.Time{}, false
	}
	return when, found
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
