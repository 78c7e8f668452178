// Package vcs reads version control state for the status line.
//
// Only git is supported. Branch names are read straight from the
// repository files; file status shells out to the git binary.
package vcs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNoHead is returned by Branch when HEAD cannot be read.
var ErrNoHead = errors.New("repository has no readable HEAD")

// DefaultStatusTTL is how long a path's status is cached.
const DefaultStatusTTL = 2 * time.Second

// Repository is a discovered git repository.
type Repository struct {
	root   string
	gitDir string
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cachedStatus
}

type cachedStatus struct {
	status Status
	at     time.Time
}

// Discover walks up from dir looking for a repository. It returns nil when
// dir is not inside one; that is a normal condition, not an error.
func Discover(dir string) *Repository {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	current := abs
	for {
		if gitDir, ok := resolveGitDir(current); ok {
			return &Repository{
				root:   current,
				gitDir: gitDir,
				ttl:    DefaultStatusTTL,
				cache:  make(map[string]cachedStatus),
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil
		}
		current = parent
	}
}

// resolveGitDir returns the git directory for a worktree root. .git may be
// a directory or, for linked worktrees and submodules, a "gitdir:" file.
func resolveGitDir(root string) (string, bool) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		return dotGit, true
	}

	content, err := os.ReadFile(dotGit)
	if err != nil || !bytes.HasPrefix(content, []byte("gitdir:")) {
		return "", false
	}
	gitDir := strings.TrimSpace(string(content[len("gitdir:"):]))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(root, gitDir)
	}
	return gitDir, true
}

// Root returns the worktree root.
func (r *Repository) Root() string {
	return r.root
}

// SetStatusTTL changes how long statuses are cached.
func (r *Repository) SetStatusTTL(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ttl = ttl
}

// Branch returns the checked-out branch, or the short commit hash when
// HEAD is detached.
func (r *Repository) Branch() (string, error) {
	content, err := os.ReadFile(filepath.Join(r.gitDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHead, err)
	}
	content = bytes.TrimSpace(content)

	if ref, ok := bytes.CutPrefix(content, []byte("ref: ")); ok {
		return strings.TrimPrefix(string(ref), "refs/heads/"), nil
	}
	hash := string(content)
	if len(hash) < 7 {
		return "", fmt.Errorf("%w: malformed HEAD %q", ErrNoHead, hash)
	}
	return hash[:7], nil
}

// Status returns the status of path, which may be absolute or relative to
// the repository root.
func (r *Repository) Status(path string) (Status, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache[path]; ok && time.Since(c.at) < r.ttl {
		return c.status, nil
	}

	out, err := r.git("status", "--porcelain", "--untracked-files=all", "--", path)
	if err != nil {
		return StatusUnknown, err
	}
	status := parsePorcelain(out)
	r.cache[path] = cachedStatus{status: status, at: time.Now()}
	return status, nil
}

// Invalidate drops cached statuses, e.g. after a save.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

func (r *Repository) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// parsePorcelain reads the first entry of `git status --porcelain` output.
func parsePorcelain(out string) Status {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 {
			continue
		}
		return statusFromXY(line[0], line[1])
	}
	return StatusClean
}
