package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	repo := Discover(nested)
	require.NotNil(t, repo)
	assert.Equal(t, root, repo.Root())

	branch, err := repo.Branch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestDiscoverNone(t *testing.T) {
	assert.Nil(t, Discover(t.TempDir()))
}

func TestDiscoverGitdirFile(t *testing.T) {
	base := t.TempDir()
	gitDir := filepath.Join(base, "real-git")
	writeFile(t, filepath.Join(gitDir, "HEAD"), "0123456789abcdef0123456789abcdef01234567\n")

	worktree := filepath.Join(base, "wt")
	writeFile(t, filepath.Join(worktree, ".git"), "gitdir: ../real-git\n")

	repo := Discover(worktree)
	require.NotNil(t, repo)

	branch, err := repo.Branch()
	require.NoError(t, err)
	assert.Equal(t, "0123456", branch)
}

func TestBranchMissingHead(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	repo := Discover(root)
	require.NotNil(t, repo)
	_, err := repo.Branch()
	assert.ErrorIs(t, err, ErrNoHead)
}

func TestStatusFromXY(t *testing.T) {
	tests := []struct {
		xy   string
		want Status
	}{
		{"??", StatusUntracked},
		{"!!", StatusIgnored},
		{"UU", StatusConflicted},
		{"AA", StatusConflicted},
		{"A ", StatusAdded},
		{"AM", StatusAdded},
		{" M", StatusModified},
		{"MM", StatusModified},
		{"M ", StatusStaged},
		{" D", StatusDeleted},
		{"R ", StatusRenamed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromXY(tt.xy[0], tt.xy[1]), tt.xy)
	}
	assert.Equal(t, StatusClean, parsePorcelain(""))
}

func TestStatusWithGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = root
	require.NoError(t, cmd.Run())

	path := filepath.Join(root, "new.txt")
	writeFile(t, path, "x")

	repo := Discover(root)
	require.NotNil(t, repo)

	status, err := repo.Status("new.txt")
	require.NoError(t, err)
	assert.Equal(t, StatusUntracked, status)

	require.NoError(t, os.Remove(path))
	status, err = repo.Status(path)
	require.NoError(t, err)
	assert.Equal(t, StatusUntracked, status, "cached within the TTL")

	repo.Invalidate()
	status, err = repo.Status(path)
	require.NoError(t, err)
	assert.Equal(t, StatusClean, status)
}
