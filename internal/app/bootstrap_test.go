package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonical(t *testing.T, path string) string {
	t.Helper()
	p, err := canonicalPath(path)
	require.NoError(t, err)
	return p
}

func TestBootstrapNoArguments(t *testing.T) {
	f := newFixture(t)
	ws := f.app.Workspace

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, ws.Root)
	assert.Nil(t, ws.CurrentBuffer())
	assert.Zero(t, ws.Len())
}

func TestBootstrapExistingFile(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.WriteFile("existing.txt", []byte("abc"), 0o644))

	a, err := f.build("existing.txt")
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	b := a.Workspace.CurrentBuffer()
	require.NotNil(t, b)
	assert.Equal(t, "abc", b.Data())
	assert.Equal(t, canonical(t, "existing.txt"), b.Path)
	assert.False(t, b.Modified())
}

func TestBootstrapMissingFile(t *testing.T) {
	f := newFixture(t, "missing.txt")
	ws := f.app.Workspace

	b := ws.CurrentBuffer()
	require.NotNil(t, b)
	assert.Empty(t, b.Data())
	assert.Equal(t, filepath.Join(ws.Root, "missing.txt"), b.Path)

	_, err := os.Stat("missing.txt")
	assert.ErrorIs(t, err, os.ErrNotExist, "nothing is written until save")
}

func TestBootstrapUnstatablePathIsNewBuffer(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "parent is a file",
			setup: func(t *testing.T) string {
				require.NoError(t, os.WriteFile("existing.txt", []byte("abc"), 0o644))
				return filepath.Join("existing.txt", "sub")
			},
		},
		{
			name: "parent not searchable",
			setup: func(t *testing.T) string {
				require.NoError(t, os.Mkdir("locked", 0o755))
				require.NoError(t, os.Chmod("locked", 0o000))
				t.Cleanup(func() { os.Chmod("locked", 0o755) })
				return filepath.Join("locked", "notes.txt")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			arg := tt.setup(t)

			a, err := f.build(arg)
			require.NoError(t, err)
			t.Cleanup(a.Shutdown)

			b := a.Workspace.CurrentBuffer()
			require.NotNil(t, b)
			assert.Empty(t, b.Data())
			assert.Equal(t, filepath.Join(a.Workspace.Root, arg), b.Path)
		})
	}
}

func TestBootstrapAbsoluteMissingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "new.go")
	f := newFixture(t, target)

	b := f.app.Workspace.CurrentBuffer()
	require.NotNil(t, b)
	assert.Equal(t, target, b.Path)
	assert.Equal(t, "Go", b.Syntax.Name)
}

func TestBootstrapDirectoryArgument(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Join("project", "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("project", "main.go"), []byte("package main\n"), 0o644))
	want := canonical(t, "project")

	a, err := f.build("project", "main.go", "src", "notes.md")
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	ws := a.Workspace

	assert.Equal(t, want, ws.Root)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, want, canonical(t, cwd))

	buffers := ws.Buffers()
	require.Len(t, buffers, 2, "the root and later directories are not buffers")
	assert.Equal(t, filepath.Join(want, "main.go"), buffers[0].Path)
	assert.Equal(t, "package main\n", buffers[0].Data())
	assert.Equal(t, filepath.Join(want, "notes.md"), buffers[1].Path)
	assert.Same(t, buffers[1], ws.CurrentBuffer(), "last argument is current")
}

func TestBootstrapDirectoryOnlyFirst(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.Mkdir("docs", 0o755))
	start, err := os.Getwd()
	require.NoError(t, err)

	a, err := f.build("notes.txt", "docs")
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	assert.Equal(t, start, a.Workspace.Root, "a later directory does not change the root")
	assert.Equal(t, 1, a.Workspace.Len())
}

func TestBootstrapSymlinkedDirectory(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.Mkdir("real", 0o755))
	if err := os.Symlink("real", "link"); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	want := canonical(t, "real")

	a, err := f.build("link")
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	assert.Equal(t, want, a.Workspace.Root)
	assert.Zero(t, a.Workspace.Len())
}

func TestBootstrapUserSyntaxBeforeBuffers(t *testing.T) {
	f := setupFixture(t)
	dir := filepath.Join(f.config, "syntaxes")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	def := "name: Notes\nextensions: [note]\nrules:\n  - pattern: '^#.*'\n    token: heading\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte(def), 0o644))

	a, err := f.build("todo.note")
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	b := a.Workspace.CurrentBuffer()
	require.NotNil(t, b)
	require.NotNil(t, b.Syntax)
	assert.Equal(t, "Notes", b.Syntax.Name)
}

func TestBootstrapFailureRestoresWorkingDirectory(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.Mkdir("project", 0o755))
	dir := filepath.Join(f.config, "syntaxes")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unclosed"), 0o644))
	start, err := os.Getwd()
	require.NoError(t, err)

	_, err = f.build("project")
	require.Error(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, start, cwd)
}

func TestBootstrapUnreadableFile(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, os.WriteFile("binary.dat", []byte{0xff, 0xfe, 0x00}, 0o644))

	a, err := f.build("binary.dat")
	assert.Nil(t, a)
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "workspace", initErr.Component)
}
