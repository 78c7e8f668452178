package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := New(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = New(file)
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = New(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestAddBuffer(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, ws.CurrentBuffer())

	a := NewBuffer()
	a.Path = "/tmp/a.go"
	b := NewBuffer()

	ws.AddBuffer(a)
	ws.AddBuffer(b)

	assert.Same(t, b, ws.CurrentBuffer(), "last added is current")
	assert.Equal(t, "Go", a.Syntax.Name)
	assert.NotNil(t, b.Syntax)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBufferNavigation(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	bufs := []*Buffer{NewBuffer(), NewBuffer(), NewBuffer()}
	for _, b := range bufs {
		ws.AddBuffer(b)
	}

	ws.NextBuffer()
	assert.Same(t, bufs[0], ws.CurrentBuffer())
	ws.PreviousBuffer()
	assert.Same(t, bufs[2], ws.CurrentBuffer())

	assert.True(t, ws.SelectBuffer(bufs[1].ID))
	assert.Same(t, bufs[1], ws.CurrentBuffer())

	closed := ws.CloseCurrentBuffer()
	assert.Same(t, bufs[1], closed)
	assert.Same(t, bufs[0], ws.CurrentBuffer())
	assert.Equal(t, 2, ws.Len())

	ws.CloseCurrentBuffer()
	assert.Same(t, bufs[2], ws.CurrentBuffer())
	ws.CloseCurrentBuffer()
	assert.Nil(t, ws.CurrentBuffer())
	assert.Nil(t, ws.CloseCurrentBuffer())
}

func TestOpenBuffer(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))

	ws, err := New(root)
	require.NoError(t, err)

	b, err := ws.OpenBuffer("main.go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "main.go"), b.Path)
	assert.Equal(t, "package main\n", b.Data())

	other, err := ws.OpenBuffer("new.txt")
	require.NoError(t, err)
	assert.Equal(t, "", other.Data())

	again, err := ws.OpenBuffer(filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Same(t, b, again)
	assert.Equal(t, 2, ws.Len())
}

func TestBufferEditing(t *testing.T) {
	b := NewBuffer()
	b.Insert("hello")
	assert.Equal(t, Position{Line: 0, Offset: 5}, b.Cursor)
	assert.True(t, b.Modified())

	b.Insert("\nwörld\n!")
	assert.Equal(t, "hello\nwörld\n!", b.Data())
	assert.Equal(t, Position{Line: 2, Offset: 1}, b.Cursor)
	assert.Equal(t, 3, b.LineCount())

	assert.True(t, b.Backspace())
	assert.True(t, b.Backspace())
	assert.Equal(t, "hello\nwörld", b.Data())
	assert.Equal(t, Position{Line: 1, Offset: 5}, b.Cursor)

	b.MoveTo(Position{Line: 1, Offset: 1})
	assert.True(t, b.Delete())
	assert.Equal(t, "hello\nwrld", b.Data())

	b.CursorFirstLine()
	assert.False(t, b.Backspace())
	b.CursorLastLine()
	b.CursorEndOfLine()
	assert.False(t, b.Delete())
}

func TestBufferRanges(t *testing.T) {
	b := NewBuffer()
	b.Insert("one\ntwo\nthree")

	r := NewRange(Position{Line: 2, Offset: 2}, Position{Line: 0, Offset: 1})
	assert.Equal(t, "ne\ntwo\nth", b.ReadRange(r))

	assert.Equal(t, "two\n", b.ReadRange(b.LineRange(1, 1)))

	b.DeleteRange(r)
	assert.Equal(t, "oree", b.Data())
	assert.Equal(t, Position{Line: 0, Offset: 1}, b.Cursor)
}

func TestBufferCursorClamping(t *testing.T) {
	b := NewBuffer()
	b.Insert("long line\nx")
	b.MoveTo(Position{Line: 0, Offset: 8})

	b.CursorDown()
	assert.Equal(t, Position{Line: 1, Offset: 1}, b.Cursor)
	b.CursorDown()
	assert.Equal(t, Position{Line: 1, Offset: 1}, b.Cursor)
	b.CursorRight()
	assert.Equal(t, Position{Line: 1, Offset: 1}, b.Cursor)

	assert.False(t, b.MoveTo(Position{Line: 5}))
	assert.Equal(t, Position{Line: 1, Offset: 1}, b.Cursor)
}

func TestBufferSearch(t *testing.T) {
	b := NewBuffer()
	b.Insert("ab ab\nxäab")
	assert.Equal(t, []Position{
		{Line: 0, Offset: 0},
		{Line: 0, Offset: 3},
		{Line: 1, Offset: 2},
	}, b.Search("ab"))
	assert.Empty(t, b.Search(""))
}

func TestBufferSave(t *testing.T) {
	b := NewBuffer()
	b.Insert("data")
	assert.ErrorIs(t, b.Save(), ErrNoPath)

	b.Path = filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, b.Save())
	assert.False(t, b.Modified())

	loaded, err := FromFile(b.Path)
	require.NoError(t, err)
	assert.Equal(t, "data", loaded.Data())
	assert.Equal(t, "out.txt", loaded.FileName(filepath.Dir(b.Path)))
}
