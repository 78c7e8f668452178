// Package workspace holds the editing session: a root directory, the open
// buffers and which one is current.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/syntax"
)

// ErrNotDirectory is returned by New when the root is not a directory.
var ErrNotDirectory = errors.New("workspace root is not a directory")

// Workspace is an ordered collection of buffers rooted at a directory.
// The root does not change after construction.
type Workspace struct {
	Root   string
	Syntax *syntax.Set

	buffers []*Buffer
	current int
}

// New creates an empty workspace rooted at root.
func New(root string) (*Workspace, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return &Workspace{
		Root:    root,
		Syntax:  syntax.NewSet(),
		current: -1,
	}, nil
}

// AddBuffer appends b and makes it current. A buffer without a syntax
// definition gets the one matching its path.
func (w *Workspace) AddBuffer(b *Buffer) {
	if b.Syntax == nil {
		b.Syntax = w.Syntax.Find(b.Path)
	}
	w.buffers = append(w.buffers, b)
	w.current = len(w.buffers) - 1
}

// CurrentBuffer returns the current buffer, or nil when there is none.
func (w *Workspace) CurrentBuffer() *Buffer {
	if w.current < 0 || w.current >= len(w.buffers) {
		return nil
	}
	return w.buffers[w.current]
}

// Buffers returns the open buffers in order.
func (w *Workspace) Buffers() []*Buffer {
	out := make([]*Buffer, len(w.buffers))
	copy(out, w.buffers)
	return out
}

// Len returns the number of open buffers.
func (w *Workspace) Len() int {
	return len(w.buffers)
}

// SelectBuffer makes the buffer with id current.
func (w *Workspace) SelectBuffer(id uuid.UUID) bool {
	for i, b := range w.buffers {
		if b.ID == id {
			w.current = i
			return true
		}
	}
	return false
}

// NextBuffer makes the following buffer current, wrapping around.
func (w *Workspace) NextBuffer() {
	if len(w.buffers) > 0 {
		w.current = (w.current + 1) % len(w.buffers)
	}
}

// PreviousBuffer makes the preceding buffer current, wrapping around.
func (w *Workspace) PreviousBuffer() {
	if len(w.buffers) > 0 {
		w.current = (w.current - 1 + len(w.buffers)) % len(w.buffers)
	}
}

// CloseCurrentBuffer removes the current buffer and returns it. The
// preceding buffer becomes current.
func (w *Workspace) CloseCurrentBuffer() *Buffer {
	b := w.CurrentBuffer()
	if b == nil {
		return nil
	}
	w.buffers = append(w.buffers[:w.current], w.buffers[w.current+1:]...)
	switch {
	case len(w.buffers) == 0:
		w.current = -1
	case w.current > 0:
		w.current--
	}
	return b
}

// ResolvePath makes path absolute against the workspace root.
func (w *Workspace) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.Root, path)
}

// OpenBuffer makes the buffer for path current, reading it from disk if it
// is not open yet. A path that does not exist yields a new empty buffer
// that will be created on save.
func (w *Workspace) OpenBuffer(path string) (*Buffer, error) {
	path = w.ResolvePath(path)
	for i, b := range w.buffers {
		if b.Path == path {
			w.current = i
			return b, nil
		}
	}

	b, err := FromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		b = NewBuffer()
		b.Path = path
	} else if err != nil {
		return nil, err
	}
	w.AddBuffer(b)
	return b, nil
}
