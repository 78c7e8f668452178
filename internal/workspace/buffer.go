package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/syntax"
)

// ErrNoPath is returned when saving a buffer that has no path.
var ErrNoPath = errors.New("buffer has no path")

// Position is a cursor location. Offset counts runes from the start of the
// line.
type Position struct {
	Line   int
	Offset int
}

// Before reports whether p comes before o.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Offset < o.Offset)
}

// Range is a span between two positions; End is exclusive.
type Range struct {
	Start Position
	End   Position
}

// NewRange returns a range with its ends ordered.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Buffer is an editable text document.
type Buffer struct {
	ID     uuid.UUID
	Path   string
	Syntax *syntax.Definition
	Cursor Position

	lines    []string
	modified bool
}

// NewBuffer returns an empty, unnamed buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		ID:    uuid.New(),
		lines: []string{""},
	}
}

// FromFile reads the file at path into a new buffer.
func FromFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("opening %s: not valid UTF-8", path)
	}

	b := NewBuffer()
	b.Path = path
	b.lines = splitLines(string(data))
	return b, nil
}

func splitLines(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	return strings.Split(data, "\n")
}

// FileName returns the path relative to root when possible.
func (b *Buffer) FileName(root string) string {
	if b.Path == "" {
		return ""
	}
	if root != "" {
		if rel, err := filepath.Rel(root, b.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return b.Path
}

// Data returns the buffer contents.
func (b *Buffer) Data() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Line returns line n.
func (b *Buffer) Line(n int) (string, bool) {
	if n < 0 || n >= len(b.lines) {
		return "", false
	}
	return b.lines[n], true
}

// LineCount returns the number of lines; never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool {
	return b.modified
}

func lineLen(line string) int {
	return utf8.RuneCountInString(line)
}

// byteOffset converts a rune offset in line to a byte offset.
func byteOffset(line string, offset int) int {
	i := 0
	for n := range line {
		if i == offset {
			return n
		}
		i++
	}
	return len(line)
}

// clamp returns p moved inside the buffer.
func (b *Buffer) clamp(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if n := lineLen(b.lines[p.Line]); p.Offset > n {
		p.Offset = n
	}
	return p
}

// MoveTo places the cursor at p. It returns false, leaving the cursor
// alone, if p is outside the buffer.
func (b *Buffer) MoveTo(p Position) bool {
	if b.clamp(p) != p {
		return false
	}
	b.Cursor = p
	return true
}

// CursorUp moves the cursor up one line, clamping the offset.
func (b *Buffer) CursorUp() {
	b.Cursor = b.clamp(Position{Line: b.Cursor.Line - 1, Offset: b.Cursor.Offset})
}

// CursorDown moves the cursor down one line, clamping the offset.
func (b *Buffer) CursorDown() {
	b.Cursor = b.clamp(Position{Line: b.Cursor.Line + 1, Offset: b.Cursor.Offset})
}

// CursorLeft moves the cursor back one character within the line.
func (b *Buffer) CursorLeft() {
	if b.Cursor.Offset > 0 {
		b.Cursor.Offset--
	}
}

// CursorRight moves the cursor forward one character within the line.
func (b *Buffer) CursorRight() {
	b.Cursor = b.clamp(Position{Line: b.Cursor.Line, Offset: b.Cursor.Offset + 1})
}

// CursorStartOfLine moves the cursor to the start of its line.
func (b *Buffer) CursorStartOfLine() {
	b.Cursor.Offset = 0
}

// CursorEndOfLine moves the cursor to the end of its line.
func (b *Buffer) CursorEndOfLine() {
	b.Cursor.Offset = lineLen(b.lines[b.Cursor.Line])
}

// CursorFirstLine moves the cursor to the start of the buffer.
func (b *Buffer) CursorFirstLine() {
	b.Cursor = Position{}
}

// CursorLastLine moves the cursor to the start of the last line.
func (b *Buffer) CursorLastLine() {
	b.Cursor = Position{Line: len(b.lines) - 1}
}

// Insert inserts text at the cursor and moves the cursor past it.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	b.Cursor = b.clamp(b.Cursor)

	line := b.lines[b.Cursor.Line]
	at := byteOffset(line, b.Cursor.Offset)
	inserted := splitLines(text)

	head, tail := line[:at], line[at:]
	if len(inserted) == 1 {
		b.lines[b.Cursor.Line] = head + inserted[0] + tail
		b.Cursor.Offset += lineLen(inserted[0])
	} else {
		last := len(inserted) - 1
		replacement := make([]string, len(inserted))
		replacement[0] = head + inserted[0]
		copy(replacement[1:last], inserted[1:last])
		replacement[last] = inserted[last] + tail

		lines := make([]string, 0, len(b.lines)+last)
		lines = append(lines, b.lines[:b.Cursor.Line]...)
		lines = append(lines, replacement...)
		lines = append(lines, b.lines[b.Cursor.Line+1:]...)
		b.lines = lines
		b.Cursor = Position{Line: b.Cursor.Line + last, Offset: lineLen(inserted[last])}
	}
	b.modified = true
}

// Backspace deletes the character before the cursor, joining lines at the
// start of a line. It returns false at the start of the buffer.
func (b *Buffer) Backspace() bool {
	b.Cursor = b.clamp(b.Cursor)
	if b.Cursor == (Position{}) {
		return false
	}

	start := Position{Line: b.Cursor.Line, Offset: b.Cursor.Offset - 1}
	if b.Cursor.Offset == 0 {
		start = Position{Line: b.Cursor.Line - 1, Offset: lineLen(b.lines[b.Cursor.Line-1])}
	}
	b.DeleteRange(Range{Start: start, End: b.Cursor})
	return true
}

// Delete deletes the character under the cursor, joining lines at the end
// of a line. It returns false at the end of the buffer.
func (b *Buffer) Delete() bool {
	b.Cursor = b.clamp(b.Cursor)

	end := Position{Line: b.Cursor.Line, Offset: b.Cursor.Offset + 1}
	if b.Cursor.Offset == lineLen(b.lines[b.Cursor.Line]) {
		if b.Cursor.Line == len(b.lines)-1 {
			return false
		}
		end = Position{Line: b.Cursor.Line + 1}
	}
	b.DeleteRange(Range{Start: b.Cursor, End: end})
	return true
}

// ReadRange returns the text in r.
func (b *Buffer) ReadRange(r Range) string {
	r = NewRange(b.clamp(r.Start), b.clamp(r.End))
	if r.Start.Line == r.End.Line {
		line := b.lines[r.Start.Line]
		return line[byteOffset(line, r.Start.Offset):byteOffset(line, r.End.Offset)]
	}

	var sb strings.Builder
	first := b.lines[r.Start.Line]
	sb.WriteString(first[byteOffset(first, r.Start.Offset):])
	for n := r.Start.Line + 1; n < r.End.Line; n++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[n])
	}
	last := b.lines[r.End.Line]
	sb.WriteByte('\n')
	sb.WriteString(last[:byteOffset(last, r.End.Offset)])
	return sb.String()
}

// DeleteRange removes the text in r and leaves the cursor at its start.
func (b *Buffer) DeleteRange(r Range) {
	r = NewRange(b.clamp(r.Start), b.clamp(r.End))
	if r.Start == r.End {
		return
	}

	first := b.lines[r.Start.Line]
	last := b.lines[r.End.Line]
	joined := first[:byteOffset(first, r.Start.Offset)] + last[byteOffset(last, r.End.Offset):]

	lines := make([]string, 0, len(b.lines)-(r.End.Line-r.Start.Line))
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, joined)
	lines = append(lines, b.lines[r.End.Line+1:]...)
	b.lines = lines

	b.Cursor = r.Start
	b.modified = true
}

// LineRange returns the range covering lines from..to inclusive, including
// the trailing newline when one exists.
func (b *Buffer) LineRange(from, to int) Range {
	if to < from {
		from, to = to, from
	}
	start := b.clamp(Position{Line: from})
	end := b.clamp(Position{Line: to + 1})
	if to+1 >= len(b.lines) {
		end = Position{Line: len(b.lines) - 1, Offset: lineLen(b.lines[len(b.lines)-1])}
	}
	return Range{Start: start, End: end}
}

// Search returns the positions of every occurrence of query.
func (b *Buffer) Search(query string) []Position {
	if query == "" {
		return nil
	}
	var matches []Position
	for n, line := range b.lines {
		from := 0
		for {
			i := strings.Index(line[from:], query)
			if i < 0 {
				break
			}
			at := from + i
			matches = append(matches, Position{Line: n, Offset: utf8.RuneCountInString(line[:at])})
			from = at + len(query)
		}
	}
	return matches
}

// Save writes the buffer to its path.
func (b *Buffer) Save() error {
	if b.Path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.Path, []byte(b.Data()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", b.Path, err)
	}
	b.modified = false
	return nil
}
