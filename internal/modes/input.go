package modes

import (
	"strconv"
	"unicode/utf8"

	"github.com/dshills/quill/internal/workspace"
)

// Input is a single line of text typed by the user.
type Input struct {
	text string
}

// Text returns the typed text.
func (in *Input) Text() string { return in.text }

// PushChar appends r.
func (in *Input) PushChar(r rune) { in.text += string(r) }

// PopChar removes the last character.
func (in *Input) PopChar() {
	_, size := utf8.DecodeLastRuneInString(in.text)
	in.text = in.text[:len(in.text)-size]
}

// Confirm asks the user to confirm a command before running it.
type Confirm struct {
	// Command is the name of the command run on confirmation.
	Command string
}

// NewConfirm returns confirm mode guarding command.
func NewConfirm(command string) *Confirm { return &Confirm{Command: command} }

func (*Confirm) Kind() Kind { return KindConfirm }
func (*Confirm) mode()      {}

// Prompt is the question shown while confirming.
func (*Confirm) Prompt() string { return "Are you sure? (y/n)" }

// Path collects a file path, e.g. to save an unnamed buffer.
type Path struct {
	Input
}

// NewPath returns path mode prefilled with initial.
func NewPath(initial string) *Path { return &Path{Input{text: initial}} }

func (*Path) Kind() Kind { return KindPath }
func (*Path) mode()      {}

// LineJump collects a line number to move to.
type LineJump struct {
	Input
}

// NewLineJump returns line jump mode.
func NewLineJump() *LineJump { return &LineJump{} }

func (*LineJump) Kind() Kind { return KindLineJump }
func (*LineJump) mode()      {}

// PushChar only accepts digits.
func (l *LineJump) PushChar(r rune) {
	if r >= '0' && r <= '9' {
		l.Input.PushChar(r)
	}
}

// Line returns the zero-based target line, or false if nothing valid has
// been typed.
func (l *LineJump) Line() (int, bool) {
	n, err := strconv.Atoi(l.text)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// Select extends a selection from Anchor to the cursor.
type Select struct {
	Anchor workspace.Position
}

// NewSelect returns select mode anchored at anchor.
func NewSelect(anchor workspace.Position) *Select { return &Select{Anchor: anchor} }

func (*Select) Kind() Kind { return KindSelect }
func (*Select) mode()      {}

// Range returns the selected range given the cursor.
func (s *Select) Range(cursor workspace.Position) workspace.Range {
	return workspace.NewRange(s.Anchor, cursor)
}

// SelectLine selects whole lines from Anchor to the cursor line.
type SelectLine struct {
	Anchor int
}

// NewSelectLine returns line select mode anchored at line.
func NewSelectLine(line int) *SelectLine { return &SelectLine{Anchor: line} }

func (*SelectLine) Kind() Kind { return KindSelectLine }
func (*SelectLine) mode()      {}

// Range returns the selected lines' range in b.
func (s *SelectLine) Range(b *workspace.Buffer) workspace.Range {
	return b.LineRange(s.Anchor, b.Cursor.Line)
}
