// Package modes defines the editor's modes.
//
// Exactly one mode is active at a time. Mode is a closed set: the unexported
// marker method keeps implementations inside this package, and switches over
// Kind are expected to cover every constant. Modes carry their own state
// (queries, anchors, results) but never a buffer; they look up the current
// buffer through the workspace when they need it.
package modes

// Kind identifies a mode variant.
type Kind int

const (
	KindNormal Kind = iota
	KindInsert
	KindConfirm
	KindCommand
	KindJump
	KindLineJump
	KindPath
	KindOpen
	KindSelect
	KindSelectLine
	KindSearch
	KindSymbolJump
	KindTheme
	KindExit
)

// Kinds lists every mode kind.
var Kinds = []Kind{
	KindNormal, KindInsert, KindConfirm, KindCommand, KindJump, KindLineJump,
	KindPath, KindOpen, KindSelect, KindSelectLine, KindSearch, KindSymbolJump,
	KindTheme, KindExit,
}

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindInsert:
		return "insert"
	case KindConfirm:
		return "confirm"
	case KindCommand:
		return "command"
	case KindJump:
		return "jump"
	case KindLineJump:
		return "line_jump"
	case KindPath:
		return "path"
	case KindOpen:
		return "open"
	case KindSelect:
		return "select"
	case KindSelectLine:
		return "select_line"
	case KindSearch:
		return "search"
	case KindSymbolJump:
		return "symbol_jump"
	case KindTheme:
		return "theme"
	case KindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Mode is the active editor mode.
type Mode interface {
	Kind() Kind
	mode()
}

// Normal is the default navigation mode.
type Normal struct{}

// NewNormal returns normal mode.
func NewNormal() *Normal { return &Normal{} }

func (*Normal) Kind() Kind { return KindNormal }
func (*Normal) mode()      {}

// Insert inserts typed text into the current buffer.
type Insert struct{}

// NewInsert returns insert mode.
func NewInsert() *Insert { return &Insert{} }

func (*Insert) Kind() Kind { return KindInsert }
func (*Insert) mode()      {}

// Exit means the editor is shutting down. No mode follows it.
type Exit struct{}

// NewExit returns exit mode.
func NewExit() *Exit { return &Exit{} }

func (*Exit) Kind() Kind { return KindExit }
func (*Exit) mode()      {}

// IsExit reports whether m is Exit.
func IsExit(m Mode) bool {
	return m != nil && m.Kind() == KindExit
}
