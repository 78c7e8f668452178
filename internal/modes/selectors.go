package modes

import (
	"fmt"

	"github.com/dshills/quill/internal/syntax"
)

func identity(s string) string { return s }

// Command picks an editor command by name.
type Command struct {
	SearchSelect[string]
}

// NewCommand returns command mode over the given command names.
func NewCommand(names []string, maxResults int) *Command {
	return &Command{newSearchSelect(names, identity, maxResults)}
}

func (*Command) Kind() Kind { return KindCommand }
func (*Command) mode()      {}

// SymbolJump picks a symbol of the current buffer to move to.
type SymbolJump struct {
	SearchSelect[syntax.Symbol]
}

// NewSymbolJump returns symbol jump mode over symbols.
func NewSymbolJump(symbols []syntax.Symbol, maxResults int) *SymbolJump {
	return &SymbolJump{newSearchSelect(symbols, symbolLabel, maxResults)}
}

func symbolLabel(s syntax.Symbol) string {
	return fmt.Sprintf("%s:%d", s.Name, s.Line+1)
}

func (*SymbolJump) Kind() Kind { return KindSymbolJump }
func (*SymbolJump) mode()      {}

// Theme picks a color theme.
type Theme struct {
	SearchSelect[string]
}

// NewTheme returns theme mode over theme names.
func NewTheme(names []string, maxResults int) *Theme {
	return &Theme{newSearchSelect(names, identity, maxResults)}
}

func (*Theme) Kind() Kind { return KindTheme }
func (*Theme) mode()      {}

var (
	_ SearchSelector = (*Command)(nil)
	_ SearchSelector = (*SymbolJump)(nil)
	_ SearchSelector = (*Theme)(nil)
	_ SearchSelector = (*Open)(nil)
)
