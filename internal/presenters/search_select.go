package presenters

import (
	"strconv"

	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/view"
	"github.com/dshills/quill/internal/workspace"
)

func itoa(n int) string { return strconv.Itoa(n) }

func searchSelectLabel(m modes.SearchSelector) string {
	switch m.Kind() {
	case modes.KindOpen:
		return "OPEN"
	case modes.KindSymbolJump:
		return "SYMBOL"
	case modes.KindTheme:
		return "THEME"
	default:
		return "COMMAND"
	}
}

// SearchSelect draws Command, Open, SymbolJump and Theme modes: the
// results above the status line, the query on it.
func SearchSelect(ws *workspace.Workspace, v *view.View, m modes.SearchSelector) error {
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	drawCurrent(ws, p, view.BufferOptions{HideCursor: true})

	theme := p.Theme()
	lines := m.ResultLabels()
	if msg := m.Message(); msg != "" {
		lines = []string{msg}
	}
	rows := min(len(lines), p.Height()-1)
	top := p.Height() - 1 - rows
	for i := 0; i < rows; i++ {
		y := top + i
		style := theme.Default
		prefix := "  "
		if m.Message() == "" && i == m.SelectedIndex() {
			style = theme.Focus
			prefix = "> "
		}
		p.FillLine(0, y, style)
		p.Print(0, y, style, prefix+lines[i])
	}

	promptLine(p, searchSelectLabel(m), m.Query())
	if !m.InsertMode() {
		p.HideCursor()
	}
	p.Present()
	return nil
}
