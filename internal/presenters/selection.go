package presenters

import (
	"unicode/utf8"

	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/view"
	"github.com/dshills/quill/internal/workspace"
)

// Select draws a character-wise selection.
func Select(ws *workspace.Workspace, v *view.View, m *modes.Select) error {
	b := ws.CurrentBuffer()
	if b == nil {
		return ErrNoBuffer
	}
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	sel := m.Range(b.Cursor)
	p.DrawBuffer(b, view.BufferOptions{Selection: &sel})
	p.StatusLineEntries([]view.StatusLineData{
		{Content: "SELECT", Kind: view.StatusMode},
		{Content: bufferName(ws, b)},
		{Content: position(b)},
	})
	p.Present()
	return nil
}

// SelectLine draws a line-wise selection.
func SelectLine(ws *workspace.Workspace, v *view.View, m *modes.SelectLine) error {
	b := ws.CurrentBuffer()
	if b == nil {
		return ErrNoBuffer
	}
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	sel := m.Range(b)
	p.DrawBuffer(b, view.BufferOptions{Selection: &sel})
	p.StatusLineEntries([]view.StatusLineData{
		{Content: "SELECT LINE", Kind: view.StatusMode},
		{Content: bufferName(ws, b)},
		{Content: position(b)},
	})
	p.Present()
	return nil
}

// Search draws the search prompt with matches highlighted.
func Search(ws *workspace.Workspace, v *view.View, m *modes.Search) error {
	b := ws.CurrentBuffer()
	if b == nil {
		return ErrNoBuffer
	}
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}

	n := utf8.RuneCountInString(m.Text())
	highlights := make([]workspace.Range, 0, len(m.Matches()))
	for _, pos := range m.Matches() {
		end := workspace.Position{Line: pos.Line, Offset: pos.Offset + n}
		highlights = append(highlights, workspace.Range{Start: pos, End: end})
	}
	p.DrawBuffer(b, view.BufferOptions{Highlights: highlights})

	if m.InsertMode() {
		promptLine(p, "SEARCH", m.Text())
	} else {
		p.StatusLineEntries([]view.StatusLineData{
			{Content: "SEARCH", Kind: view.StatusMode},
			{Content: m.Text()},
			{Content: matchSummary(len(m.Matches()))},
		})
	}
	p.Present()
	return nil
}

func matchSummary(n int) string {
	switch n {
	case 0:
		return "no matches"
	case 1:
		return "1 match"
	default:
		return itoa(n) + " matches"
	}
}

// Jump draws jump tags over the visible words.
func Jump(ws *workspace.Workspace, v *view.View, m *modes.Jump) error {
	b := ws.CurrentBuffer()
	if b == nil {
		return ErrNoBuffer
	}
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	p.DrawBuffer(b, view.BufferOptions{HideCursor: true})

	focus := p.Theme().Focus
	for _, tag := range m.Tags() {
		if x, y, ok := p.ScreenPosition(tag.Position); ok {
			p.Print(x, y, focus, tag.Label)
		}
	}
	p.StatusLineEntries([]view.StatusLineData{
		{Content: "JUMP", Kind: view.StatusMode},
		{Content: m.Text(), Kind: view.StatusFocus},
	})
	p.Present()
	return nil
}
