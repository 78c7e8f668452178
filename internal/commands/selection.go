package commands

import (
	"strings"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/workspace"
)

func registerSelection(r *Registry) {
	r.Register("selection::copy", copySelection)
	r.Register("selection::delete", deleteSelection)
	r.Register("selection::change", changeSelection)
}

// selection returns the active selection and the clipboard kind its text
// takes: Inline for Select, Block for SelectLine.
func selection(a *app.Application) (*workspace.Buffer, workspace.Range, clipboard.Kind, error) {
	b, err := currentBuffer(a)
	if err != nil {
		return nil, workspace.Range{}, clipboard.Empty, err
	}
	switch m := a.Mode.(type) {
	case *modes.Select:
		return b, m.Range(b.Cursor), clipboard.Inline, nil
	case *modes.SelectLine:
		return b, m.Range(b), clipboard.Block, nil
	default:
		return nil, workspace.Range{}, clipboard.Empty, ErrWrongMode
	}
}

func copyRange(a *app.Application, b *workspace.Buffer, r workspace.Range, kind clipboard.Kind) error {
	text := b.ReadRange(r)
	if kind == clipboard.Block && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return a.Clipboard.Set(clipboard.Content{Kind: kind, Text: text})
}

// copySelection copies the selection and returns to normal mode, leaving
// the cursor at the start of the selection.
func copySelection(a *app.Application) error {
	b, r, kind, err := selection(a)
	if err != nil {
		return err
	}
	err = copyRange(a, b, r, kind)
	b.MoveTo(r.Start)
	a.SwitchMode(modes.NewNormal())
	return err
}

// deleteSelection cuts the selection and returns to normal mode.
func deleteSelection(a *app.Application) error {
	b, r, kind, err := selection(a)
	if err != nil {
		return err
	}
	err = copyRange(a, b, r, kind)
	b.DeleteRange(r)
	a.SwitchMode(modes.NewNormal())
	return err
}

// changeSelection cuts the selection and enters insert mode.
func changeSelection(a *app.Application) error {
	if err := deleteSelection(a); err != nil {
		return err
	}
	a.SwitchMode(modes.NewInsert())
	return nil
}
