package commands

import (
	"strings"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/workspace"
)

func registerBuffer(r *Registry) {
	r.Register("buffer::insert_newline", withBuffer(insertNewline))
	r.Register("buffer::insert_tab", insertTab)
	r.Register("buffer::backspace", withBuffer(func(b *workspace.Buffer) { b.Backspace() }))
	r.Register("buffer::delete", withBuffer(func(b *workspace.Buffer) { b.Delete() }))
	r.Register("buffer::delete_line", deleteLine)
	r.Register("buffer::paste", paste)
	r.Register("buffer::save", save)
	r.Register("buffer::close", closeBuffer)
	r.Register("buffer::force_close", forceCloseBuffer)
}

// withBuffer adapts an edit of the current buffer to a Command.
func withBuffer(fn func(b *workspace.Buffer)) Command {
	return func(a *app.Application) error {
		b, err := currentBuffer(a)
		if err != nil {
			return err
		}
		fn(b)
		return nil
	}
}

// insertNewline breaks the line, carrying over its indentation.
func insertNewline(b *workspace.Buffer) {
	line, _ := b.Line(b.Cursor.Line)
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	b.Insert("\n" + indent)
}

func insertTab(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	b.Insert(a.Preferences.Get().TabContent(b.Path))
	return nil
}

// deleteLine cuts the cursor line to the clipboard.
func deleteLine(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	r := b.LineRange(b.Cursor.Line, b.Cursor.Line)
	text := b.ReadRange(r)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	b.DeleteRange(r)
	return a.Clipboard.Set(clipboard.Content{Kind: clipboard.Block, Text: text})
}

// paste inserts inline content at the cursor and block content above the
// cursor line.
func paste(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	content := a.Clipboard.Get()
	switch content.Kind {
	case clipboard.Inline:
		b.Insert(content.Text)
	case clipboard.Block:
		line := b.Cursor.Line
		b.MoveTo(workspace.Position{Line: line})
		b.Insert(content.Text)
		b.MoveTo(workspace.Position{Line: line})
	}
	return nil
}

// save writes the current buffer. A buffer without a path prompts for one.
func save(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	if b.Path == "" {
		return switchToPath(a)
	}
	if err := b.Save(); err != nil {
		return err
	}
	if a.Repository != nil {
		a.Repository.Invalidate()
	}
	return nil
}

// closeBuffer closes the current buffer, asking first if it has unsaved
// changes.
func closeBuffer(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	if b.Modified() {
		a.SwitchMode(modes.NewConfirm("buffer::force_close"))
		return nil
	}
	return forceCloseBuffer(a)
}

func forceCloseBuffer(a *app.Application) error {
	if _, err := currentBuffer(a); err != nil {
		return err
	}
	b := a.Workspace.CloseCurrentBuffer()
	a.View.ForgetBuffer(b)
	return nil
}
