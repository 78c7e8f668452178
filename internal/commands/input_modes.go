package commands

import (
	"fmt"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/syntax"
	"github.com/dshills/quill/internal/workspace"
)

func registerLineJump(r *Registry) {
	r.Register("line_jump::accept_input", acceptLineJump)
	r.Register("line_jump::pop_char", func(a *app.Application) error {
		m, ok := a.Mode.(*modes.LineJump)
		if !ok {
			return ErrWrongMode
		}
		m.PopChar()
		return nil
	})
}

// acceptLineJump moves the cursor to the typed line.
func acceptLineJump(a *app.Application) error {
	m, ok := a.Mode.(*modes.LineJump)
	if !ok {
		return ErrWrongMode
	}
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewNormal())

	line, ok := m.Line()
	if !ok || !b.MoveTo(workspace.Position{Line: line}) {
		return fmt.Errorf("%w: %q", ErrInvalidLine, m.Text())
	}
	return nil
}

func registerPath(r *Registry) {
	r.Register("path::accept_path", acceptPath)
	r.Register("path::pop_char", func(a *app.Application) error {
		m, ok := a.Mode.(*modes.Path)
		if !ok {
			return ErrWrongMode
		}
		m.PopChar()
		return nil
	})
}

// acceptPath sets the current buffer's path and saves it.
func acceptPath(a *app.Application) error {
	m, ok := a.Mode.(*modes.Path)
	if !ok {
		return ErrWrongMode
	}
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	if m.Text() == "" {
		return workspace.ErrNoPath
	}
	b.Path = a.Workspace.ResolvePath(m.Text())
	if b.Syntax == nil || b.Syntax.Name == syntax.PlainText {
		b.Syntax = a.Workspace.Syntax.Find(b.Path)
	}
	a.SwitchMode(modes.NewNormal())
	return save(a)
}

func registerConfirm(r *Registry) {
	r.Register("confirm::confirm_command", func(a *app.Application) error {
		m, ok := a.Mode.(*modes.Confirm)
		if !ok {
			return ErrWrongMode
		}
		a.SwitchMode(modes.NewNormal())
		return r.Run(a, m.Command)
	})
}

// jumpTo handles a tag character in jump mode. Once a full tag is typed
// the cursor moves to it and normal mode resumes.
func jumpTo(a *app.Application, m *modes.Jump, k key.Event) error {
	if !k.IsChar() {
		return nil
	}
	pos, done, ok := m.PushChar(k.Rune)
	if !done {
		return nil
	}
	a.SwitchMode(modes.NewNormal())
	if !ok {
		return nil
	}
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	b.MoveTo(pos)
	return nil
}
