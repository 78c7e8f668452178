package commands

import (
	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/workspace"
)

func registerSearchSelect(r *Registry) {
	r.Register("search_select::accept", func(a *app.Application) error {
		return acceptSelection(a, r)
	})
	r.Register("search_select::select_next_result", withSearchSelector(modes.SearchSelector.SelectNext))
	r.Register("search_select::select_previous_result", withSearchSelector(modes.SearchSelector.SelectPrevious))
	r.Register("search_select::pop_search_token", withSearchSelector(func(s modes.SearchSelector) {
		s.PopSearchChar()
		s.Search()
	}))
	r.Register("search_select::enable_insert", withSearchSelector(func(s modes.SearchSelector) {
		s.SetInsertMode(true)
	}))
	r.Register("search_select::disable_insert", withSearchSelector(func(s modes.SearchSelector) {
		s.SetInsertMode(false)
	}))
}

func withSearchSelector(fn func(s modes.SearchSelector)) Command {
	return func(a *app.Application) error {
		s, ok := a.Mode.(modes.SearchSelector)
		if !ok {
			return ErrWrongMode
		}
		fn(s)
		return nil
	}
}

// acceptSelection acts on the selected result according to the mode.
func acceptSelection(a *app.Application, r *Registry) error {
	switch m := a.Mode.(type) {
	case *modes.Command:
		name, ok := m.Selection()
		if !ok {
			return ErrNoMatches
		}
		a.SwitchMode(modes.NewNormal())
		return r.Run(a, name)

	case *modes.Open:
		path, ok := m.Selection()
		if !ok {
			return ErrNoMatches
		}
		b, err := a.Workspace.OpenBuffer(path)
		if err != nil {
			return err
		}
		if err := a.View.InitializeBuffer(b); err != nil {
			return err
		}
		a.SwitchMode(modes.NewNormal())
		return nil

	case *modes.SymbolJump:
		sym, ok := m.Selection()
		if !ok {
			return ErrNoMatches
		}
		b, err := currentBuffer(a)
		if err != nil {
			return err
		}
		b.MoveTo(workspace.Position{Line: sym.Line})
		a.SwitchMode(modes.NewNormal())
		return nil

	case *modes.Theme:
		name, ok := m.Selection()
		if !ok {
			return ErrNoMatches
		}
		if err := a.View.SetTheme(name); err != nil {
			return err
		}
		a.SwitchMode(modes.NewNormal())
		return nil

	default:
		return ErrWrongMode
	}
}
