package commands

import (
	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/workspace"
)

func registerSearch(r *Registry) {
	r.Register("search::accept_query", acceptQuery)
	r.Register("search::pop_search_token", func(a *app.Application) error {
		s, ok := a.Mode.(*modes.Search)
		if !ok {
			return ErrWrongMode
		}
		s.PopChar()
		return nil
	})
	r.Register("search::edit_query", func(a *app.Application) error {
		s, ok := a.Mode.(*modes.Search)
		if !ok {
			return ErrWrongMode
		}
		s.SetInsertMode(true)
		return nil
	})
	r.Register("search::move_to_next_result", func(a *app.Application) error {
		return moveToResult(a, true)
	})
	r.Register("search::move_to_previous_result", func(a *app.Application) error {
		return moveToResult(a, false)
	})
}

// acceptQuery runs the typed query, remembers it for later searches and
// moves to the first match at or after the cursor.
func acceptQuery(a *app.Application) error {
	s, ok := a.Mode.(*modes.Search)
	if !ok {
		return ErrWrongMode
	}
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	a.SearchQuery = s.Text()
	s.SetInsertMode(false)
	if !s.Run(b) {
		return ErrNoMatches
	}
	if pos, ok := s.Current(); ok {
		b.MoveTo(pos)
	}
	return nil
}

// moveToResult steps through matches. From normal mode it searches for the
// last query first.
func moveToResult(a *app.Application, forward bool) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	s, ok := a.Mode.(*modes.Search)
	if !ok {
		if a.SearchQuery == "" {
			return ErrNoMatches
		}
		s = modes.NewSearch(a.SearchQuery)
		s.SetInsertMode(false)
		if !s.Run(b) {
			return ErrNoMatches
		}
		a.SwitchMode(s)
		// Run selected the first match at or after the cursor.
		if pos, _ := s.Current(); forward && pos != b.Cursor {
			b.MoveTo(pos)
			return nil
		}
	}

	var pos workspace.Position
	if forward {
		pos, ok = s.Next()
	} else {
		pos, ok = s.Previous()
	}
	if !ok {
		return ErrNoMatches
	}
	b.MoveTo(pos)
	return nil
}
