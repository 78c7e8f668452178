package commands

import (
	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/workspace"
)

func registerWorkspace(r *Registry) {
	r.Register("workspace::next_buffer", func(a *app.Application) error {
		a.Workspace.NextBuffer()
		return nil
	})
	r.Register("workspace::previous_buffer", func(a *app.Application) error {
		a.Workspace.PreviousBuffer()
		return nil
	})
	r.Register("workspace::new_buffer", func(a *app.Application) error {
		b := workspace.NewBuffer()
		a.Workspace.AddBuffer(b)
		return a.View.InitializeBuffer(b)
	})
}

func registerView(r *Registry) {
	r.Register("view::scroll_down", scrollBy(1))
	r.Register("view::scroll_up", scrollBy(-1))
}

// scrollBy scrolls the current buffer half a screen in direction dir.
func scrollBy(dir int) Command {
	return func(a *app.Application) error {
		b, err := currentBuffer(a)
		if err != nil {
			return err
		}
		first, last := a.View.VisibleLines(b)
		half := max((last-first+1)/2, 1)
		a.View.ScrollBy(b, dir*half)

		// Keep the cursor on screen.
		first, last = a.View.VisibleLines(b)
		line := min(max(b.Cursor.Line, first), last)
		if line != b.Cursor.Line {
			b.MoveTo(workspace.Position{Line: line})
		}
		return nil
	}
}
