// Package presenters draws each editor mode. Every function builds a
// presenter for one frame, draws the workspace and the mode's status line,
// and presents it.
package presenters

import (
	"errors"
	"fmt"

	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/vcs"
	"github.com/dshills/quill/internal/view"
	"github.com/dshills/quill/internal/view/terminal"
	"github.com/dshills/quill/internal/workspace"
)

// ErrNoBuffer is returned by presenters for modes that operate on the
// current buffer when there is none.
var ErrNoBuffer = errors.New("no buffer available")

// drawCurrent draws the current buffer, if any.
func drawCurrent(ws *workspace.Workspace, p *view.Presenter, opts view.BufferOptions) *workspace.Buffer {
	b := ws.CurrentBuffer()
	if b != nil {
		p.DrawBuffer(b, opts)
	}
	return b
}

func bufferName(ws *workspace.Workspace, b *workspace.Buffer) string {
	if b == nil {
		return ""
	}
	name := b.FileName(ws.Root)
	if name == "" {
		name = "[No Name]"
	}
	if b.Modified() {
		name += " *"
	}
	return name
}

func position(b *workspace.Buffer) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%d:%d", b.Cursor.Line+1, b.Cursor.Offset+1)
}

// promptLine draws a label and text input on the status line and puts the
// cursor after the input.
func promptLine(p *view.Presenter, label, input string) {
	p.StatusLineEntries([]view.StatusLineData{{Content: label, Kind: view.StatusMode}})
	y := p.Height() - 1
	style := p.Theme().Status
	style.Attributes |= terminal.AttrBold
	x := p.Print(terminal.StringWidth(label)+2, y, style, " "+input)
	p.SetCursor(min(x, p.Width()-1), y)
	p.SetCursorStyle(terminal.CursorBar)
}

// Normal draws normal mode: the current buffer, its path, version
// control state and cursor position.
func Normal(ws *workspace.Workspace, v *view.View, repo *vcs.Repository) error {
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	b := drawCurrent(ws, p, view.BufferOptions{})

	entries := []view.StatusLineData{{Content: "NORMAL", Kind: view.StatusMode}}
	if b != nil {
		entries = append(entries, view.StatusLineData{Content: bufferName(ws, b)})
		if vcsInfo := repositoryStatus(repo, b); vcsInfo != "" {
			entries = append(entries, view.StatusLineData{Content: vcsInfo})
		}
		entries = append(entries, view.StatusLineData{Content: position(b)})
	}
	p.StatusLineEntries(entries)
	p.Present()
	return nil
}

// repositoryStatus returns "branch [status]" for b. Lookup failures yield
// whatever could be determined; a missing repository yields "".
func repositoryStatus(repo *vcs.Repository, b *workspace.Buffer) string {
	if repo == nil {
		return ""
	}
	branch, err := repo.Branch()
	if err != nil {
		return ""
	}
	if b.Path == "" {
		return branch
	}
	status, err := repo.Status(b.Path)
	if err != nil || status == vcs.StatusClean {
		return branch
	}
	return fmt.Sprintf("%s [%s]", branch, status)
}

// Insert draws insert mode.
func Insert(ws *workspace.Workspace, v *view.View) error {
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	b := drawCurrent(ws, p, view.BufferOptions{})
	p.SetCursorStyle(terminal.CursorBar)

	entries := []view.StatusLineData{{Content: "INSERT", Kind: view.StatusMode}}
	if b != nil {
		entries = append(entries,
			view.StatusLineData{Content: bufferName(ws, b)},
			view.StatusLineData{Content: position(b)},
		)
	}
	p.StatusLineEntries(entries)
	p.Present()
	return nil
}

// Confirm draws the confirmation prompt.
func Confirm(ws *workspace.Workspace, v *view.View, m *modes.Confirm) error {
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	drawCurrent(ws, p, view.BufferOptions{HideCursor: true})
	p.StatusLineEntries([]view.StatusLineData{{Content: m.Prompt(), Kind: view.StatusFocus}})
	p.Present()
	return nil
}

// LineJump draws the line number prompt.
func LineJump(ws *workspace.Workspace, v *view.View, m *modes.LineJump) error {
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	drawCurrent(ws, p, view.BufferOptions{})
	promptLine(p, "Go to line:", m.Text())
	p.Present()
	return nil
}

// Path draws the file path prompt.
func Path(ws *workspace.Workspace, v *view.View, m *modes.Path) error {
	p, err := v.BuildPresenter()
	if err != nil {
		return err
	}
	drawCurrent(ws, p, view.BufferOptions{})
	promptLine(p, "Save as:", m.Text())
	p.Present()
	return nil
}

// Error draws the current buffer with err on the status line.
func Error(ws *workspace.Workspace, v *view.View, err error) error {
	p, buildErr := v.BuildPresenter()
	if buildErr != nil {
		return buildErr
	}
	drawCurrent(ws, p, view.BufferOptions{})
	p.StatusLineEntries([]view.StatusLineData{{Content: err.Error(), Kind: view.StatusWarning}})
	p.Present()
	return nil
}
