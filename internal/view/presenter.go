package view

import (
	"strconv"

	"github.com/rivo/uniseg"

	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/syntax"
	"github.com/dshills/quill/internal/view/terminal"
	"github.com/dshills/quill/internal/workspace"
)

// StatusKind selects how a status line entry is styled.
type StatusKind int

const (
	StatusPlain StatusKind = iota
	// StatusMode is the bold mode label.
	StatusMode
	// StatusFocus draws attention, e.g. a prompt.
	StatusFocus
	// StatusWarning is used for errors.
	StatusWarning
)

// StatusLineData is one entry on the status line.
type StatusLineData struct {
	Content string
	Kind    StatusKind
}

// BufferOptions controls how DrawBuffer decorates a buffer.
type BufferOptions struct {
	// Selection is highlighted when non-nil.
	Selection *workspace.Range
	// Highlights are extra ranges drawn in the focus style, e.g. search
	// matches.
	Highlights []workspace.Range
	// HideCursor leaves the terminal cursor hidden.
	HideCursor bool
}

type screenPos struct {
	x, y int
}

// Presenter draws one frame. Nothing reaches the screen until Present.
type Presenter struct {
	view   *View
	term   terminal.Terminal
	theme  *Theme
	prefs  preferences.Preferences
	width  int
	height int

	cursor      *screenPos
	cursorStyle terminal.CursorStyle
	positions   map[workspace.Position]screenPos
}

func newPresenter(v *View, width, height int) *Presenter {
	p := &Presenter{
		view:      v,
		term:      v.term,
		theme:     v.Theme(),
		prefs:     v.prefs.Get(),
		width:     width,
		height:    height,
		positions: make(map[workspace.Position]screenPos),
	}
	for y := 0; y < height; y++ {
		p.FillLine(0, y, p.theme.Default)
	}
	return p
}

// Width returns the frame width in cells.
func (p *Presenter) Width() int { return p.width }

// Height returns the frame height in cells, including the status line.
func (p *Presenter) Height() int { return p.height }

// Theme returns the frame's theme.
func (p *Presenter) Theme() *Theme { return p.theme }

// Print draws text starting at x, y and returns the column after it. Text
// that does not fit is clipped.
func (p *Presenter) Print(x, y int, style terminal.Style, text string) int {
	if y < 0 || y >= p.height {
		return x
	}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > p.width {
			break
		}
		p.term.SetCell(x, y, terminal.Cell{Rune: runes[0], Width: w, Style: style})
		x += w
	}
	return x
}

// FillLine paints row y from column x to the right edge.
func (p *Presenter) FillLine(x, y int, style terminal.Style) {
	for ; x < p.width; x++ {
		p.term.SetCell(x, y, terminal.Cell{Rune: ' ', Width: 1, Style: style})
	}
}

// SetCursor places the cursor for this frame.
func (p *Presenter) SetCursor(x, y int) {
	p.cursor = &screenPos{x, y}
}

// HideCursor hides the cursor for this frame.
func (p *Presenter) HideCursor() {
	p.cursor = nil
}

// SetCursorStyle sets the cursor shape for this frame.
func (p *Presenter) SetCursorStyle(style terminal.CursorStyle) {
	p.cursorStyle = style
}

// ScreenPosition returns where a buffer position was drawn by the last
// DrawBuffer call.
func (p *Presenter) ScreenPosition(pos workspace.Position) (x, y int, ok bool) {
	s, ok := p.positions[pos]
	return s.x, s.y, ok
}

// BufferRows returns the number of rows available to buffer content.
func (p *Presenter) BufferRows() int {
	return p.height - 1
}

// DrawBuffer draws b with a line-number gutter, syntax colors and the
// options' decorations, scrolling b's viewport to keep the cursor visible.
func (p *Presenter) DrawBuffer(b *workspace.Buffer, opts BufferOptions) {
	rows := p.BufferRows()
	lineCount := b.LineCount()
	tabWidth := p.prefs.TabWidthFor(b.Path)
	wrap := p.prefs.LineWrapping

	gutterWidth := len(strconv.Itoa(lineCount)) + 2
	textWidth := p.width - gutterWidth
	if textWidth < 1 {
		gutterWidth, textWidth = 0, p.width
	}

	rowsFor := func(n int) int {
		if !wrap {
			return 1
		}
		line, _ := b.Line(n)
		w := displayWidth(line, tabWidth)
		return max(1, (w+textWidth-1)/textWidth)
	}
	vp := p.view.viewportFor(b)
	vp.reveal(b.Cursor.Line, rows, lineCount, rowsFor)

	y := 0
	for n := vp.top; n < lineCount && y < rows; n++ {
		line, _ := b.Line(n)
		y = p.drawLine(b, n, line, y, rows, gutterWidth, tabWidth, wrap, opts)
	}

	if opts.HideCursor {
		p.HideCursor()
		return
	}
	if pos, ok := p.positions[b.Cursor]; ok {
		p.SetCursor(pos.x, pos.y)
	}
}

// drawLine draws buffer line n starting at row y and returns the next free
// row.
func (p *Presenter) drawLine(b *workspace.Buffer, n int, line string, y, rows, gutterWidth, tabWidth int, wrap bool, opts BufferOptions) int {
	gutterStyle := p.theme.Gutter
	if n == b.Cursor.Line {
		gutterStyle = p.theme.CurrentLine
	}
	if gutterWidth > 0 {
		num := strconv.Itoa(n + 1)
		p.Print(gutterWidth-1-len(num), y, gutterStyle, num)
	}

	tokens := tokenStyles(b.Syntax, line)
	x := gutterWidth
	col := 0
	offset := 0
	guide := p.prefs.LineLengthGuide

	for bi, r := range line {
		pos := workspace.Position{Line: n, Offset: offset}
		style := p.theme.Default
		if tok, ok := tokens[bi]; ok {
			style = p.theme.Token(tok)
		}
		if opts.Selection != nil && inRange(*opts.Selection, pos) {
			style = p.theme.Selection
		}
		for _, h := range opts.Highlights {
			if inRange(h, pos) {
				style = p.theme.Focus
				break
			}
		}

		cell := terminal.NewCell(r, style)
		if r == '\t' {
			cell = terminal.Cell{Rune: ' ', Width: tabWidth - col%tabWidth, Style: style}
		} else if cell.Width == 0 {
			cell.Rune, cell.Width = '?', 1
		}

		if x+cell.Width > p.width {
			if !wrap {
				offset++
				continue
			}
			p.paintGuide(x, y, gutterWidth, guide)
			y++
			if y >= rows {
				return y
			}
			x = gutterWidth
		}

		p.positions[pos] = screenPos{x, y}
		if r == '\t' {
			for i := 0; i < cell.Width; i++ {
				p.term.SetCell(x+i, y, terminal.Cell{Rune: ' ', Width: 1, Style: style})
			}
		} else {
			p.term.SetCell(x, y, cell)
		}
		x += cell.Width
		col += cell.Width
		offset++
	}

	if x < p.width {
		p.positions[workspace.Position{Line: n, Offset: offset}] = screenPos{x, y}
	}
	p.paintGuide(x, y, gutterWidth, guide)
	return y + 1
}

// paintGuide marks the line length guide column when it lies past x.
func (p *Presenter) paintGuide(x, y, gutterWidth, guide int) {
	if guide <= 0 {
		return
	}
	col := gutterWidth + guide
	if col >= x && col < p.width {
		p.term.SetCell(col, y, terminal.Cell{Rune: ' ', Width: 1, Style: p.theme.Guide})
	}
}

func inRange(r workspace.Range, pos workspace.Position) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}

// tokenStyles maps byte offsets to token names.
func tokenStyles(def *syntax.Definition, line string) map[int]string {
	spans := def.Tokenize(line)
	if len(spans) == 0 {
		return nil
	}
	out := make(map[int]string)
	for _, s := range spans {
		for i := s.Start; i < s.End; i++ {
			out[i] = s.Token
		}
	}
	return out
}

func displayWidth(line string, tabWidth int) int {
	w := 0
	for _, r := range line {
		if r == '\t' {
			w += tabWidth - w%tabWidth
			continue
		}
		w += max(terminal.RuneWidth(r), 1)
	}
	return w
}

// StatusLineEntries draws entries on the bottom row, left to right. When
// there is more than one entry the last is right-aligned.
func (p *Presenter) StatusLineEntries(entries []StatusLineData) {
	y := p.height - 1
	p.FillLine(0, y, p.theme.Status)

	x := 0
	for i, e := range entries {
		if e.Content == "" {
			continue
		}
		if i == len(entries)-1 && len(entries) > 1 {
			if start := p.width - terminal.StringWidth(e.Content) - 2; start > x {
				x = start
			}
		}
		x = p.Print(x, y, p.statusStyle(e.Kind), " "+e.Content+" ")
	}
}

func (p *Presenter) statusStyle(kind StatusKind) terminal.Style {
	style := p.theme.Status
	switch kind {
	case StatusMode:
		style.Attributes |= terminal.AttrBold | terminal.AttrReverse
	case StatusFocus:
		style.Attributes |= terminal.AttrBold
	case StatusWarning:
		style.Foreground = p.theme.Warning.Foreground
		style.Background = p.theme.Default.Background
		style.Attributes |= terminal.AttrBold
	}
	return style
}

// Present flushes the frame to the terminal.
func (p *Presenter) Present() {
	p.term.SetCursorStyle(p.cursorStyle)
	if p.cursor != nil {
		p.term.ShowCursor(p.cursor.x, p.cursor.y)
	} else {
		p.term.HideCursor()
	}
	p.term.Show()
}
