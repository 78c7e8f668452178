package terminal

import (
	"errors"
	"strings"
	"sync"
)

// ErrInitFailed is returned by a TestTerminal configured to fail Init.
var ErrInitFailed = errors.New("terminal: init failed")

// TestTerminal is an in-memory Terminal. Events pushed with Inject are
// returned by PollEvent in order; Shutdown makes PollEvent return
// EventClosed.
type TestTerminal struct {
	mu          sync.Mutex
	width       int
	height      int
	back        [][]Cell
	front       [][]Cell
	cursorX     int
	cursorY     int
	cursorShown bool
	cursorStyle CursorStyle
	shows       int
	initialized bool
	failInit    bool

	events   chan Event
	done     chan struct{}
	shutdown sync.Once
}

// NewTestTerminal creates an in-memory terminal of the given size.
func NewTestTerminal(width, height int) *TestTerminal {
	t := &TestTerminal{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	t.resize(width, height)
	return t
}

// FailInit makes the next Init call return ErrInitFailed.
func (t *TestTerminal) FailInit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failInit = true
}

func (t *TestTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failInit {
		return ErrInitFailed
	}
	t.initialized = true
	return nil
}

func (t *TestTerminal) Shutdown() {
	t.shutdown.Do(func() {
		t.mu.Lock()
		t.initialized = false
		t.mu.Unlock()
		close(t.done)
	})
}

// Initialized reports whether Init succeeded and Shutdown has not run.
func (t *TestTerminal) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

func (t *TestTerminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Resize changes the terminal size and queues an EventResize.
func (t *TestTerminal) Resize(width, height int) {
	t.mu.Lock()
	t.resize(width, height)
	t.mu.Unlock()
	t.Inject(Event{Type: EventResize, Width: width, Height: height})
}

func (t *TestTerminal) resize(width, height int) {
	t.width, t.height = width, height
	t.back = blankGrid(width, height)
	t.front = blankGrid(width, height)
}

func blankGrid(width, height int) [][]Cell {
	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
		for x := range grid[y] {
			grid[y][x] = EmptyCell()
		}
	}
	return grid
}

func (t *TestTerminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.back[y][x] = cell
	// A wide rune covers the following cell.
	for i := 1; i < cell.Width && x+i < t.width; i++ {
		t.back[y][x+i] = Cell{}
	}
}

func (t *TestTerminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.back = blankGrid(t.width, t.height)
}

func (t *TestTerminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for y := range t.back {
		copy(t.front[y], t.back[y])
	}
	t.shows++
}

func (t *TestTerminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorX, t.cursorY = x, y
	t.cursorShown = true
}

func (t *TestTerminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorShown = false
}

func (t *TestTerminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorStyle = style
}

// Cursor returns the cursor position and whether it is visible.
func (t *TestTerminal) Cursor() (x, y int, visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorX, t.cursorY, t.cursorShown
}

// CursorStyle returns the last cursor style set.
func (t *TestTerminal) CursorStyle() CursorStyle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorStyle
}

// Inject queues an event for PollEvent.
func (t *TestTerminal) Inject(ev Event) {
	select {
	case t.events <- ev:
	case <-t.done:
	}
}

func (t *TestTerminal) PollEvent() Event {
	select {
	case ev := <-t.events:
		return ev
	case <-t.done:
		return Event{Type: EventClosed}
	}
}

// Shows returns the number of times Show has been called.
func (t *TestTerminal) Shows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shows
}

// CellAt returns the displayed cell at x, y.
func (t *TestTerminal) CellAt(x, y int) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return Cell{}
	}
	return t.front[y][x]
}

// Row returns the displayed text of row y with trailing spaces removed.
// Continuation cells of wide runes are skipped.
func (t *TestTerminal) Row(y int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if y < 0 || y >= t.height {
		return ""
	}
	var b strings.Builder
	for _, c := range t.front[y] {
		if c.Rune == 0 {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Contents returns all displayed rows joined by newlines.
func (t *TestTerminal) Contents() string {
	_, h := t.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = t.Row(y)
	}
	return strings.Join(rows, "\n")
}

var _ Terminal = (*TestTerminal)(nil)
var _ Terminal = (*Tcell)(nil)
