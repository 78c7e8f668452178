package view

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/event"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/view/terminal"
	"github.com/dshills/quill/internal/workspace"
)

func newTestView(t *testing.T, width, height int) (*View, *terminal.TestTerminal, *event.Queue) {
	t.Helper()
	t.Setenv(preferences.EnvConfigDir, t.TempDir())

	term := terminal.NewTestTerminal(width, height)
	q := event.NewQueue(16)
	prefs := preferences.NewStore(preferences.Default(""))

	v, err := New(term, prefs, q.Sender(), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() {
		q.Close()
		v.Close()
	})
	return v, term, q
}

func bufferWith(text string) *workspace.Buffer {
	b := workspace.NewBuffer()
	b.Insert(text)
	b.CursorFirstLine()
	return b
}

func nextEvent(t *testing.T, q *event.Queue) event.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := q.Next(ctx)
	require.NoError(t, err)
	return ev
}

func TestNewInitFailure(t *testing.T) {
	term := terminal.NewTestTerminal(80, 24)
	term.FailInit()

	_, err := New(term, preferences.NewStore(preferences.Default("")), event.Sender{}, nil)
	assert.ErrorIs(t, err, terminal.ErrInitFailed)
}

func TestInputDriver(t *testing.T) {
	v, term, q := newTestView(t, 80, 24)

	term.Inject(terminal.Event{Type: terminal.EventKey, Key: key.Char('x')})
	term.Resize(100, 30)

	assert.Equal(t, event.Key{Key: key.Char('x')}, nextEvent(t, q))
	assert.Equal(t, event.Resize{Width: 100, Height: 30}, nextEvent(t, q))

	v.Close()
	v.Close()
	assert.False(t, term.Initialized())
}

func TestBuildPresenterTooSmall(t *testing.T) {
	v, _, _ := newTestView(t, 5, 2)
	_, err := v.BuildPresenter()
	assert.ErrorIs(t, err, ErrTerminalTooSmall)
}

func TestInitializeBuffer(t *testing.T) {
	v, _, _ := newTestView(t, 80, 24)
	assert.ErrorIs(t, v.InitializeBuffer(nil), ErrNilBuffer)
	assert.NoError(t, v.InitializeBuffer(workspace.NewBuffer()))
}

func TestLastKey(t *testing.T) {
	v, _, _ := newTestView(t, 80, 24)
	_, ok := v.LastKey()
	assert.False(t, ok)

	v.SetLastKey(key.Ctrl('s'))
	k, ok := v.LastKey()
	require.True(t, ok)
	assert.Equal(t, key.Ctrl('s'), k)
}

func TestDrawBuffer(t *testing.T) {
	v, term, _ := newTestView(t, 20, 5)
	b := bufferWith("hello\nwörld")
	b.MoveTo(workspace.Position{Line: 1, Offset: 2})
	require.NoError(t, v.InitializeBuffer(b))

	p, err := v.BuildPresenter()
	require.NoError(t, err)
	p.DrawBuffer(b, BufferOptions{})
	p.StatusLineEntries([]StatusLineData{
		{Content: "NORMAL", Kind: StatusMode},
		{Content: "2:3"},
	})
	p.Present()

	assert.Equal(t, " 1 hello", term.Row(0))
	assert.Equal(t, " 2 wörld", term.Row(1))
	assert.Equal(t, "", term.Row(2))
	assert.True(t, strings.HasPrefix(term.Row(4), " NORMAL "))
	assert.True(t, strings.HasSuffix(term.Row(4), " 2:3"))

	x, y, visible := term.Cursor()
	assert.True(t, visible)
	assert.Equal(t, 5, x)
	assert.Equal(t, 1, y)
}

func TestDrawBufferScrollsToCursor(t *testing.T) {
	v, term, _ := newTestView(t, 20, 5)
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "l" + string(rune('0'+i))
	}
	b := bufferWith(strings.Join(lines, "\n"))
	b.CursorLastLine()

	p, err := v.BuildPresenter()
	require.NoError(t, err)
	p.DrawBuffer(b, BufferOptions{})
	p.Present()

	assert.Equal(t, "  7 l6", term.Row(0))
	assert.Equal(t, " 10 l9", term.Row(3))
	x, y, _ := term.Cursor()
	assert.Equal(t, 4, x)
	assert.Equal(t, 3, y)

	first, last := v.VisibleLines(b)
	assert.Equal(t, 6, first)
	assert.Equal(t, 9, last)
}

func TestDrawBufferWrapsLongLines(t *testing.T) {
	v, term, _ := newTestView(t, 10, 5)
	b := bufferWith("abcdefghijkl")

	p, err := v.BuildPresenter()
	require.NoError(t, err)
	p.DrawBuffer(b, BufferOptions{})
	p.Present()

	assert.Equal(t, " 1 abcdefg", term.Row(0))
	assert.Equal(t, "   hijkl", term.Row(1))
}

func TestDrawBufferSelection(t *testing.T) {
	v, term, _ := newTestView(t, 20, 4)
	b := bufferWith("select me")

	sel := workspace.NewRange(workspace.Position{Offset: 0}, workspace.Position{Offset: 6})
	p, err := v.BuildPresenter()
	require.NoError(t, err)
	p.DrawBuffer(b, BufferOptions{Selection: &sel, HideCursor: true})
	p.Present()

	theme := v.Theme()
	assert.Equal(t, theme.Selection, term.CellAt(3, 0).Style)
	assert.Equal(t, theme.Default, term.CellAt(10, 0).Style)
	_, _, visible := term.Cursor()
	assert.False(t, visible)
}

func TestPrintClips(t *testing.T) {
	v, term, _ := newTestView(t, 10, 3)
	p, err := v.BuildPresenter()
	require.NoError(t, err)

	next := p.Print(6, 0, v.Theme().Default, "世界!")
	p.Present()
	assert.Equal(t, 10, next)
	assert.Equal(t, "世界", strings.TrimSpace(term.Row(0)))
}

func TestThemes(t *testing.T) {
	v, _, _ := newTestView(t, 80, 24)
	assert.Equal(t, preferences.DefaultTheme, v.Theme().Name)
	assert.Contains(t, v.Themes(), "quill_light")
	assert.Contains(t, v.Themes(), "terminal")

	require.NoError(t, v.SetTheme("quill_light"))
	assert.Equal(t, "quill_light", v.Theme().Name)
	assert.Equal(t, "quill_light", v.Preferences().Theme)

	assert.ErrorIs(t, v.SetTheme("missing"), ErrUnknownTheme)
}

func TestLoadUserThemes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte(`
name: mine
foreground: "#ffffff"
background: "#000000"
tokens:
  keyword: "#ff0000"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\nforeground: nope\n"), 0o644))

	set, errs := LoadThemes(dir)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "broken.yaml")

	mine, ok := set.Get("mine")
	require.True(t, ok)
	assert.Equal(t, terminal.RGB(255, 0, 0), mine.Token("keyword").Foreground)
	assert.Equal(t, mine.Default, mine.Token("nonexistent"))
	assert.False(t, mine.Selection.Background.Default, "selection is shaded from concrete colors")
}
