package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/input/key"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGB(0xff, 0x80, 0x00), c)
	assert.Equal(t, "#ff8000", c.String())

	c, err = ParseColor("default")
	require.NoError(t, err)
	assert.True(t, c.Default)

	_, err = ParseColor("chartreuse")
	assert.Error(t, err)
}

func TestColorBlend(t *testing.T) {
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)

	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	assert.Equal(t, ColorDefault, ColorDefault.Blend(white, 0.5))
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 0, RuneWidth('\t'))
	assert.Equal(t, 5, StringWidth("hello"))
}

func TestTestTerminalShow(t *testing.T) {
	term := NewTestTerminal(10, 2)
	require.NoError(t, term.Init())

	for i, r := range "hi" {
		term.SetCell(i, 0, NewCell(r, DefaultStyle()))
	}
	assert.Equal(t, "", term.Row(0), "cells are not visible before Show")

	term.Show()
	assert.Equal(t, "hi", term.Row(0))
	assert.Equal(t, 1, term.Shows())

	term.SetCell(50, 50, NewCell('x', DefaultStyle()))
	term.Clear()
	term.Show()
	assert.Equal(t, "", term.Row(0))
}

func TestTestTerminalEvents(t *testing.T) {
	term := NewTestTerminal(10, 2)
	term.Inject(Event{Type: EventKey, Key: key.Char('a')})
	term.Resize(20, 4)

	ev := term.PollEvent()
	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, key.Char('a'), ev.Key)

	ev = term.PollEvent()
	assert.Equal(t, EventResize, ev.Type)
	assert.Equal(t, 20, ev.Width)

	w, h := term.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 4, h)

	term.Shutdown()
	term.Shutdown()
	assert.Equal(t, EventClosed, term.PollEvent().Type)
}

func TestTestTerminalFailInit(t *testing.T) {
	term := NewTestTerminal(10, 2)
	term.FailInit()
	assert.ErrorIs(t, term.Init(), ErrInitFailed)
	assert.False(t, term.Initialized())
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.Char('x')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), key.Char('X')},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), key.NewEvent(key.KeyRune, 'f', key.ModAlt)},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.Special(key.KeySpace)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Special(key.KeyEscape)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.NewEvent(key.KeyTab, 0, key.ModShift)},
		{"ctrl-s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), key.Ctrl('s')},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), key.Special(key.KeyPageDown)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertStyle(t *testing.T) {
	style := convertStyle(Style{
		Foreground: RGB(255, 0, 0),
		Background: ColorDefault,
		Attributes: AttrBold | AttrUnderline,
	})
	fg, bg, attrs := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.ColorDefault, bg)
	assert.NotZero(t, attrs&tcell.AttrBold)
	assert.NotZero(t, attrs&tcell.AttrUnderline)
}
