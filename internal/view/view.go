// Package view is the editor's rendering surface. It owns the terminal,
// the theme set and per-buffer scroll state, and builds a Presenter for
// each frame.
package view

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/quill/internal/event"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/view/terminal"
	"github.com/dshills/quill/internal/workspace"
)

// Minimum terminal size a presenter can draw in.
const (
	MinWidth  = 10
	MinHeight = 3
)

var (
	// ErrNilBuffer is returned by InitializeBuffer for a nil buffer.
	ErrNilBuffer = errors.New("nil buffer")

	// ErrTerminalTooSmall is returned by BuildPresenter when the terminal
	// is below the minimum size.
	ErrTerminalTooSmall = errors.New("terminal too small")
)

// View is the rendering surface.
type View struct {
	term   terminal.Terminal
	prefs  *preferences.Store
	events event.Sender
	logger *logrus.Entry

	themes    *ThemeSet
	viewports map[uuid.UUID]*viewport
	lastKey   *key.Event

	driverDone chan struct{}
	closeOnce  sync.Once
}

// New initializes term and starts forwarding its input to events. Theme
// files that fail to load are logged and skipped.
func New(term terminal.Terminal, prefs *preferences.Store, events event.Sender, logger logrus.FieldLogger) (*View, error) {
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	v := &View{
		term:       term,
		prefs:      prefs,
		events:     events,
		logger:     logging.Component(logger, "view"),
		viewports:  make(map[uuid.UUID]*viewport),
		driverDone: make(chan struct{}),
	}

	themeDir, err := preferences.ThemePath()
	if err != nil {
		v.logger.WithError(err).Warn("theme directory unavailable")
		themeDir = ""
	}
	var themeErrs []error
	v.themes, themeErrs = LoadThemes(themeDir)
	for _, err := range themeErrs {
		v.logger.WithError(err).Warn("skipping theme")
	}

	go v.drive()
	return v, nil
}

// drive forwards terminal events to the event queue until the terminal
// closes or the queue stops accepting events.
func (v *View) drive() {
	defer close(v.driverDone)
	for {
		ev := v.term.PollEvent()
		var out event.Event
		switch ev.Type {
		case terminal.EventClosed:
			return
		case terminal.EventKey:
			out = event.Key{Key: ev.Key}
		case terminal.EventResize:
			out = event.Resize{Width: ev.Width, Height: ev.Height}
		default:
			continue
		}
		if !v.events.Send(out) {
			return
		}
	}
}

// Close restores the terminal and waits for the input driver to stop.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.term.Shutdown()
		<-v.driverDone
	})
}

// InitializeBuffer prepares display state for b.
func (v *View) InitializeBuffer(b *workspace.Buffer) error {
	if b == nil {
		return ErrNilBuffer
	}
	if _, ok := v.viewports[b.ID]; !ok {
		v.viewports[b.ID] = &viewport{}
	}
	return nil
}

// ForgetBuffer drops display state for a closed buffer.
func (v *View) ForgetBuffer(b *workspace.Buffer) {
	if b != nil {
		delete(v.viewports, b.ID)
	}
}

func (v *View) viewportFor(b *workspace.Buffer) *viewport {
	vp, ok := v.viewports[b.ID]
	if !ok {
		vp = &viewport{}
		v.viewports[b.ID] = vp
	}
	return vp
}

// BuildPresenter starts a new frame.
func (v *View) BuildPresenter() (*Presenter, error) {
	width, height := v.term.Size()
	if width < MinWidth || height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTerminalTooSmall, width, height, MinWidth, MinHeight)
	}
	v.term.Clear()
	return newPresenter(v, width, height), nil
}

// SetLastKey records the most recent key press.
func (v *View) SetLastKey(k key.Event) {
	v.lastKey = &k
}

// LastKey returns the most recent key press.
func (v *View) LastKey() (key.Event, bool) {
	if v.lastKey == nil {
		return key.Event{}, false
	}
	return *v.lastKey, true
}

// Preferences returns the current preferences snapshot.
func (v *View) Preferences() preferences.Preferences {
	return v.prefs.Get()
}

// Theme returns the configured theme, or the default one if the
// configured name is unknown.
func (v *View) Theme() *Theme {
	if t, ok := v.themes.Get(v.prefs.Get().Theme); ok {
		return t
	}
	if t, ok := v.themes.Get(preferences.DefaultTheme); ok {
		return t
	}
	t, _ := v.themes.Get("terminal")
	return t
}

// Themes returns the available theme names.
func (v *View) Themes() []string {
	return v.themes.Names()
}

// SetTheme switches to the named theme.
func (v *View) SetTheme(name string) error {
	if _, ok := v.themes.Get(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	v.prefs.SetTheme(name)
	return nil
}

// VisibleLines returns the first and last buffer lines shown for b on the
// last frame. Lines are assumed unwrapped.
func (v *View) VisibleLines(b *workspace.Buffer) (first, last int) {
	_, height := v.term.Size()
	first = v.viewportFor(b).top
	last = min(first+max(height-1, 1)-1, b.LineCount()-1)
	return first, last
}

// ScrollBy moves b's viewport by delta lines.
func (v *View) ScrollBy(b *workspace.Buffer, delta int) {
	vp := v.viewportFor(b)
	vp.top = max(0, min(vp.top+delta, b.LineCount()-1))
}
