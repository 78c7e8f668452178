// Package app is the control core of the editor. It owns the session, the
// active mode, the clipboard and the pending error, and runs the
// render/wait loop that routes events to them.
package app

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/event"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/vcs"
	"github.com/dshills/quill/internal/view"
	"github.com/dshills/quill/internal/view/terminal"
	"github.com/dshills/quill/internal/workspace"
)

// InputHandler handles a key press for the active mode. The returned error
// becomes the application's pending error.
type InputHandler interface {
	HandleInput(a *Application, k key.Event) error
}

// InputHandlerFunc adapts a function to InputHandler.
type InputHandlerFunc func(a *Application, k key.Event) error

// HandleInput calls f.
func (f InputHandlerFunc) HandleInput(a *Application, k key.Event) error {
	return f(a, k)
}

// Application is the editor's control core. Its exported fields are owned
// by the run loop goroutine; input handlers may read and replace them
// while handling a key.
type Application struct {
	Mode        modes.Mode
	Workspace   *workspace.Workspace
	SearchQuery string
	View        *view.View
	Clipboard   *clipboard.Clipboard
	Repository  *vcs.Repository
	Preferences *preferences.Store

	// Error is the outcome of handling the previous event, shown on the
	// status line until the next event replaces it.
	Error error

	queue   *event.Queue
	handler InputHandler
	logger  *logrus.Entry
	metrics *Metrics

	ownsPreferences bool
	shutdownOnce    sync.Once
}

// New builds an application from the process arguments. args[0] is the
// executable and is ignored; the rest are paths to open. On failure the
// terminal is restored and an *InitError is returned.
func New(args []string, opts ...Option) (*Application, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &Application{
		Mode:    modes.NewNormal(),
		handler: o.handler,
		logger:  logging.Component(o.logger, "app"),
		metrics: NewMetrics(),
	}

	a.Preferences = o.preferences
	if a.Preferences == nil {
		a.Preferences = preferences.NewStore(a.loadPreferences())
		a.ownsPreferences = true
	}
	prefs := a.Preferences.Get()

	a.queue = event.NewQueue(o.queueSize)

	term := o.terminal
	if term == nil {
		tc, err := terminal.NewTcell()
		if err != nil {
			a.queue.Close()
			return nil, &InitError{Component: "terminal", Err: err}
		}
		term = tc
	}

	v, err := view.New(term, a.Preferences, a.queue.Sender(), o.logger)
	if err != nil {
		a.queue.Close()
		return nil, &InitError{Component: "view", Err: err}
	}
	a.View = v
	a.logger.Debug("view initialized")

	var clipOpts []clipboard.Option
	if !prefs.Clipboard.System {
		clipOpts = append(clipOpts, clipboard.WithSystem(nil))
	}
	a.Clipboard = clipboard.New(clipOpts...)

	ws, err := initializeWorkspace(args, v, a.logger)
	if err != nil {
		a.Shutdown()
		return nil, &InitError{Component: "workspace", Err: err}
	}
	a.Workspace = ws
	a.logger.WithFields(logrus.Fields{
		"root":    ws.Root,
		"buffers": ws.Len(),
	}).Info("workspace initialized")

	if cwd, err := os.Getwd(); err == nil {
		a.Repository = vcs.Discover(cwd)
	}
	if a.Repository != nil {
		a.logger.WithField("root", a.Repository.Root()).Debug("repository found")
	}

	if a.ownsPreferences && o.watchPreferences {
		err := a.Preferences.Watch(func(err error) {
			if err != nil {
				a.logger.WithError(err).Warn("reloading preferences")
				return
			}
			a.logger.Info("preferences reloaded")
		})
		if err != nil {
			a.logger.WithError(err).Debug("preferences watch unavailable")
		}
	}

	return a, nil
}

// loadPreferences reads the preferences file, falling back to defaults.
func (a *Application) loadPreferences() preferences.Preferences {
	p, err := preferences.LoadOrDefault()
	if err != nil {
		a.logger.WithError(err).Warn("loading preferences, using defaults")
	}
	return p
}

// Shutdown stops background work and restores the terminal. Safe to call
// more than once.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.ownsPreferences {
			a.Preferences.Close()
		}
		a.queue.Close()
		if a.View != nil {
			a.View.Close()
		}
		a.logger.Debug("shut down")
	})
}

// SwitchMode replaces the active mode. Exit is final: once entered, later
// switches are ignored and false is returned.
func (a *Application) SwitchMode(m modes.Mode) bool {
	if modes.IsExit(a.Mode) {
		return false
	}
	a.logger.WithFields(logrus.Fields{
		"from": a.Mode.Kind(),
		"to":   m.Kind(),
	}).Debug("mode switch")
	a.Mode = m
	return true
}

// ModeName returns the label key bindings are registered under for the
// active mode. Modes with a query report whether they are accepting text.
// Exit has no label.
func (a *Application) ModeName() (string, bool) {
	switch m := a.Mode.(type) {
	case *modes.Command:
		return searchSelectName(m), true
	case *modes.SymbolJump:
		return searchSelectName(m), true
	case *modes.Open:
		return searchSelectName(m), true
	case *modes.Theme:
		return searchSelectName(m), true
	case *modes.Normal:
		return "normal", true
	case *modes.Path:
		return "path", true
	case *modes.Confirm:
		return "confirm", true
	case *modes.Insert:
		return "insert", true
	case *modes.Jump:
		return "jump", true
	case *modes.LineJump:
		return "line_jump", true
	case *modes.Select:
		return "select", true
	case *modes.SelectLine:
		return "select_line", true
	case *modes.Search:
		if m.InsertMode() {
			return "search_insert", true
		}
		return "search", true
	case *modes.Exit:
		return "", false
	default:
		return "", false
	}
}

func searchSelectName(m modes.SearchSelector) string {
	if m.InsertMode() {
		return "search_select_insert"
	}
	return "search_select"
}

// Events returns a sender for the application's event queue.
func (a *Application) Events() event.Sender {
	return a.queue.Sender()
}

// Logger returns the application's logger.
func (a *Application) Logger() *logrus.Entry {
	return a.logger
}

// Metrics returns the frame and event counters.
func (a *Application) Metrics() MetricsSnapshot {
	return a.metrics.Snapshot()
}

// Frames returns the number of frames rendered.
func (a *Application) Frames() uint64 {
	return a.metrics.Snapshot().Frames
}
