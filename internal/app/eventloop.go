package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/quill/internal/event"
	"github.com/dshills/quill/internal/index"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/presenters"
)

// Run renders the active mode and handles one event at a time until the
// mode becomes Exit. It returns ctx.Err() when ctx is cancelled and
// ErrEventQueueClosed if the queue closes first.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("run loop started")
	defer a.logger.WithField("frames", a.Frames()).Info("run loop stopped")

	for !modes.IsExit(a.Mode) {
		a.render()
		if err := a.waitForEvent(ctx); err != nil {
			return err
		}
	}
	return nil
}

// render draws the active mode. A presenter failure replaces the pending
// error on screen for this frame; otherwise the pending error, if any, is
// drawn over the frame.
func (a *Application) render() {
	start := time.Now()
	defer func() {
		a.metrics.RecordFrame(time.Since(start))
	}()

	if err := a.present(); err != nil {
		a.metrics.RecordRenderFailure()
		a.drawError(err)
		return
	}
	if a.Error != nil {
		a.drawError(a.Error)
	}
}

// drawError shows err on the status line. If even that fails there is
// nowhere left to show it, so it is only logged.
func (a *Application) drawError(err error) {
	if drawErr := presenters.Error(a.Workspace, a.View, err); drawErr != nil {
		a.logger.WithError(drawErr).WithField("shown", err.Error()).Error("drawing error")
	}
}

// present calls the presenter for the active mode.
func (a *Application) present() error {
	ws, v := a.Workspace, a.View

	switch m := a.Mode.(type) {
	case *modes.Confirm:
		return presenters.Confirm(ws, v, m)
	case *modes.Command:
		return presenters.SearchSelect(ws, v, m)
	case *modes.Open:
		return presenters.SearchSelect(ws, v, m)
	case *modes.SymbolJump:
		return presenters.SearchSelect(ws, v, m)
	case *modes.Theme:
		return presenters.SearchSelect(ws, v, m)
	case *modes.Insert:
		return presenters.Insert(ws, v)
	case *modes.Jump:
		return presenters.Jump(ws, v, m)
	case *modes.LineJump:
		return presenters.LineJump(ws, v, m)
	case *modes.Path:
		return presenters.Path(ws, v, m)
	case *modes.Normal:
		return presenters.Normal(ws, v, a.Repository)
	case *modes.Select:
		return presenters.Select(ws, v, m)
	case *modes.SelectLine:
		return presenters.SelectLine(ws, v, m)
	case *modes.Search:
		return presenters.Search(ws, v, m)
	case *modes.Exit:
		return nil
	default:
		return fmt.Errorf("no presenter for mode %s", a.Mode.Kind())
	}
}

// waitForEvent blocks for the next event and handles it.
func (a *Application) waitForEvent(ctx context.Context) error {
	ev, err := a.queue.Next(ctx)
	if errors.Is(err, event.ErrClosed) {
		return ErrEventQueueClosed
	}
	if err != nil {
		return err
	}

	a.handleEvent(ev)
	return nil
}

func (a *Application) handleEvent(ev event.Event) {
	switch ev := ev.(type) {
	case event.Key:
		a.View.SetLastKey(ev.Key)
		a.Error = a.handler.HandleInput(a, ev.Key)
		a.metrics.RecordEvent(a.Error)
		if a.Error != nil {
			a.logger.WithError(a.Error).WithField("key", ev.Key.String()).Debug("key handling failed")
		}

	case event.Resize:
		a.metrics.RecordEvent(nil)
		a.logger.WithFields(logrus.Fields{
			"width":  ev.Width,
			"height": ev.Height,
		}).Debug("terminal resized")

	case event.OpenModeIndexComplete:
		a.metrics.RecordEvent(nil)
		open, ok := a.Mode.(*modes.Open)
		if !ok || open.Token != ev.Token {
			a.metrics.RecordStaleIndex()
			a.logger.WithField("token", ev.Token).Debug("discarding stale index")
			return
		}
		idx := ev.Index
		if idx == nil {
			idx = index.New(open.Root(), nil)
		}
		open.SetIndex(idx)
		open.Search()
		if ev.Err != nil {
			a.Error = fmt.Errorf("indexing files: %w", ev.Err)
			a.logger.WithError(ev.Err).WithField("root", open.Root()).Warn("indexing failed")
			return
		}
		a.logger.WithField("files", idx.Len()).Debug("index installed")
	}
}
