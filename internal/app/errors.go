package app

import (
	"errors"
	"fmt"
)

// ErrEventQueueClosed is returned by Run when the event queue closes
// before the editor exits.
var ErrEventQueueClosed = errors.New("event queue closed")

// InitError reports a component that could not be constructed.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
