// Package event defines the messages delivered to the application core and
// the queue that carries them.
//
// The set of events is closed: Key, Resize and OpenModeIndexComplete are the
// only implementations of Event.
package event

import (
	"github.com/google/uuid"

	"github.com/dshills/quill/internal/index"
	"github.com/dshills/quill/internal/input/key"
)

// Event is a message for the application core.
type Event interface {
	isEvent()
}

// Key is a key press read from the terminal.
type Key struct {
	Key key.Event
}

// Resize reports new terminal dimensions.
type Resize struct {
	Width  int
	Height int
}

// OpenModeIndexComplete carries a finished file index. Token identifies the
// Open mode instance that requested it. Err is set when indexing failed, in
// which case Index is empty.
type OpenModeIndexComplete struct {
	Token uuid.UUID
	Index *index.Index
	Err   error
}

func (Key) isEvent()                   {}
func (Resize) isEvent()                {}
func (OpenModeIndexComplete) isEvent() {}
