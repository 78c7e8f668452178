package commands

import "errors"

// Command errors.
var (
	// ErrNoBuffer indicates a command that needs a buffer ran without one.
	ErrNoBuffer = errors.New("no buffer available")

	// ErrUnknownCommand indicates a keymap entry naming no registered command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrWrongMode indicates a command ran in a mode it does not apply to.
	ErrWrongMode = errors.New("command not available in this mode")

	// ErrNoMatches indicates a search found nothing.
	ErrNoMatches = errors.New("no matches found")

	// ErrInvalidLine indicates a line jump to a line that does not exist.
	ErrInvalidLine = errors.New("invalid line number")

	// ErrPanic indicates a command panicked.
	ErrPanic = errors.New("command panicked")
)
