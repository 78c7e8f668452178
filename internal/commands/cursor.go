package commands

import "github.com/dshills/quill/internal/workspace"

func registerCursor(r *Registry) {
	r.Register("cursor::move_up", withBuffer((*workspace.Buffer).CursorUp))
	r.Register("cursor::move_down", withBuffer((*workspace.Buffer).CursorDown))
	r.Register("cursor::move_left", withBuffer((*workspace.Buffer).CursorLeft))
	r.Register("cursor::move_right", withBuffer((*workspace.Buffer).CursorRight))
	r.Register("cursor::move_to_start_of_line", withBuffer((*workspace.Buffer).CursorStartOfLine))
	r.Register("cursor::move_to_end_of_line", withBuffer((*workspace.Buffer).CursorEndOfLine))
	r.Register("cursor::move_to_first_line", withBuffer((*workspace.Buffer).CursorFirstLine))
	r.Register("cursor::move_to_last_line", withBuffer((*workspace.Buffer).CursorLastLine))
}
