package vcs

// Status is the version control state of one file.
type Status int

const (
	StatusUnknown Status = iota
	StatusClean
	StatusUntracked
	StatusAdded
	StatusModified
	StatusStaged
	StatusDeleted
	StatusRenamed
	StatusConflicted
	StatusIgnored
)

// String returns the label shown on the status line.
func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusUntracked:
		return "untracked"
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusStaged:
		return "staged"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusConflicted:
		return "conflicted"
	case StatusIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// statusFromXY maps porcelain index (x) and worktree (y) codes.
func statusFromXY(x, y byte) Status {
	switch {
	case x == '?' && y == '?':
		return StatusUntracked
	case x == '!' && y == '!':
		return StatusIgnored
	case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
		return StatusConflicted
	case x == 'D' || y == 'D':
		return StatusDeleted
	case x == 'A':
		return StatusAdded
	case x == 'R' || x == 'C':
		return StatusRenamed
	case y == 'M' || y == 'T':
		return StatusModified
	case x == 'M' || x == 'T':
		return StatusStaged
	default:
		return StatusUnknown
	}
}
