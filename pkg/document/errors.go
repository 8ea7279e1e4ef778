package document

import (
	"fmt"
)

type Reason int

const (
	ReasonInvalidCommand Reason = iota
	ReasonReadOnly
	ReasonStale
	ReasonInvalidOffset
	ReasonImports
	ReasonFormat
	ReasonNothingToUndo
)

func (r Reason) String() string {
	switch r {
	case ReasonReadOnly:
		return "document is read-only"
	case ReasonStale:
		return "stale snapshot"
	case ReasonInvalidOffset:
		return "invalid offset"
	case ReasonImports:
		return "merge imports failed"
	case ReasonFormat:
		return "format failed"
	case ReasonNothingToUndo:
		return "nothing to undo"
	default:
		return "invalid command"
	}
}

// ApplyError means nothing of the edit was applied.
type ApplyError struct {
	Reason   Reason
	Filename string
	Err      error
}

func (e *ApplyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("apply edit to %s: %s: %s", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("apply edit to %s: %s", e.Filename, e.Reason)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}
