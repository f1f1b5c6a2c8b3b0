package source

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a line number or character offset outside the
// valid domain of a buffer.
var ErrOutOfRange = errors.New("source: position out of range")

// ErrCrossBuffer indicates an operation between ranges belonging to
// different buffers.
var ErrCrossBuffer = errors.New("source: ranges belong to different buffers")

// ConflictError is returned by Rewriter.Rewrite when two accumulated
// edits overlap. First is the earlier-starting edit in stable begin
// order; Second is the edit whose start precedes First's end.
type ConflictError struct {
	First  Range
	Second Range
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("source: ranges %s and %s overlap", e.First, e.Second)
}
