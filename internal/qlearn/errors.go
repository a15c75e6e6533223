package qlearn

import (
	"errors"
	"fmt"
)

var (
	// ErrTableIO reports a missing, unreadable or truncated table file.
	ErrTableIO = errors.New("table i/o")

	// ErrTableSize reports a table file of the wrong length. It also matches ErrTableIO.
	ErrTableSize = fmt.Errorf("%w: unexpected size", ErrTableIO)

	// ErrInvalidState reports a state id outside [0, StateCount).
	ErrInvalidState = errors.New("invalid state id")
)

func checkState(s StateID) error {
	if !s.Valid() {
		return fmt.Errorf("qlearn: %w: %d", ErrInvalidState, s)
	}
	return nil
}
