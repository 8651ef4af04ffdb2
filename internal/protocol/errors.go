package protocol

import (
	"errors"
	"fmt"
)

// ErrIncomplete reports that a buffer does not yet hold a complete
// frame. The caller should read more bytes and retry.
var ErrIncomplete = errors.New("incomplete CI-V frame")

// ErrInvalidFrame reports structurally invalid bytes between preamble
// and terminator, or a response frame whose shape does not match the
// originating command.
var ErrInvalidFrame = errors.New("invalid CI-V frame")

// FrequencyRangeError reports a frequency above the 10-digit bound.
type FrequencyRangeError struct {
	Hz uint64
}

func (e *FrequencyRangeError) Error() string {
	return fmt.Sprintf("frequency out of range: %d Hz", e.Hz)
}

// UnknownModeError reports a (mode, filter) byte pair outside the
// defined set.
type UnknownModeError struct {
	Mode   byte
	Filter byte
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown operating mode: %#02x (filter %#02x)", e.Mode, e.Filter)
}
