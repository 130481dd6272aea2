package renderer

import (
	"errors"
	"fmt"

	"tangerine/hal"
)

var (
	// ErrInit reports that the window or surface could not be created.
	ErrInit = errors.New("renderer: init failed")
	// ErrPlatform reports an OS or presentation failure while running.
	ErrPlatform = hal.ErrPlatform
	// ErrInvalidArgument reports malformed caller input.
	ErrInvalidArgument = errors.New("renderer: invalid argument")
	// ErrAlreadyRunning reports a Run call while a loop is active, or after
	// a previous loop ended with a failure.
	ErrAlreadyRunning = errors.New("renderer: already running")
	// ErrUseAfterFree reports use of a destroyed Renderer.
	ErrUseAfterFree = errors.New("renderer: use after destroy")
	// ErrClosed reports a Run call after the loop reached the closed state.
	ErrClosed = errors.New("renderer: closed")
	// ErrNotRunning reports a draw call outside of a frame callback.
	ErrNotRunning = errors.New("renderer: not inside a frame")
)

// PanicError wraps a value recovered from a panicking DrawFunc.
type PanicError struct {
	Frame uint64
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("renderer: draw callback panicked on frame %d: %v", e.Frame, e.Value)
}
