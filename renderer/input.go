package renderer

import "tangerine/hal"

// Input is the pointer state for one frame. Positions are window-local
// pixels and start at 0,0 until the pointer moves.
type Input struct {
	CursorPositionX uint32
	CursorPositionY uint32
}

func inputFrom(ev hal.Events) Input {
	return Input{CursorPositionX: ev.CursorX, CursorPositionY: ev.CursorY}
}
