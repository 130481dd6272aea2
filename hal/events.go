package hal

// eventState folds raw backend events into the state reported by
// PollEvents. Cursor position and size persist across polls; the close
// and resize flags are cleared by take.
type eventState struct {
	cursorX, cursorY uint32
	width, height    int
	closeRequested   bool
	resized          bool
}

func newEventState(width, height int) eventState {
	return eventState{width: width, height: height}
}

// motion records a pointer position; negative coordinates clamp to 0.
func (s *eventState) motion(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	s.cursorX = uint32(x)
	s.cursorY = uint32(y)
}

func (s *eventState) requestClose() { s.closeRequested = true }

func (s *eventState) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.resized = true
}

func (s *eventState) take() Events {
	ev := Events{
		CloseRequested: s.closeRequested,
		CursorX:        s.cursorX,
		CursorY:        s.cursorY,
		Resized:        s.resized,
		Width:          s.width,
		Height:         s.height,
	}
	s.closeRequested = false
	s.resized = false
	return ev
}
