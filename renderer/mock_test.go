package renderer

import (
	"errors"

	"tangerine/hal"
)

// recorder collects the calls made on mock windows and surfaces in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(call string) { r.calls = append(r.calls, call) }

// scriptWindow replays one Events value per poll, then repeats the last.
type scriptWindow struct {
	rec      *recorder
	script   []hal.Events
	polls    int
	pollErr  error
	title    string
	destroys int
}

func (w *scriptWindow) SetTitle(title string) {
	w.rec.add("title")
	w.title = title
}

func (w *scriptWindow) Size() (int, int) { return 4, 4 }

func (w *scriptWindow) PollEvents() (hal.Events, error) {
	w.rec.add("poll")
	if w.pollErr != nil {
		return hal.Events{}, w.pollErr
	}
	var ev hal.Events
	if len(w.script) > 0 {
		i := w.polls
		if i >= len(w.script) {
			i = len(w.script) - 1
		}
		ev = w.script[i]
	}
	w.polls++
	return ev, nil
}

func (w *scriptWindow) Blit(hal.Frame) error {
	w.rec.add("blit")
	return nil
}

func (w *scriptWindow) Destroy() error {
	w.rec.add("destroy-window")
	w.destroys++
	return nil
}

type mockSurface struct {
	rec        *recorder
	clear      [3]uint8
	presentErr error
	releases   int
}

func (s *mockSurface) SetClearColor(r, g, b uint8) { s.clear = [3]uint8{r, g, b} }
func (s *mockSurface) BeginFrame()                 { s.rec.add("begin") }

func (s *mockSurface) Present() error {
	s.rec.add("present")
	return s.presentErr
}

func (s *mockSurface) Resize(int, int) error {
	s.rec.add("resize")
	return nil
}

func (s *mockSurface) Release() {
	s.rec.add("release")
	s.releases++
}

func mockBinder(s *mockSurface) SurfaceBinder {
	return func(hal.Window, hal.PixelFormat, hal.Allocator) (hal.Surface, error) {
		return s, nil
	}
}

func failingBinder(hal.Window, hal.PixelFormat, hal.Allocator) (hal.Surface, error) {
	return nil, errors.New("no pixel format")
}

// countingAllocator tracks allocations and releases of surface storage.
type countingAllocator struct {
	allocs, frees int
}

func (a *countingAllocator) Alloc(n int) ([]byte, error) {
	a.allocs++
	return make([]byte, n), nil
}

func (a *countingAllocator) Free([]byte) { a.frees++ }
