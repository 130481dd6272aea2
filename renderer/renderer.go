// Package renderer runs a native window with a blocking per-frame callback
// loop. A Renderer owns exactly one window and one surface; both are
// released by Destroy, surface first.
//
// A Renderer is not safe for concurrent use. Callers that share one across
// goroutines must serialize every call themselves.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"tangerine/hal"
)

// State is the lifecycle position of a Renderer.
type State uint8

const (
	StateConstructed State = iota
	StateRunning
	StateClosed
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	case StateDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// DrawFunc is called once per frame after the backbuffer is cleared and
// before it is presented. A non-nil error ends Run with that error.
// The function is only borrowed for the duration of Run.
type DrawFunc func(r *Renderer, in Input) error

type Renderer struct {
	window  hal.Window
	surface hal.Surface
	log     *slog.Logger

	title string
	bg    [3]uint8

	state   State
	inFrame bool
	stop    bool
	lost    bool
	frames  uint64

	width, height int
}

// New opens the window and binds its surface. On failure nothing is left
// to release and the error wraps ErrInit.
func New(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInit, err)
		}
	}

	w := o.window
	if w == nil {
		var err error
		w, err = hal.Open(o.backend, hal.WindowConfig{
			Title:  o.title,
			Width:  o.width,
			Height: o.height,
			Scale:  o.scale,
			Hz:     o.hz,
			Frames: o.frames,
			Logger: o.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInit, err)
		}
	} else {
		w.SetTitle(o.title)
	}

	s, err := o.bind(w, o.format, o.alloc)
	if err != nil {
		if derr := w.Destroy(); derr != nil {
			err = errors.Join(err, derr)
		}
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	s.SetClearColor(o.bg[0], o.bg[1], o.bg[2])

	r := &Renderer{
		window:  w,
		surface: s,
		log:     o.logger,
		title:   o.title,
		bg:      o.bg,
	}
	r.width, r.height = w.Size()
	r.log.Debug("renderer created", "backend", o.backend, "width", r.width, "height", r.height, "format", o.format)
	return r, nil
}

func (r *Renderer) State() State { return r.state }

// Title returns the last title set.
func (r *Renderer) Title() string { return r.title }

// BackgroundColor returns the clear color of the next frame.
func (r *Renderer) BackgroundColor() (red, green, blue uint8) {
	return r.bg[0], r.bg[1], r.bg[2]
}

// Size returns the current surface size in pixels.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Frame returns the number of frames presented so far. Inside a DrawFunc
// it is the zero-based index of the frame being drawn.
func (r *Renderer) Frame() uint64 { return r.frames }

// SetTitle updates the window title immediately.
func (r *Renderer) SetTitle(title string) error {
	if r.state == StateDestroyed {
		return ErrUseAfterFree
	}
	r.title = title
	r.window.SetTitle(title)
	return nil
}

// SetBackgroundColor sets the clear color from exactly three bytes: red,
// green, blue. Any other length fails with ErrInvalidArgument and leaves the
// previous color in place.
func (r *Renderer) SetBackgroundColor(rgb []byte) error {
	if r.state == StateDestroyed {
		return ErrUseAfterFree
	}
	if len(rgb) != 3 {
		return fmt.Errorf("%w: background color needs 3 bytes, got %d", ErrInvalidArgument, len(rgb))
	}
	r.bg = [3]uint8{rgb[0], rgb[1], rgb[2]}
	r.surface.SetClearColor(r.bg[0], r.bg[1], r.bg[2])
	return nil
}

// RequestStop ends Run before the next frame is drawn. The frame in
// progress, if any, is still presented.
func (r *Renderer) RequestStop() {
	r.stop = true
}

// Run blocks, drawing frames until the window is closed, RequestStop is
// called, or a frame fails. A close request is observed before the callback
// of that frame, so the callback does not run for it.
//
// Polling and presentation failures wrap ErrPlatform and move the Renderer
// to StateClosed. Callback errors are returned unchanged and leave it in
// StateRunning; later Run calls then fail with ErrAlreadyRunning.
func (r *Renderer) Run(draw DrawFunc) error {
	switch r.state {
	case StateDestroyed:
		return ErrUseAfterFree
	case StateRunning:
		return ErrAlreadyRunning
	case StateClosed:
		return ErrClosed
	}
	if draw == nil {
		return fmt.Errorf("%w: nil draw callback", ErrInvalidArgument)
	}

	r.state = StateRunning
	r.stop = false
	r.log.Debug("run loop started", "title", r.title)

	step := func() (bool, error) { return r.frame(draw) }
	var err error
	if owner, ok := r.window.(hal.LoopOwner); ok {
		err = owner.RunLoop(step)
	} else {
		for {
			done, serr := step()
			if serr != nil {
				err = serr
				break
			}
			if done {
				break
			}
		}
	}
	if err != nil {
		r.log.Debug("run loop failed", "frame", r.frames, "err", err)
		return err
	}
	if r.state == StateRunning {
		r.state = StateClosed
	}
	r.log.Debug("run loop finished", "frames", r.frames)
	return nil
}

func (r *Renderer) frame(draw DrawFunc) (bool, error) {
	ev, err := r.window.PollEvents()
	if err != nil {
		return true, r.fail("poll events", err)
	}
	if ev.CloseRequested || r.stop {
		r.state = StateClosed
		return true, nil
	}
	if ev.Resized {
		if err := r.resize(ev.Width, ev.Height); err != nil {
			return true, r.fail("resize", err)
		}
	}

	r.surface.BeginFrame()
	if err := r.dispatch(draw, inputFrom(ev)); err != nil {
		return true, err
	}
	if r.state == StateDestroyed {
		return true, nil
	}

	if err := r.surface.Present(); err != nil {
		if !errors.Is(err, hal.ErrSurfaceLost) || r.lost {
			return true, r.fail("present", err)
		}
		r.lost = true
		w, h := r.window.Size()
		r.log.Warn("surface lost, rebuilding", "width", w, "height", h)
		if err := r.resize(w, h); err != nil {
			return true, r.fail("recover lost surface", err)
		}
		return false, nil
	}
	r.lost = false
	r.frames++
	return false, nil
}

func (r *Renderer) dispatch(draw DrawFunc, in Input) (err error) {
	r.inFrame = true
	defer func() {
		r.inFrame = false
		if v := recover(); v != nil {
			err = &PanicError{Frame: r.frames, Value: v}
		}
	}()
	return draw(r, in)
}

func (r *Renderer) resize(width, height int) error {
	if err := r.surface.Resize(width, height); err != nil {
		return err
	}
	r.log.Debug("surface resized", "width", width, "height", height)
	r.width, r.height = width, height
	return nil
}

// fail ends the loop on a platform failure.
func (r *Renderer) fail(op string, err error) error {
	r.state = StateClosed
	if errors.Is(err, ErrPlatform) {
		return fmt.Errorf("renderer: %s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrPlatform, op, err)
}

// Destroy releases the surface and then the window. It is valid in any
// state; calls after the first do nothing.
func (r *Renderer) Destroy() error {
	if r.state == StateDestroyed {
		return nil
	}
	r.state = StateDestroyed
	r.surface.Release()
	if err := r.window.Destroy(); err != nil {
		return fmt.Errorf("%w: destroy window: %w", ErrPlatform, err)
	}
	r.log.Debug("renderer destroyed", "frames", r.frames)
	return nil
}
