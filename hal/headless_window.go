package hal

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// HeadlessWindow is a Window without a native surface. Events are injected
// by the caller, which makes it the backend for tests and CI runs.
// Injection methods are safe to call from other goroutines.
type HeadlessWindow struct {
	mu      sync.Mutex
	pending []func(*eventState)
	state   eventState

	title  string
	frames uint64
	ticker *time.Ticker
	done   chan struct{}
	log    *slog.Logger

	pollErr error
	blitErr error

	blits     uint64
	last      Frame
	destroyed bool
}

// NewHeadlessWindow opens a window that presents into memory.
func NewHeadlessWindow(cfg WindowConfig) *HeadlessWindow {
	cfg = cfg.withDefaults()
	w := &HeadlessWindow{
		state:  newEventState(cfg.Width, cfg.Height),
		title:  cfg.Title,
		frames: cfg.Frames,
		done:   make(chan struct{}),
		log:    cfg.Logger,
	}
	if cfg.Hz > 0 {
		w.ticker = time.NewTicker(FrameInterval(cfg.Hz))
	}
	w.log.Debug("headless window opened", "width", cfg.Width, "height", cfg.Height, "hz", cfg.Hz)
	return w
}

func (w *HeadlessWindow) push(fn func(*eventState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, fn)
}

// Move queues a pointer motion event.
func (w *HeadlessWindow) Move(x, y int) {
	w.push(func(s *eventState) { s.motion(x, y) })
}

// RequestClose queues a close request.
func (w *HeadlessWindow) RequestClose() {
	w.push(func(s *eventState) { s.requestClose() })
}

// ResizeTo queues a size change.
func (w *HeadlessWindow) ResizeTo(width, height int) {
	w.push(func(s *eventState) { s.resize(width, height) })
}

// FailNextPoll makes the next PollEvents return err.
func (w *HeadlessWindow) FailNextPoll(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollErr = err
}

// FailNextBlit makes the next Blit return err.
func (w *HeadlessWindow) FailNextBlit(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blitErr = err
}

func (w *HeadlessWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.title = title
}

// Title returns the current window title.
func (w *HeadlessWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *HeadlessWindow) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.width, w.state.height
}

func (w *HeadlessWindow) PollEvents() (Events, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return Events{}, fmt.Errorf("%w: headless: window destroyed", ErrPlatform)
	}
	if err := w.pollErr; err != nil {
		w.pollErr = nil
		return Events{}, err
	}
	for _, fn := range w.pending {
		fn(&w.state)
	}
	w.pending = w.pending[:0]
	return w.state.take(), nil
}

func (w *HeadlessWindow) Blit(f Frame) error {
	if w.ticker != nil {
		select {
		case <-w.ticker.C:
		case <-w.done:
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return fmt.Errorf("%w: headless: window destroyed", ErrPlatform)
	}
	if err := w.blitErr; err != nil {
		w.blitErr = nil
		return err
	}
	if len(w.last.Pix) != len(f.Pix) {
		w.last.Pix = make([]byte, len(f.Pix))
	}
	copy(w.last.Pix, f.Pix)
	w.last.Width, w.last.Height, w.last.Stride, w.last.Format = f.Width, f.Height, f.Stride, f.Format

	w.blits++
	if w.frames > 0 && w.blits >= w.frames {
		w.state.requestClose()
	}
	return nil
}

// Blits returns the number of frames presented so far.
func (w *HeadlessWindow) Blits() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blits
}

// LastFrame returns a copy of the most recently presented frame.
func (w *HeadlessWindow) LastFrame() Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	f := w.last
	f.Pix = append([]byte(nil), w.last.Pix...)
	return f
}

func (w *HeadlessWindow) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	close(w.done)
	if w.ticker != nil {
		w.ticker.Stop()
	}
	w.log.Debug("headless window destroyed", "frames", w.blits)
	return nil
}

// Destroyed reports whether Destroy has been called.
func (w *HeadlessWindow) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}
