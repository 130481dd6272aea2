package hal

import (
	"errors"
	"testing"
	"time"
)

func TestHeadlessEventsFold(t *testing.T) {
	w := NewHeadlessWindow(WindowConfig{Width: 10, Height: 10})

	ev, err := w.PollEvents()
	if err != nil {
		t.Fatalf("PollEvents: %v", err)
	}
	if ev.CursorX != 0 || ev.CursorY != 0 || ev.CloseRequested || ev.Resized {
		t.Fatalf("initial events = %+v", ev)
	}

	w.Move(3, 4)
	w.Move(5, 6)
	w.Move(-1, 8)
	w.RequestClose()
	ev, _ = w.PollEvents()
	if ev.CursorX != 0 || ev.CursorY != 8 || !ev.CloseRequested {
		t.Fatalf("folded events = %+v", ev)
	}

	ev, _ = w.PollEvents()
	if ev.CloseRequested {
		t.Fatal("close flag survived a poll")
	}
	if ev.CursorY != 8 {
		t.Fatal("cursor position was not kept")
	}

	w.ResizeTo(20, 5)
	ev, _ = w.PollEvents()
	if !ev.Resized || ev.Width != 20 || ev.Height != 5 {
		t.Fatalf("resize events = %+v", ev)
	}
	if width, height := w.Size(); width != 20 || height != 5 {
		t.Fatalf("Size = %dx%d", width, height)
	}
}

func TestHeadlessFrameLimit(t *testing.T) {
	w := NewHeadlessWindow(WindowConfig{Width: 1, Height: 1, Frames: 2})
	f := Frame{Width: 1, Height: 1, Stride: 4, Format: PixelFormatRGBA8888, Pix: make([]byte, 4)}
	for i := 0; i < 2; i++ {
		ev, _ := w.PollEvents()
		if ev.CloseRequested {
			t.Fatalf("closed before frame %d", i)
		}
		if err := w.Blit(f); err != nil {
			t.Fatalf("Blit: %v", err)
		}
	}
	ev, _ := w.PollEvents()
	if !ev.CloseRequested {
		t.Fatal("expected close after frame limit")
	}
}

func TestHeadlessInjectedFailures(t *testing.T) {
	w := NewHeadlessWindow(WindowConfig{})
	boom := errors.New("boom")
	w.FailNextPoll(boom)
	if _, err := w.PollEvents(); !errors.Is(err, boom) {
		t.Fatalf("PollEvents: %v", err)
	}
	if _, err := w.PollEvents(); err != nil {
		t.Fatalf("failure was not one-shot: %v", err)
	}
	w.FailNextBlit(ErrSurfaceLost)
	if err := w.Blit(Frame{}); !errors.Is(err, ErrSurfaceLost) {
		t.Fatalf("Blit: %v", err)
	}
	if w.Blits() != 0 {
		t.Fatal("failed blit was counted")
	}
}

func TestHeadlessDestroy(t *testing.T) {
	w := NewHeadlessWindow(WindowConfig{Title: "a", Hz: 1000})
	if err := w.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := w.Destroy(); err != nil {
		t.Fatalf("second Destroy: %v", err)
	}
	w.SetTitle("b")
	if w.Title() != "a" {
		t.Fatalf("title changed after destroy: %q", w.Title())
	}
	if _, err := w.PollEvents(); !errors.Is(err, ErrPlatform) {
		t.Fatalf("PollEvents after destroy: %v", err)
	}
}

func TestHeadlessPacedBlitAfterDestroy(t *testing.T) {
	w := NewHeadlessWindow(WindowConfig{Width: 1, Height: 1, Hz: 1})
	if err := w.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- w.Blit(Frame{}) }()
	select {
	case err := <-errc:
		if !errors.Is(err, ErrPlatform) {
			t.Fatalf("Blit after destroy: %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Blit after destroy did not return")
	}
}

func TestHeadlessHighHz(t *testing.T) {
	w := NewHeadlessWindow(WindowConfig{Width: 1, Height: 1, Hz: 2_000_000_000, Frames: 1})
	defer w.Destroy()
	if err := w.Blit(Frame{}); err != nil {
		t.Fatalf("Blit: %v", err)
	}
}

func TestFrameInterval(t *testing.T) {
	for _, tc := range []struct {
		hz   int
		want time.Duration
	}{
		{60, time.Second / 60},
		{MaxHz, time.Nanosecond},
		{2 * MaxHz, time.Nanosecond},
	} {
		if got := FrameInterval(tc.hz); got != tc.want {
			t.Fatalf("FrameInterval(%d) = %v, want %v", tc.hz, got, tc.want)
		}
	}
}

func TestOpen(t *testing.T) {
	w, err := Open(BackendHeadless, WindowConfig{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	hw, ok := w.(*HeadlessWindow)
	if !ok {
		t.Fatalf("Open returned %T", w)
	}
	if hw.Title() != DefaultTitle {
		t.Fatalf("default title = %q", hw.Title())
	}
	if width, height := hw.Size(); width != DefaultWidth || height != DefaultHeight {
		t.Fatalf("default size = %dx%d", width, height)
	}
	if _, err := Open("framebuffer-console", WindowConfig{}); !errors.Is(err, ErrPlatform) {
		t.Fatalf("unknown backend: %v", err)
	}
}
