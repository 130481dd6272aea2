package hal

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, cols, rows int) (*TerminalWindow, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	w, err := NewTerminalWindowWithScreen(sim, WindowConfig{Title: "term"})
	if err != nil {
		t.Fatalf("NewTerminalWindowWithScreen: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(func() { w.Destroy() })
	return w, sim
}

func TestTerminalMouseAndClose(t *testing.T) {
	w, sim := newSimTerminal(t, 10, 5)

	if err := sim.PostEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	ev, err := w.PollEvents()
	if err != nil {
		t.Fatalf("PollEvents: %v", err)
	}
	if ev.CursorX != 3 || ev.CursorY != 4 {
		t.Fatalf("cursor = %d,%d, want 3,4", ev.CursorX, ev.CursorY)
	}
	if ev.CloseRequested {
		t.Fatal("unexpected close")
	}

	if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	ev, _ = w.PollEvents()
	if !ev.CloseRequested {
		t.Fatal("escape did not request close")
	}
}

func TestTerminalResize(t *testing.T) {
	w, sim := newSimTerminal(t, 10, 5)
	w.PollEvents()

	sim.PostEvent(tcell.NewEventResize(12, 6))
	ev, err := w.PollEvents()
	if err != nil {
		t.Fatalf("PollEvents: %v", err)
	}
	if !ev.Resized || ev.Width != 12 || ev.Height != 12 {
		t.Fatalf("events = %+v", ev)
	}
}

func TestTerminalBlitHalfBlocks(t *testing.T) {
	w, sim := newSimTerminal(t, 2, 1)

	// 2x2 frame: top row red, bottom row blue.
	f := Frame{Width: 2, Height: 2, Stride: 8, Format: PixelFormatRGBA8888, Pix: []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}}
	if err := w.Blit(f); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	for col := 0; col < 2; col++ {
		r, _, style, _ := sim.GetContent(col, 0)
		if r != upperHalf {
			t.Fatalf("cell %d rune = %q", col, r)
		}
		fg, bg, _ := style.Decompose()
		if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 255) {
			t.Fatalf("cell %d colors fg=%v bg=%v", col, fg, bg)
		}
	}
}

func TestTerminalBlitScalesFrame(t *testing.T) {
	w, sim := newSimTerminal(t, 4, 2)

	// A 1x1 green frame is scaled up to the full 4x4 pixel grid.
	f := Frame{Width: 1, Height: 1, Stride: 4, Format: PixelFormatRGBA8888, Pix: []byte{0, 255, 0, 255}}
	if err := w.Blit(f); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	_, _, style, _ := sim.GetContent(3, 1)
	fg, bg, _ := style.Decompose()
	green := tcell.NewRGBColor(0, 255, 0)
	if fg != green || bg != green {
		t.Fatalf("scaled cell fg=%v bg=%v", fg, bg)
	}
}

func TestTerminalDestroy(t *testing.T) {
	w, _ := newSimTerminal(t, 4, 2)
	if err := w.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := w.Destroy(); err != nil {
		t.Fatalf("second Destroy: %v", err)
	}
	if err := w.Blit(Frame{}); !errors.Is(err, ErrPlatform) {
		t.Fatalf("Blit after destroy: %v", err)
	}
}

func TestTerminalEmptyGrid(t *testing.T) {
	w, sim := newSimTerminal(t, 4, 2)
	sim.SetSize(0, 0)
	if err := w.Blit(Frame{}); !errors.Is(err, ErrPlatform) {
		t.Fatalf("Blit on empty grid: %v", err)
	}
}
