package hal

import (
	"errors"
	"log/slog"
	"time"
)

// ErrPlatform marks failures of the OS windowing or presentation layer.
var ErrPlatform = errors.New("platform error")

// ErrSurfaceLost is returned by Window.Blit when the window can no longer
// accept frames of the current size. The surface recovers by resizing.
var ErrSurfaceLost = errors.New("surface lost")

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
	// PixelFormatRGB565 is 16bpp little endian: rrrrrggggggbbbbb.
	PixelFormatRGB565
)

// BytesPerPixel returns the pixel size, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA8888:
		return 4
	case PixelFormatRGB565:
		return 2
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA8888:
		return "rgba8888"
	case PixelFormatRGB565:
		return "rgb565"
	}
	return "unknown"
}

// ParsePixelFormat maps a format name to a PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, bool) {
	switch s {
	case "", "rgba8888":
		return PixelFormatRGBA8888, true
	case "rgb565":
		return PixelFormatRGB565, true
	}
	return 0, false
}

// Events is the folded result of draining a window's event queue.
type Events struct {
	// CloseRequested reports a close or quit event since the last poll.
	CloseRequested bool
	// CursorX and CursorY hold the latest known pointer position in
	// window-local pixels. They stay at 0,0 until motion is observed.
	CursorX, CursorY uint32
	// Resized reports a size change since the last poll; Width and Height
	// always hold the current size.
	Resized       bool
	Width, Height int
}

// Frame is a read-only view of a backbuffer handed to Window.Blit.
type Frame struct {
	Width, Height int
	Stride        int
	Format        PixelFormat
	Pix           []byte
}

// Window owns a native window handle and its event queue.
type Window interface {
	// SetTitle updates the native title. It is a no-op after Destroy.
	SetTitle(title string)
	Size() (width, height int)
	// PollEvents drains pending events without blocking.
	PollEvents() (Events, error)
	// Blit pushes a frame to the screen.
	Blit(f Frame) error
	// Destroy releases the native handle. Calls after the first are no-ops.
	Destroy() error
}

// LoopOwner is implemented by windows whose toolkit owns the main loop.
// RunLoop calls step once per frame until it reports done or fails.
type LoopOwner interface {
	RunLoop(step func() (done bool, err error)) error
}

// WindowConfig holds the parameters used to open a window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Scale is the desktop window magnification of the logical size.
	Scale int
	// Hz paces headless presentation; 0 presents as fast as possible.
	Hz int
	// Frames closes a headless window after N presented frames (0 = never).
	Frames uint64
	Logger *slog.Logger
}

const (
	DefaultTitle  = "Hello, world!"
	DefaultWidth  = 320
	DefaultHeight = 240

	// MaxHz is the highest pacing rate with a non-zero frame interval.
	MaxHz = int(time.Second)
)

// FrameInterval returns the presentation interval for a positive hz,
// clamped to one nanosecond for rates above MaxHz.
func FrameInterval(hz int) time.Duration {
	d := time.Second / time.Duration(hz)
	if d <= 0 {
		return time.Nanosecond
	}
	return d
}

func (c WindowConfig) withDefaults() WindowConfig {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
