package hal

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var errSurfaceReleased = errors.New("surface released")

// Surface is the drawable backbuffer bound to a window.
type Surface interface {
	// SetClearColor stores the color used by the next BeginFrame.
	SetClearColor(r, g, b uint8)
	// BeginFrame clears the backbuffer to the stored color.
	BeginFrame()
	// Present pushes the backbuffer to the window.
	Present() error
	// Resize rebuilds the backing storage, discarding its contents.
	Resize(width, height int) error
	// Release frees the backing storage. Calls after the first are no-ops.
	Release()
}

// Framebuffer is a raster Surface whose storage comes from an Allocator.
type Framebuffer struct {
	win    Window
	alloc  Allocator
	format PixelFormat
	width  int
	height int
	stride int
	buf    []byte
	clear  [3]uint8

	released bool
}

// Bind allocates a backbuffer matching the window's current size.
func Bind(w Window, format PixelFormat, alloc Allocator) (*Framebuffer, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: bind: nil window", ErrPlatform)
	}
	if format.BytesPerPixel() == 0 {
		return nil, fmt.Errorf("%w: bind: unsupported pixel format %d", ErrPlatform, format)
	}
	if alloc == nil {
		alloc = HeapAllocator()
	}
	f := &Framebuffer{win: w, alloc: alloc, format: format}
	width, height := w.Size()
	if err := f.allocate(width, height); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Framebuffer) allocate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid surface size %dx%d", ErrPlatform, width, height)
	}
	stride := width * f.format.BytesPerPixel()
	buf, err := f.alloc.Alloc(stride * height)
	if err != nil {
		return fmt.Errorf("%w: surface storage: %v", ErrPlatform, err)
	}
	f.width = width
	f.height = height
	f.stride = stride
	f.buf = buf
	return nil
}

func (f *Framebuffer) Width() int          { return f.width }
func (f *Framebuffer) Height() int         { return f.height }
func (f *Framebuffer) Format() PixelFormat { return f.format }
func (f *Framebuffer) StrideBytes() int    { return f.stride }
func (f *Framebuffer) Buffer() []byte      { return f.buf }

func (f *Framebuffer) SetClearColor(r, g, b uint8) {
	f.clear = [3]uint8{r, g, b}
}

// ClearColor returns the stored clear color.
func (f *Framebuffer) ClearColor() (r, g, b uint8) {
	return f.clear[0], f.clear[1], f.clear[2]
}

func (f *Framebuffer) BeginFrame() {
	if f.released || len(f.buf) == 0 {
		return
	}
	bpp := f.format.BytesPerPixel()
	encodePixel(f.format, f.buf, f.clear[0], f.clear[1], f.clear[2])
	// Fill by doubling the already cleared prefix.
	for n := bpp; n < len(f.buf); n *= 2 {
		copy(f.buf[n:], f.buf[:n])
	}
}

func (f *Framebuffer) Present() error {
	if f.released {
		return fmt.Errorf("%w: present: %v", ErrPlatform, errSurfaceReleased)
	}
	return f.win.Blit(f.Frame())
}

func (f *Framebuffer) Resize(width, height int) error {
	if f.released {
		return fmt.Errorf("%w: resize: %v", ErrPlatform, errSurfaceReleased)
	}
	if width == f.width && height == f.height {
		return nil
	}
	old := f.buf
	if err := f.allocate(width, height); err != nil {
		return err
	}
	f.alloc.Free(old)
	return nil
}

func (f *Framebuffer) Release() {
	if f.released {
		return
	}
	f.released = true
	f.alloc.Free(f.buf)
	f.buf = nil
}

// Frame returns a view of the current backbuffer contents.
func (f *Framebuffer) Frame() Frame {
	return Frame{Width: f.width, Height: f.height, Stride: f.stride, Format: f.format, Pix: f.buf}
}

// At returns the pixel at x, y.
func (f *Framebuffer) At(x, y int) color.RGBA {
	return f.Frame().At(x, y)
}

// SetPixel writes an opaque pixel; out of range writes are dropped.
func (f *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height || f.released {
		return
	}
	bpp := f.format.BytesPerPixel()
	off := y*f.stride + x*bpp
	encodePixel(f.format, f.buf[off:off+bpp], c.R, c.G, c.B)
}

// FillRect fills the rectangle clipped to the backbuffer.
func (f *Framebuffer) FillRect(x, y, width, height int, c color.RGBA) {
	if f.released {
		return
	}
	x0 := clampInt(x, 0, f.width)
	y0 := clampInt(y, 0, f.height)
	x1 := clampInt(x+width, 0, f.width)
	y1 := clampInt(y+height, 0, f.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	bpp := f.format.BytesPerPixel()
	for py := y0; py < y1; py++ {
		row := py * f.stride
		for px := x0; px < x1; px++ {
			off := row + px*bpp
			encodePixel(f.format, f.buf[off:off+bpp], c.R, c.G, c.B)
		}
	}
}

// RGBA returns a copy of the backbuffer as an image.
func (f *Framebuffer) RGBA() *image.RGBA {
	return f.Frame().ToRGBA(nil)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
