package renderer

import (
	"fmt"
	"log/slog"

	"tangerine/hal"
)

// SurfaceBinder attaches a Surface to a freshly opened window.
type SurfaceBinder func(w hal.Window, format hal.PixelFormat, alloc hal.Allocator) (hal.Surface, error)

// Option configures New.
type Option func(*options) error

type options struct {
	window  hal.Window
	backend string
	bind    SurfaceBinder
	alloc   hal.Allocator
	logger  *slog.Logger
	format  hal.PixelFormat
	title   string
	bg      [3]uint8

	width, height, scale, hz int
	frames                   uint64
}

func defaultOptions() options {
	return options{
		backend: hal.BackendWindow,
		bind:    bindFramebuffer,
		alloc:   hal.HeapAllocator(),
		logger:  slog.Default(),
		format:  hal.PixelFormatRGBA8888,
		title:   hal.DefaultTitle,
		width:   hal.DefaultWidth,
		height:  hal.DefaultHeight,
		scale:   1,
	}
}

func bindFramebuffer(w hal.Window, format hal.PixelFormat, alloc hal.Allocator) (hal.Surface, error) {
	return hal.Bind(w, format, alloc)
}

// WithWindow uses an already opened window instead of opening a backend.
// The Renderer takes ownership and destroys it.
func WithWindow(w hal.Window) Option {
	return func(o *options) error {
		if w == nil {
			return fmt.Errorf("%w: nil window", ErrInvalidArgument)
		}
		o.window = w
		return nil
	}
}

// WithBackend selects the window backend opened by New.
func WithBackend(name string) Option {
	return func(o *options) error {
		o.backend = name
		return nil
	}
}

// WithSurfaceBinder replaces the raster framebuffer surface.
func WithSurfaceBinder(bind SurfaceBinder) Option {
	return func(o *options) error {
		if bind == nil {
			return fmt.Errorf("%w: nil surface binder", ErrInvalidArgument)
		}
		o.bind = bind
		return nil
	}
}

// WithAllocator sets the allocation strategy for surface storage.
func WithAllocator(a hal.Allocator) Option {
	return func(o *options) error {
		if a == nil {
			return fmt.Errorf("%w: nil allocator", ErrInvalidArgument)
		}
		o.alloc = a
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.logger = l
		}
		return nil
	}
}

// WithSize sets the initial logical window size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height)
		}
		o.width, o.height = width, height
		return nil
	}
}

func WithScale(scale int) Option {
	return func(o *options) error {
		if scale <= 0 {
			return fmt.Errorf("%w: scale %d", ErrInvalidArgument, scale)
		}
		o.scale = scale
		return nil
	}
}

// WithPacing sets the headless frame rate and frame limit.
func WithPacing(hz int, frames uint64) Option {
	return func(o *options) error {
		if hz < 0 || hz > hal.MaxHz {
			return fmt.Errorf("%w: hz %d", ErrInvalidArgument, hz)
		}
		o.hz, o.frames = hz, frames
		return nil
	}
}

func WithPixelFormat(f hal.PixelFormat) Option {
	return func(o *options) error {
		if f.BytesPerPixel() == 0 {
			return fmt.Errorf("%w: pixel format %d", ErrInvalidArgument, f)
		}
		o.format = f
		return nil
	}
}

func WithTitle(title string) Option {
	return func(o *options) error {
		o.title = title
		return nil
	}
}

func WithBackgroundColor(r, g, b uint8) Option {
	return func(o *options) error {
		o.bg = [3]uint8{r, g, b}
		return nil
	}
}

// WithConfig applies every field set in c.
func WithConfig(c Config) Option {
	return func(o *options) error {
		opts, err := c.Options()
		if err != nil {
			return err
		}
		for _, opt := range opts {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}
