package renderer

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"tangerine/hal"
)

// canvas is the raster access a surface offers to draw helpers.
type canvas interface {
	Width() int
	Height() int
	SetPixel(x, y int, c color.RGBA)
	FillRect(x, y, width, height int, c color.RGBA)
}

var _ canvas = (*hal.Framebuffer)(nil)

// Font is the face used by DrawText.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

func (r *Renderer) canvas() (canvas, error) {
	if !r.inFrame {
		return nil, ErrNotRunning
	}
	c, ok := r.surface.(canvas)
	if !ok {
		return nil, fmt.Errorf("renderer: surface %T has no raster access: %w", r.surface, hal.ErrNotImplemented)
	}
	return c, nil
}

// SetPixel writes one pixel of the current frame.
func (r *Renderer) SetPixel(x, y int, c color.RGBA) error {
	cv, err := r.canvas()
	if err != nil {
		return err
	}
	cv.SetPixel(x, y, c)
	return nil
}

// FillRect fills a rectangle of the current frame, clipped to the surface.
func (r *Renderer) FillRect(x, y, width, height int, c color.RGBA) error {
	cv, err := r.canvas()
	if err != nil {
		return err
	}
	cv.FillRect(x, y, width, height, c)
	return nil
}

// DrawText draws s with its baseline at y.
func (r *Renderer) DrawText(x, y int, s string, c color.RGBA) error {
	cv, err := r.canvas()
	if err != nil {
		return err
	}
	tinyfont.WriteLine(displayer{cv}, Font, int16(x), int16(y), s, c)
	return nil
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

// displayer exposes a canvas as a tinyfont target.
type displayer struct {
	c canvas
}

var _ drivers.Displayer = displayer{}

func (d displayer) Size() (x, y int16) {
	return int16(d.c.Width()), int16(d.c.Height())
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.c.SetPixel(int(x), int(y), c)
}

func (d displayer) Display() error { return nil }
