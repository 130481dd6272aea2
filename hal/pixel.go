package hal

import (
	"image"
	"image/color"
)

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// encodePixel writes one opaque pixel in format f to dst.
func encodePixel(f PixelFormat, dst []byte, r, g, b uint8) {
	switch f {
	case PixelFormatRGBA8888:
		dst[0] = r
		dst[1] = g
		dst[2] = b
		dst[3] = 0xFF
	case PixelFormatRGB565:
		p := rgb565(r, g, b)
		dst[0] = byte(p)
		dst[1] = byte(p >> 8)
	}
}

func decodePixel(f PixelFormat, src []byte) color.RGBA {
	switch f {
	case PixelFormatRGBA8888:
		return color.RGBA{R: src[0], G: src[1], B: src[2], A: src[3]}
	case PixelFormatRGB565:
		r, g, b := rgb888From565(uint16(src[0]) | uint16(src[1])<<8)
		return color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return color.RGBA{}
}

// At returns the pixel at x, y; out of range reads are transparent black.
func (f Frame) At(x, y int) color.RGBA {
	bpp := f.Format.BytesPerPixel()
	if bpp == 0 || x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	off := y*f.Stride + x*bpp
	if off+bpp > len(f.Pix) {
		return color.RGBA{}
	}
	return decodePixel(f.Format, f.Pix[off:off+bpp])
}

// ToRGBA converts the frame into dst, reallocating dst when its size
// differs. The returned image is the one that holds the pixels.
func (f Frame) ToRGBA(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != f.Width || dst.Bounds().Dy() != f.Height {
		dst = image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	}
	if f.Format == PixelFormatRGBA8888 && f.Stride == dst.Stride {
		copy(dst.Pix, f.Pix)
		return dst
	}
	for y := 0; y < f.Height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			j := x * 4
			row[j+0] = c.R
			row[j+1] = c.G
			row[j+2] = c.B
			row[j+3] = c.A
		}
	}
	return dst
}
