// Package fractal renders an escape-time Julia set over a red/blue
// coordinate gradient.
package fractal

import (
	"fmt"
	"image"
	"math"

	"picfx/parallel"
)

// Params describes the raster and the viewing window of the complex plane.
type Params struct {
	Width         int
	Height        int
	C             complex64 // constant added on every iteration
	MaxIterations int       // iteration cap, also the largest green value
	Escape        float32   // magnitude above which a point has escaped
	Span          float32   // extent of the window on both axes
	Offset        float32   // subtracted after scaling, centers the window
	Gradient      float32   // background channel per pixel of distance
}

func DefaultParams() Params {
	return Params{
		Width:         800,
		Height:        800,
		C:             complex(-0.4, 0.6),
		MaxIterations: 255,
		Escape:        2.0,
		Span:          3.0,
		Offset:        1.5,
		Gradient:      0.3,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("invalid width: %d", p.Width)
	case p.Height <= 0:
		return fmt.Errorf("invalid height: %d", p.Height)
	case p.MaxIterations < 0 || p.MaxIterations > math.MaxUint8:
		return fmt.Errorf("max iterations out of range [0, %d]: %d", math.MaxUint8, p.MaxIterations)
	case !(p.Escape > 0):
		return fmt.Errorf("invalid escape radius: %v", p.Escape)
	case !(p.Span > 0):
		return fmt.Errorf("invalid span: %v", p.Span)
	}
	return nil
}

// Render computes the whole raster on the calling goroutine.
func Render(p Params) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	p.renderRows(img, 0, p.Height)
	return img
}

// RenderParallel splits the rows into bands and renders them on pool. The
// result is identical to Render.
func RenderParallel(p Params, pool *parallel.Pool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	pool.Range(p.Height, func(start, end int) {
		p.renderRows(img, start, end)
	})
	return img
}

// renderRows writes rows [y0, y1). Bands never overlap, so concurrent calls
// on distinct ranges need no locking.
func (p Params) renderRows(img *image.RGBA, y0, y1 int) {
	for y := y0; y < y1; y++ {
		i := img.PixOffset(0, y)
		for x := 0; x < p.Width; x++ {
			r, g, b := p.pixel(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xFF
			i += 4
		}
	}
}

func (p Params) pixel(x, y int) (r, g, b uint8) {
	r = channel(float32(p.Gradient * float32(x)))
	b = channel(float32(p.Gradient * float32(y)))
	g = uint8(min(p.escape(p.sample(x, y)), math.MaxUint8))
	return r, g, b
}

// sample maps a pixel to the complex plane. The real part comes from the
// row and the imaginary part from the column.
func (p Params) sample(x, y int) (cx, cy float32) {
	scaleX := p.Span / float32(p.Width)
	scaleY := p.Span / float32(p.Height)
	cx = float32(float32(y)*scaleX) - p.Offset
	cy = float32(float32(x)*scaleY) - p.Offset
	return cx, cy
}

// escape iterates z = z*z + C from z = zr + zi*i and returns the number of
// steps taken before |z| exceeds Escape or the cap is reached. Every
// intermediate is rounded to float32 so results do not depend on FMA.
func (p Params) escape(zr, zi float32) int {
	cr, ci := real(p.C), imag(p.C)

	n := 0
	for n < p.MaxIterations && norm(zr, zi) <= p.Escape {
		re := float32(zr*zr) - float32(zi*zi)
		im := float32(zr*zi) + float32(zi*zr)
		zr, zi = re+cr, im+ci
		n++
	}
	return n
}

func norm(re, im float32) float32 {
	return float32(math.Hypot(float64(re), float64(im)))
}

// channel truncates toward zero and saturates to [0, 255]; NaN maps to 0.
func channel(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}
