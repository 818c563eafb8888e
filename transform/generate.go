package transform

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Generate creates a width x height image. With to == nil it is filled with
// from; otherwise it fades from left to right between the two colors.
func Generate(width, height int, from, to color.Color) *image.RGBA {
	rect := image.Rect(0, 0, width, height)
	dest := image.NewRGBA(rect)
	if to == nil {
		draw.Draw(dest, rect, image.NewUniform(from), image.Point{}, draw.Src)
		return dest
	}

	c0 := color.NRGBAModel.Convert(from).(color.NRGBA)
	c1 := color.NRGBAModel.Convert(to).(color.NRGBA)
	for x := range width {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		col := color.NRGBA{
			R: lerp(c0.R, c1.R, t),
			G: lerp(c0.G, c1.G, t),
			B: lerp(c0.B, c1.B, t),
			A: lerp(c0.A, c1.A, t),
		}
		draw.Draw(dest, image.Rect(x, 0, x+1, height), image.NewUniform(col), image.Point{}, draw.Src)
	}
	return dest
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// ParseHexColor reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (color.Color, error) {
	var c color.NRGBA
	var n int
	var err error
	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xFF
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return nil, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	if err != nil {
		return nil, fmt.Errorf("could not read color %q: %w", s, err)
	} else if n < 3 {
		return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
	}
	return c, nil
}
