// Package transform applies single image transformations: blur, brighten,
// crop, rotate, invert, grayscale and resize.
package transform

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
)

func apply(img image.Image, filters ...gift.Filter) *image.RGBA {
	g := gift.New(filters...)
	dest := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dest, img)
	return dest
}

// Blur applies a Gaussian blur. A non-positive sigma copies the image.
func Blur(img image.Image, sigma float32) image.Image {
	if sigma <= 0 {
		return apply(img)
	}
	return apply(img, gift.GaussianBlur(sigma))
}

// Brighten adds amount (in 8-bit steps) to every color channel, clamping
// the result. Alpha is left as is.
func Brighten(img image.Image, amount int) image.Image {
	delta := float32(amount) / 255
	return apply(img, gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return clamp01(r0 + delta), clamp01(g0 + delta), clamp01(b0 + delta), a0
	}))
}

// Crop keeps the part of img inside rect, given in the image's coordinate
// space. rect is clipped to the image bounds.
func Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	if rect = rect.Intersect(img.Bounds()); rect.Empty() {
		return nil, fmt.Errorf("crop area outside of image bounds %v", img.Bounds())
	}
	return apply(img, gift.Crop(rect)), nil
}

// Rotate turns img clockwise by a multiple of 90 degrees.
func Rotate(img image.Image, degrees int) (image.Image, error) {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return img, nil
	case 90:
		return apply(img, gift.Rotate270()), nil
	case 180:
		return apply(img, gift.Rotate180()), nil
	case 270:
		return apply(img, gift.Rotate90()), nil
	}
	return nil, fmt.Errorf("unsupported rotation: %d degrees, must be a multiple of 90", degrees)
}

func Invert(img image.Image) image.Image {
	return apply(img, gift.Invert())
}

func Grayscale(img image.Image) image.Image {
	return apply(img, gift.Grayscale())
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
