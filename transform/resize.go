package transform

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Resize scales img to fit width x height, keeping its aspect ratio. A zero
// dimension keeps the source one. With crop the source is trimmed to the
// destination ratio; otherwise, if fill is set, the destination keeps the
// requested size and the margins are painted with fill.
func Resize(logger *slog.Logger, img image.Image, width, height int, crop bool, fill color.Color) (image.Image, error) {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, fmt.Errorf("invalid resize dimensions: %dx%d", width, height)
	}

	src := img.Bounds()
	if src.Empty() {
		return nil, fmt.Errorf("cannot resize empty image")
	}
	srcW, srcH := float64(src.Dx()), float64(src.Dy())

	destW, destH := float64(width), float64(height)
	if destW == 0 {
		destW = srcW
	}
	if destH == 0 {
		destH = srcH
	}

	if (srcW == destW) && (srcH == destH) {
		return img, nil
	}

	canvas := image.Rect(0, 0, int(destW), int(destH))
	target := canvas

	srcAR, destAR := srcW/srcH, destW/destH
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((srcH - srcW/destAR) / 2))
		src.Min.Y += dh
		src.Max.Y -= dh
	case crop && srcAR > destAR:
		dw := int(math.Round((srcW - srcH*destAR) / 2))
		src.Min.X += dw
		src.Max.X -= dw
	case !crop && srcAR < destAR:
		w := int(math.Round(destH * srcAR))
		if fill == nil {
			canvas.Max.X = w
			target.Max.X = w
		} else {
			margin := (canvas.Dx() - w) / 2
			target.Min.X += margin
			target.Max.X = target.Min.X + w
		}
	case !crop && srcAR > destAR:
		h := int(math.Round(destW / srcAR))
		if fill == nil {
			canvas.Max.Y = h
			target.Max.Y = h
		} else {
			margin := (canvas.Dy() - h) / 2
			target.Min.Y += margin
			target.Max.Y = target.Min.Y + h
		}
	}

	logger.Info("resizing", "width", target.Dx(), "height", target.Dy())
	dest := image.NewRGBA(canvas)
	if fill != nil && target != canvas {
		draw.Draw(dest, canvas, image.NewUniform(fill), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dest, target, img, src, draw.Over, nil)

	return dest, nil
}
