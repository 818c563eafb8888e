package transform

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"picfx/imgio"

	"github.com/alecthomas/kong"
)

type IOParams struct {
	Infile  string `arg:"" help:"Input image file" type:"existingfile"`
	Outfile string `arg:"" help:"Output image file, format inferred from the extension" default:"output.png" optional:""`
}

func (p *IOParams) Validate(kctx *kong.Context) error {
	_, err := imgio.FormatFor(p.Outfile)
	return err
}

// process loads Infile, runs op on it and saves the result to Outfile.
func (p *IOParams) process(op string, fn func(*slog.Logger, image.Image) (image.Image, error)) error {
	logger := slog.Default().With("op", op, "file", p.Infile)

	img, format, err := imgio.Load(p.Infile)
	if err != nil {
		return err
	}
	logger.Info("processing", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	if img, err = fn(logger, img); err != nil {
		return fmt.Errorf("could not %s %q: %w", op, p.Infile, err)
	}

	return imgio.Save(img, p.Outfile)
}

type BlurCmd struct {
	IOParams
	Sigma float32 `help:"Blur amount, standard deviation of the Gaussian kernel" default:"3.0"`
}

func (c *BlurCmd) Run() error {
	return c.process("blur", func(logger *slog.Logger, img image.Image) (image.Image, error) {
		logger.Debug("blurring", "sigma", c.Sigma)
		return Blur(img, c.Sigma), nil
	})
}

type BrightenCmd struct {
	IOParams
	Amount int `help:"Value added to every color channel, negative to darken" default:"10"`
}

func (c *BrightenCmd) Run() error {
	return c.process("brighten", func(logger *slog.Logger, img image.Image) (image.Image, error) {
		logger.Debug("brightening", "amount", c.Amount)
		return Brighten(img, c.Amount), nil
	})
}

type CropCmd struct {
	IOParams
	X      int `help:"Left edge of the crop area" default:"0"`
	Y      int `help:"Top edge of the crop area" default:"0"`
	Width  int `help:"Width of the crop area" required:""`
	Height int `help:"Height of the crop area" required:""`
}

func (c *CropCmd) Validate(kctx *kong.Context) error {
	switch {
	case c.X < 0 || c.Y < 0:
		return fmt.Errorf("invalid crop origin: %d,%d", c.X, c.Y)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid crop size: %dx%d", c.Width, c.Height)
	}
	return c.IOParams.Validate(kctx)
}

func (c *CropCmd) Run() error {
	return c.process("crop", func(logger *slog.Logger, img image.Image) (image.Image, error) {
		origin := img.Bounds().Min.Add(image.Pt(c.X, c.Y))
		rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(c.Width, c.Height))}
		logger.Debug("cropping", "rect", rect)
		return Crop(img, rect)
	})
}

type RotateCmd struct {
	IOParams
	Degrees int `help:"Clockwise rotation: 90, 180 or 270" default:"90"`
}

func (c *RotateCmd) Validate(kctx *kong.Context) error {
	switch c.Degrees {
	case 90, 180, 270:
	default:
		return fmt.Errorf("invalid rotation: %d, must be 90, 180 or 270", c.Degrees)
	}
	return c.IOParams.Validate(kctx)
}

func (c *RotateCmd) Run() error {
	return c.process("rotate", func(logger *slog.Logger, img image.Image) (image.Image, error) {
		logger.Debug("rotating", "degrees", c.Degrees)
		return Rotate(img, c.Degrees)
	})
}

type InvertCmd struct {
	IOParams
}

func (c *InvertCmd) Run() error {
	return c.process("invert", func(_ *slog.Logger, img image.Image) (image.Image, error) {
		return Invert(img), nil
	})
}

type GrayscaleCmd struct {
	IOParams
}

func (c *GrayscaleCmd) Run() error {
	return c.process("grayscale", func(_ *slog.Logger, img image.Image) (image.Image, error) {
		return Grayscale(img), nil
	})
}

type ResizeCmd struct {
	IOParams
	Width     int         `help:"Max width, 0 to keep the source width" group:"resize"`
	Height    int         `help:"Max height, 0 to keep the source height" group:"resize"`
	Crop      bool        `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill      string      `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
	FillColor color.Color `kong:"-"`
}

func (c *ResizeCmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid resize width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid resize height: %d", c.Height)
	case c.Width == 0 && c.Height == 0:
		return fmt.Errorf("no resize dimensions given")
	}

	if !c.Crop && c.Fill != "" {
		var err error
		if c.FillColor, err = ParseHexColor(c.Fill); err != nil {
			return err
		}
	}
	return c.IOParams.Validate(kctx)
}

func (c *ResizeCmd) Run() error {
	return c.process("resize", func(logger *slog.Logger, img image.Image) (image.Image, error) {
		return Resize(logger, img, c.Width, c.Height, c.Crop, c.FillColor)
	})
}

type GenerateCmd struct {
	Outfile   string      `arg:"" help:"Output image file, format inferred from the extension" default:"output.png" optional:""`
	Width     int         `help:"Image width" default:"800"`
	Height    int         `help:"Image height" default:"800"`
	Color     string      `help:"Fill color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA)" default:"#000"`
	To        string      `help:"If given, fade horizontally from --color to this color"`
	FromColor color.Color `kong:"-"`
	ToColor   color.Color `kong:"-"`
}

func (c *GenerateCmd) Validate(kctx *kong.Context) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size: %dx%d", c.Width, c.Height)
	}

	var err error
	if c.FromColor, err = ParseHexColor(c.Color); err != nil {
		return err
	}
	if c.To != "" {
		if c.ToColor, err = ParseHexColor(c.To); err != nil {
			return err
		}
	}

	_, err = imgio.FormatFor(c.Outfile)
	return err
}

func (c *GenerateCmd) Run() error {
	slog.Info("generating", "width", c.Width, "height", c.Height, "color", c.Color, "to", c.To)
	return imgio.Save(Generate(c.Width, c.Height, c.FromColor, c.ToColor), c.Outfile)
}
