package fractal

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"picfx/imgio"
	"picfx/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Outfile       string `arg:"" help:"Output image file, format inferred from the extension" default:"output.png" optional:""`
	Params        string `help:"TOML file with fractal parameters, applied before the flags below" type:"existingfile"`
	Width         int    `help:"Image width, 0 to keep the default" group:"fractal"`
	Height        int    `help:"Image height, 0 to keep the default" group:"fractal"`
	MaxIterations int    `help:"Iteration cap (at most 255), 0 to keep the default" group:"fractal"`
	C             string `help:"Julia constant as a complex literal, e.g. -0.4+0.6i" group:"fractal"`
	Resolved      Params `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	p := DefaultParams()
	if c.Params != "" {
		var err error
		if p, err = LoadParams(c.Params, p); err != nil {
			return err
		}
	}

	if c.Width != 0 {
		p.Width = c.Width
	}
	if c.Height != 0 {
		p.Height = c.Height
	}
	if c.MaxIterations != 0 {
		p.MaxIterations = c.MaxIterations
	}
	if c.C != "" {
		v, err := strconv.ParseComplex(c.C, 64)
		if err != nil {
			return fmt.Errorf("invalid complex constant %q: %w", c.C, err)
		}
		p.C = complex64(v)
	}

	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := imgio.FormatFor(c.Outfile); err != nil {
		return err
	}

	c.Resolved = p
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	p := c.Resolved
	slog.Info("rendering fractal", "width", p.Width, "height", p.Height, "c", p.C,
		"max_iterations", p.MaxIterations, "workers", pool.Workers())

	start := time.Now()
	img := RenderParallel(p, pool)
	slog.Debug("rendered", "elapsed", time.Since(start))

	return imgio.Save(img, c.Outfile)
}
