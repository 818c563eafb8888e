package main

import (
	"log/slog"
	"os"

	"picfx/fractal"
	"picfx/parallel"
	"picfx/transform"

	"github.com/alecthomas/kong"
)

type CLI struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Workers  int    `help:"Number of parallel workers, 0 for one per CPU" default:"0"`

	Blur      transform.BlurCmd      `cmd:"" help:"Blur the image"`
	Brighten  transform.BrightenCmd  `cmd:"" help:"Make the image brighter (or darker)"`
	Crop      transform.CropCmd      `cmd:"" help:"Crop the image"`
	Rotate    transform.RotateCmd    `cmd:"" help:"Rotate the image clockwise"`
	Invert    transform.InvertCmd    `cmd:"" help:"Invert the image colors"`
	Grayscale transform.GrayscaleCmd `cmd:"" help:"Remove color from the image"`
	Resize    transform.ResizeCmd    `cmd:"" help:"Resize the image"`
	Generate  transform.GenerateCmd  `cmd:"" help:"Generate a solid color or gradient image"`
	Fractal   fractal.CLICmd         `cmd:"" help:"Render a Julia set fractal"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("picfx"),
		kong.Description("Apply a single transformation to an image file."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cli.LogLevel),
	})))

	pool := parallel.Start(cli.Workers)
	err = kctx.Run(pool)
	pool.Close()
	if err != nil {
		slog.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
