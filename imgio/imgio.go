// Package imgio decodes and encodes image files.
package imgio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"code.cloudfoundry.org/bytefmt"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Load decodes the image at path. The returned name is the format reported
// by the decoder.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", path, err)
	}

	slog.Debug("loaded", "file", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, format, nil
}

// FormatFor maps the extension of path to an output format.
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".gif":
		return "gif", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	case "":
		return "", fmt.Errorf("no file extension in %q to infer the output format", path)
	default:
		return "", fmt.Errorf("unsupported output format: %s", ext)
	}
}

// Save encodes img into path using the format implied by its extension.
// The data goes to a temporary file in the same directory which is renamed
// over path only once fully written.
func Save(img image.Image, path string) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	destDir := filepath.Dir(path)
	if err = os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", destDir, err)
	}

	outFile, err := os.CreateTemp(destDir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
			return
		}

		if info, statErr := os.Stat(path); statErr == nil {
			slog.Info("saved", "file", path, "format", format, "size", bytefmt.ByteSize(uint64(info.Size())))
		}
	}()

	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set permissions on temporary destination %q: %w", outFile.Name(), err)
	}

	if err = encode(outFile, img, format); err != nil {
		return fmt.Errorf("could not encode %q: %w", path, err)
	}

	canRename = true
	return nil
}

func encode(f *os.File, img image.Image, format string) error {
	switch format {
	case "gif":
		return gif.Encode(f, img, nil)
	case "jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(f, img)
	case "bmp":
		return bmp.Encode(f, img)
	case "tiff":
		return tiff.Encode(f, img, nil)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
