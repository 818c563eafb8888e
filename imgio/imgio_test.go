package imgio

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := range 4 {
		for x := range 6 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(40 * x), G: uint8(60 * y), B: 7, A: 0xFF})
		}
	}
	return img
}

func TestFormatFor(t *testing.T) {
	for _, tc := range []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "out.png", want: "png"},
		{path: "dir/OUT.PNG", want: "png"},
		{path: "a.jpg", want: "jpeg"},
		{path: "a.jpeg", want: "jpeg"},
		{path: "a.gif", want: "gif"},
		{path: "a.bmp", want: "bmp"},
		{path: "a.tif", want: "tiff"},
		{path: "a.tiff", want: "tiff"},
		{path: "a.webp", wantErr: true},
		{path: "noext", wantErr: true},
	} {
		got, err := FormatFor(tc.path)
		if (err != nil) != tc.wantErr {
			t.Errorf("FormatFor(%q): error %v, want error %v", tc.path, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("FormatFor(%q): got %q want %q", tc.path, got, tc.want)
		}
	}
}

func TestSaveLoadLossless(t *testing.T) {
	src := testImage()

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := Save(src, path); err != nil {
				t.Fatalf("Save: %v", err)
			}

			img, _, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds: got %v want %v", img.Bounds(), src.Bounds())
			}
			for y := range 4 {
				for x := range 6 {
					got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
					if want := src.RGBAAt(x, y); got != want {
						t.Fatalf("pixel (%d,%d): got %v want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestSaveLossy(t *testing.T) {
	for _, tc := range []struct {
		name   string
		format string
	}{
		{"out.jpg", "jpeg"},
		{"out.gif", "gif"},
	} {
		path := filepath.Join(t.TempDir(), tc.name)
		if err := Save(testImage(), path); err != nil {
			t.Fatalf("Save(%s): %v", tc.name, err)
		}
		img, format, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", tc.name, err)
		}
		if format != tc.format {
			t.Errorf("Load(%s) format: got %q want %q", tc.name, format, tc.format)
		}
		if img.Bounds().Size() != image.Pt(6, 4) {
			t.Errorf("Load(%s) size: got %v", tc.name, img.Bounds().Size())
		}
	}
}

func TestSaveOverwritesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Save(testImage(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("destination is not a PNG file")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSaveIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(testImage(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Errorf("mode: got %v want %v", got, os.FileMode(0o644))
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	if err := Save(testImage(), filepath.Join(dir, "out.webp")); err == nil {
		t.Error("expected error for webp output")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("files created for unsupported format: %v", entries)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}
