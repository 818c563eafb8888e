package fractal

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type paramsFile struct {
	Width         *int     `toml:"width"`
	Height        *int     `toml:"height"`
	MaxIterations *int     `toml:"max_iterations"`
	Escape        *float32 `toml:"escape_radius"`
	Span          *float32 `toml:"span"`
	Offset        *float32 `toml:"offset"`
	Gradient      *float32 `toml:"gradient"`
	CRe           *float32 `toml:"c_re"`
	CIm           *float32 `toml:"c_im"`
}

// LoadParams overlays the keys present in the TOML file at path onto base.
func LoadParams(path string, base Params) (Params, error) {
	var f paramsFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return base, fmt.Errorf("could not read fractal parameters %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("unknown keys in fractal parameters %q: %s", path, strings.Join(keys, ", "))
	}

	p := base
	set(&p.Width, f.Width)
	set(&p.Height, f.Height)
	set(&p.MaxIterations, f.MaxIterations)
	set(&p.Escape, f.Escape)
	set(&p.Span, f.Span)
	set(&p.Offset, f.Offset)
	set(&p.Gradient, f.Gradient)

	re, im := real(p.C), imag(p.C)
	set(&re, f.CRe)
	set(&im, f.CIm)
	p.C = complex(re, im)

	return p, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
