// Package render turns abstract symbols into PNG or SVG output. It is the
// presentation boundary: nothing here affects encoding correctness.
package render

import (
	"fmt"

	"github.com/glyphworks/symbology"
	"gopkg.in/yaml.v3"
)

// linearBarHeight is the bar height in modules used for linear symbols,
// which carry no intrinsic height of their own.
const linearBarHeight = 50

// Options configures symbol presentation. The YAML tags let CLI config
// files unmarshal directly into it.
type Options struct {
	// BoxSize is the edge length of one module in pixels.
	BoxSize int `yaml:"box_size"`

	// Border is the blank margin drawn around the symbol, in modules. It
	// is widened to the symbology's required quiet zone when smaller.
	Border int `yaml:"border"`

	// FillColor and BackColor accept a named color or #rgb/#rrggbb hex.
	FillColor string `yaml:"fill_color"`
	BackColor string `yaml:"back_color"`

	// Format selects the output encoding, "png" or "svg".
	Format string `yaml:"format"`

	// SymbologyOptions carries encode options alongside the presentation
	// settings, so one config file can drive a whole generation run.
	SymbologyOptions map[string]string `yaml:"symbology_options"`
}

// DefaultOptions returns the presentation defaults: 10 pixel modules, a
// 4 module border, black on white PNG output.
func DefaultOptions() Options {
	return Options{
		BoxSize:   10,
		Border:    4,
		FillColor: "black",
		BackColor: "white",
		Format:    "png",
	}
}

// ReadConfig unmarshals a YAML document over the defaults.
func ReadConfig(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("render: parse config: %w", err)
	}
	return opts, nil
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.BoxSize <= 0 {
		o.BoxSize = def.BoxSize
	}
	if o.Border < 0 {
		o.Border = def.Border
	}
	if o.FillColor == "" {
		o.FillColor = def.FillColor
	}
	if o.BackColor == "" {
		o.BackColor = def.BackColor
	}
	if o.Format == "" {
		o.Format = def.Format
	}
	return o
}

// Render produces the symbol in the format named by the options.
func Render(sym *symbology.Symbol, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	switch opts.Format {
	case "png":
		return PNG(sym, opts)
	case "svg":
		return SVG(sym, opts)
	default:
		return nil, fmt.Errorf("render: format %q: %w", opts.Format, symbology.ErrUnsupportedOption)
	}
}

// plane is the module-space view of a symbol: dimensions with the border
// applied and a set-module predicate.
type plane struct {
	width, height int
	isSet         func(x, y int) bool
}

func symbolPlane(sym *symbology.Symbol, border int) plane {
	if border < sym.QuietZone {
		border = sym.QuietZone
	}

	if sym.Kind == symbology.KindMatrix {
		grid := sym.Grid
		return plane{
			width:  grid.Width() + 2*border,
			height: grid.Height() + 2*border,
			isSet: func(x, y int) bool {
				x -= border
				y -= border
				return x >= 0 && x < grid.Width() && y >= 0 && y < grid.Height() && grid.Get(x, y)
			},
		}
	}

	modules := sym.Modules()
	return plane{
		width:  len(modules) + 2*border,
		height: linearBarHeight + 2*border,
		isSet: func(x, y int) bool {
			x -= border
			y -= border
			return x >= 0 && x < len(modules) && y >= 0 && y < linearBarHeight && modules[x]
		},
	}
}
