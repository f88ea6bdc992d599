package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/bitutil"
)

func matrixSymbol(t *testing.T) *symbology.Symbol {
	t.Helper()
	grid := bitutil.NewBitMatrix(3)
	grid.Set(0, 0)
	grid.Set(1, 1)
	grid.Set(2, 2)
	return symbology.NewMatrixSymbol(symbology.QR, "test", grid, 0)
}

func linearSymbol() *symbology.Symbol {
	return symbology.NewLinearSymbol(symbology.Code128, "test",
		[]bool{true, true, false, true}, 10)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("red")
	if err != nil || c != (color.RGBA{0xFF, 0, 0, 0xFF}) {
		t.Errorf("red: %v %v", c, err)
	}
	c, err = ParseColor("#0a0B0c")
	if err != nil || c != (color.RGBA{0x0A, 0x0B, 0x0C, 0xFF}) {
		t.Errorf("#0a0B0c: %v %v", c, err)
	}
	c, err = ParseColor("#f0f")
	if err != nil || c != (color.RGBA{0xFF, 0x00, 0xFF, 0xFF}) {
		t.Errorf("#f0f: %v %v", c, err)
	}
	if _, err = ParseColor("chartreuse"); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("unknown color: %v", err)
	}
	if _, err = ParseColor("#12345"); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("bad hex: %v", err)
	}
}

func TestPNGDimensions(t *testing.T) {
	sym := matrixSymbol(t)
	out, err := PNG(sym, Options{BoxSize: 2, Border: 1})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	// 3 modules + 1 border each side, 2 px per module
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("bounds %v, want 10x10", b)
	}
}

func TestPNGBorderWidensToQuietZone(t *testing.T) {
	// Code 128 requires a 10 module quiet zone; a narrower border must
	// not shrink it.
	out, err := PNG(linearSymbol(), Options{BoxSize: 1, Border: 2})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if w := img.Bounds().Dx(); w != 4+2*10 {
		t.Errorf("width %d, want 24", w)
	}
}

func TestSVGOutput(t *testing.T) {
	out, err := SVG(matrixSymbol(t), Options{BoxSize: 10, Border: 0, FillColor: "blue"})
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)
	if !strings.Contains(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="30" height="30"`) {
		t.Errorf("missing svg header: %s", svg)
	}
	if !strings.Contains(svg, `fill="#0000ff"`) {
		t.Errorf("missing fill color: %s", svg)
	}
	// three set modules on distinct rows -> three module rects after the
	// background rect
	if n := strings.Count(svg, "<rect"); n != 4 {
		t.Errorf("rect count %d, want 4", n)
	}
}

func TestRenderFormatDispatch(t *testing.T) {
	sym := matrixSymbol(t)
	out, err := Render(sym, Options{Format: "svg"})
	if err != nil || !bytes.HasPrefix(out, []byte("<?xml")) {
		t.Errorf("svg dispatch: %v", err)
	}
	out, err = Render(sym, Options{})
	if err != nil || !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Errorf("png default: %v", err)
	}
	if _, err = Render(sym, Options{Format: "bmp"}); !errors.Is(err, symbology.ErrUnsupportedOption) {
		t.Errorf("unknown format: %v", err)
	}
}

func TestReadConfig(t *testing.T) {
	opts, err := ReadConfig([]byte("box_size: 5\nfill_color: \"#336699\"\nformat: svg\nsymbology_options:\n  ec_level: H\n"))
	if err != nil {
		t.Fatal(err)
	}
	if opts.BoxSize != 5 || opts.FillColor != "#336699" || opts.Format != "svg" {
		t.Errorf("parsed %+v", opts)
	}
	// unset keys keep their defaults
	if opts.Border != 4 || opts.BackColor != "white" {
		t.Errorf("defaults lost: %+v", opts)
	}
	if opts.SymbologyOptions["ec_level"] != "H" {
		t.Errorf("symbology options %v", opts.SymbologyOptions)
	}

	if _, err := ReadConfig([]byte(":bad\nyaml")); err == nil {
		t.Error("bad yaml accepted")
	}
}
