package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/glyphworks/symbology"
)

// PNG rasterizes the symbol at BoxSize pixels per module.
func PNG(sym *symbology.Symbol, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	fill, err := ParseColor(opts.FillColor)
	if err != nil {
		return nil, err
	}
	back, err := ParseColor(opts.BackColor)
	if err != nil {
		return nil, err
	}

	p := symbolPlane(sym, opts.Border)
	box := opts.BoxSize

	img := image.NewRGBA(image.Rect(0, 0, p.width*box, p.height*box))
	draw.Draw(img, img.Bounds(), image.NewUniform(back), image.Point{}, draw.Src)

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			if !p.isSet(x, y) {
				continue
			}
			cell := image.Rect(x*box, y*box, (x+1)*box, (y+1)*box)
			draw.Draw(img, cell, image.NewUniform(fill), image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
