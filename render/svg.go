package render

import (
	"fmt"
	"strings"

	"github.com/glyphworks/symbology"
)

// SVG emits the symbol as a standalone SVG document. Horizontal module runs
// collapse into single rects, so linear symbols come out as one rect per
// bar.
func SVG(sym *symbology.Symbol, opts Options) ([]byte, error) {
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
	pxWidth, pxHeight := p.width*box, p.height*box

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		pxWidth, pxHeight, pxWidth, pxHeight)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="%s"/>`+"\n", pxWidth, pxHeight, hexColor(back))

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; {
			if !p.isSet(x, y) {
				x++
				continue
			}
			run := x
			for run < p.width && p.isSet(run, y) {
				run++
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				x*box, y*box, (run-x)*box, box, hexColor(fill))
			x = run
		}
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String()), nil
}
