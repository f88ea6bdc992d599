package linear

import (
	"fmt"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/checksum"
)

// itfPatterns holds the narrow (1) / wide (2) widths for digits 0-9. Each
// digit pair interleaves the first digit's widths as bars with the second
// digit's widths as spaces.
var itfPatterns = [10][5]int{
	{1, 1, 2, 2, 1}, // 0
	{2, 1, 1, 1, 2}, // 1
	{1, 2, 1, 1, 2}, // 2
	{2, 2, 1, 1, 1}, // 3
	{1, 1, 2, 1, 2}, // 4
	{2, 1, 2, 1, 1}, // 5
	{1, 2, 2, 1, 1}, // 6
	{1, 1, 1, 2, 2}, // 7
	{2, 1, 1, 2, 1}, // 8
	{1, 2, 1, 2, 1}, // 9
}

// ITFEncoder encodes Interleaved 2 of 5 barcodes. The digit count must be
// even; with the "check_digit" option the input must be odd-length and the
// modulo-10 check digit is appended to even it out.
type ITFEncoder struct{}

// NewITFEncoder creates a new ITF encoder.
func NewITFEncoder() *ITFEncoder {
	return &ITFEncoder{}
}

// Encode encodes pairs of digits between the ITF start and stop patterns.
func (e *ITFEncoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check("check_digit"); err != nil {
		return nil, err
	}
	if err := checkNotEmpty(symbology.ITF, contents); err != nil {
		return nil, err
	}
	if err := checkNumeric(symbology.ITF, contents); err != nil {
		return nil, err
	}

	full := contents
	if opts.Get("check_digit", "false") == "true" {
		check, err := checksum.Mod10(contents)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", symbology.ITF, symbology.ErrInvalidCharacter)
		}
		full += string(rune('0' + check))
	}
	if len(full)%2 != 0 {
		return nil, fmt.Errorf("%s: digit count must be even, got %d: %w",
			symbology.ITF, len(full), symbology.ErrInvalidLength)
	}

	// start: narrow bar, space, bar, space; stop: wide bar, narrow space,
	// narrow bar
	totalWidth := 4 + 5
	for i := 0; i < len(full); i += 2 {
		d1 := full[i] - '0'
		d2 := full[i+1] - '0'
		for j := 0; j < 5; j++ {
			totalWidth += itfPatterns[d1][j] + itfPatterns[d2][j]
		}
	}

	result := make([]bool, totalWidth)
	pos := appendPattern(result, 0, []int{1, 1, 1, 1}, true)

	for i := 0; i < len(full); i += 2 {
		d1 := full[i] - '0'
		d2 := full[i+1] - '0'
		encoding := make([]int, 10)
		for j := 0; j < 5; j++ {
			encoding[2*j] = itfPatterns[d1][j]
			encoding[2*j+1] = itfPatterns[d2][j]
		}
		pos += appendPattern(result, pos, encoding, true)
	}

	appendPattern(result, pos, []int{3, 1, 1}, true)

	return symbology.NewLinearSymbol(symbology.ITF, full, result, quietZone), nil
}
