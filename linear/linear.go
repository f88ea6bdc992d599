// Package linear implements the one-dimensional symbology encoders. Each
// encoder maps a validated payload to its bar/space module pattern and wraps
// it in a Symbol; importing the package registers every linear family with
// the root registry.
package linear

import (
	"fmt"

	"github.com/glyphworks/symbology"
)

// quietZone is the blank margin required on each side of a linear symbol,
// in modules.
const quietZone = 10

// appendPattern writes a run-length pattern into target starting at pos.
// If startColor is true the first run is a bar, otherwise a space. It
// returns the total width appended.
func appendPattern(target []bool, pos int, pattern []int, startColor bool) int {
	color := startColor
	numAdded := 0
	for _, p := range pattern {
		for j := 0; j < p; j++ {
			target[pos] = color
			pos++
			numAdded++
		}
		color = !color
	}
	return numAdded
}

// checkNumeric validates that a string contains only ASCII digits.
func checkNumeric(id symbology.SymbologyID, s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%s: non-digit %q at position %d: %w",
				id, s[i], i, symbology.ErrInvalidCharacter)
		}
	}
	return nil
}

func checkNotEmpty(id symbology.SymbologyID, s string) error {
	if len(s) == 0 {
		return fmt.Errorf("%s: %w", id, symbology.ErrEmptyPayload)
	}
	return nil
}
