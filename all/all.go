// Package all registers every symbology in one import.
package all

import (
	// Register all symbology encoders.
	_ "github.com/glyphworks/symbology/aztec"
	_ "github.com/glyphworks/symbology/datamatrix"
	_ "github.com/glyphworks/symbology/linear"
	_ "github.com/glyphworks/symbology/qr"
)
