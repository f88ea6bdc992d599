package symbology

import "github.com/glyphworks/symbology/bitutil"

// Run is a horizontal run of identically colored modules in a linear symbol.
type Run struct {
	Width  int
	Filled bool
}

// Symbol is the abstract output of an encoder, expressed in modules rather
// than pixels. Linear symbols carry a run-length sequence; matrix symbols
// carry a module grid. Renderers decide module size, colors, and output
// format.
type Symbol struct {
	ID   SymbologyID
	Kind Kind

	// Content is the payload as encoded, including any check characters
	// the encoder appended.
	Content string

	// Runs holds the bar/space sequence of a linear symbol, left to
	// right, excluding the quiet zone. Nil for matrix symbols.
	Runs []Run

	// Grid holds the module grid of a matrix symbol, excluding the quiet
	// zone. Nil for linear symbols.
	Grid *bitutil.BitMatrix

	// QuietZone is the number of blank modules required on each side
	// (linear) or each edge (matrix).
	QuietZone int

	// ECLevel names the error correction level used, when the symbology
	// has one.
	ECLevel string
}

// NewLinearSymbol builds a linear symbol from a module sequence, collapsing
// it into runs.
func NewLinearSymbol(id SymbologyID, content string, modules []bool, quietZone int) *Symbol {
	s := &Symbol{
		ID:        id,
		Kind:      KindLinear,
		Content:   content,
		QuietZone: quietZone,
	}
	for _, filled := range modules {
		if n := len(s.Runs); n > 0 && s.Runs[n-1].Filled == filled {
			s.Runs[n-1].Width++
			continue
		}
		s.Runs = append(s.Runs, Run{Width: 1, Filled: filled})
	}
	return s
}

// NewMatrixSymbol builds a matrix symbol around a module grid.
func NewMatrixSymbol(id SymbologyID, content string, grid *bitutil.BitMatrix, quietZone int) *Symbol {
	return &Symbol{
		ID:        id,
		Kind:      KindMatrix,
		Content:   content,
		Grid:      grid,
		QuietZone: quietZone,
	}
}

// Modules expands a linear symbol's runs back into one module per element.
// It returns nil for matrix symbols.
func (s *Symbol) Modules() []bool {
	if s.Kind != KindLinear {
		return nil
	}
	var modules []bool
	for _, r := range s.Runs {
		for i := 0; i < r.Width; i++ {
			modules = append(modules, r.Filled)
		}
	}
	return modules
}

// Width returns the symbol width in modules, quiet zones included.
func (s *Symbol) Width() int {
	if s.Kind == KindMatrix {
		return s.Grid.Width() + 2*s.QuietZone
	}
	w := 2 * s.QuietZone
	for _, r := range s.Runs {
		w += r.Width
	}
	return w
}

// Height returns the symbol height in modules, quiet zones included.
// Linear symbols have no intrinsic height and report 1.
func (s *Symbol) Height() int {
	if s.Kind == KindMatrix {
		return s.Grid.Height() + 2*s.QuietZone
	}
	return 1
}
