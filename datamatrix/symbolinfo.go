package datamatrix

import (
	"fmt"

	"github.com/glyphworks/symbology"
)

// shapeHint constrains the symbol shape chosen for a payload.
type shapeHint int

const (
	shapeAny shapeHint = iota
	shapeSquare
	shapeRectangle
)

// symbolInfo describes a single ECC-200 symbol size.
type symbolInfo struct {
	Rectangular           bool
	DataCapacity          int // data codewords across all interleaved blocks
	ErrorCodewords        int // total EC codewords
	MatrixWidth           int // modules, finder patterns included
	MatrixHeight          int
	DataRegionSizeRows    int
	DataRegionSizeColumns int
	RSBlockData           int // data codewords per RS block
	RSBlockError          int // EC codewords per RS block
	// The 144x144 symbol interleaves two block sizes.
	RSBlockData2 int
	NumRSBlocks2 int
}

// InterleavedBlockCount returns the total number of RS blocks.
func (si *symbolInfo) InterleavedBlockCount() int {
	n := si.block1Count()
	if si.RSBlockData2 > 0 {
		n += si.NumRSBlocks2
	}
	return n
}

func (si *symbolInfo) block1Count() int {
	if si.RSBlockData2 == 0 {
		return si.DataCapacity / si.RSBlockData
	}
	return (si.DataCapacity - si.NumRSBlocks2*si.RSBlockData2) / si.RSBlockData
}

// MappingMatrixRows returns the data module rows once the finder and clock
// rows of every data region are stripped.
func (si *symbolInfo) MappingMatrixRows() int {
	return si.MatrixHeight - (si.MatrixHeight/(si.DataRegionSizeRows+2))*2
}

// MappingMatrixColumns returns the data module columns.
func (si *symbolInfo) MappingMatrixColumns() int {
	return si.MatrixWidth - (si.MatrixWidth/(si.DataRegionSizeColumns+2))*2
}

// symbols lists the ECC-200 symbol sizes in capacity order, squares first,
// per ISO/IEC 16022 Table 7.
var symbols = []symbolInfo{
	{false, 3, 5, 10, 10, 8, 8, 3, 5, 0, 0},
	{false, 5, 7, 12, 12, 10, 10, 5, 7, 0, 0},
	{false, 8, 10, 14, 14, 12, 12, 8, 10, 0, 0},
	{false, 12, 12, 16, 16, 14, 14, 12, 12, 0, 0},
	{false, 18, 14, 18, 18, 16, 16, 18, 14, 0, 0},
	{false, 22, 18, 20, 20, 18, 18, 22, 18, 0, 0},
	{false, 30, 20, 22, 22, 20, 20, 30, 20, 0, 0},
	{false, 36, 24, 24, 24, 22, 22, 36, 24, 0, 0},
	{false, 44, 28, 26, 26, 24, 24, 44, 28, 0, 0},
	{false, 62, 36, 32, 32, 14, 14, 62, 36, 0, 0},
	{false, 86, 42, 36, 36, 16, 16, 86, 42, 0, 0},
	{false, 114, 48, 40, 40, 18, 18, 114, 48, 0, 0},
	{false, 144, 56, 44, 44, 20, 20, 144, 56, 0, 0},
	{false, 174, 68, 48, 48, 22, 22, 174, 68, 0, 0},
	{false, 204, 84, 52, 52, 24, 24, 102, 42, 0, 0},
	{false, 280, 112, 64, 64, 14, 14, 140, 56, 0, 0},
	{false, 368, 144, 72, 72, 16, 16, 92, 36, 0, 0},
	{false, 456, 192, 80, 80, 18, 18, 114, 48, 0, 0},
	{false, 576, 224, 88, 88, 20, 20, 144, 56, 0, 0},
	{false, 696, 272, 96, 96, 22, 22, 174, 68, 0, 0},
	{false, 816, 336, 104, 104, 24, 24, 136, 56, 0, 0},
	{false, 1050, 408, 120, 120, 18, 18, 175, 68, 0, 0},
	{false, 1304, 496, 132, 132, 20, 20, 163, 62, 0, 0},
	{false, 1558, 620, 144, 144, 22, 22, 156, 62, 155, 2},

	{true, 5, 7, 18, 8, 6, 16, 5, 7, 0, 0},
	{true, 10, 11, 32, 8, 6, 14, 10, 11, 0, 0},
	{true, 16, 14, 26, 12, 10, 24, 16, 14, 0, 0},
	{true, 22, 18, 36, 12, 10, 16, 22, 18, 0, 0},
	{true, 32, 24, 36, 16, 14, 16, 32, 24, 0, 0},
	{true, 49, 28, 48, 16, 14, 22, 49, 28, 0, 0},
}

// lookupSymbol finds the smallest symbol that can hold the given number of
// data codewords under the shape constraint.
func lookupSymbol(dataCodewords int, shape shapeHint) (*symbolInfo, error) {
	for i := range symbols {
		si := &symbols[i]
		if shape == shapeSquare && si.Rectangular {
			continue
		}
		if shape == shapeRectangle && !si.Rectangular {
			continue
		}
		if si.DataCapacity >= dataCodewords {
			return si, nil
		}
	}
	return nil, fmt.Errorf("%s: no symbol holds %d data codewords: %w",
		symbology.DataMatrix, dataCodewords, symbology.ErrCapacityExceeded)
}
