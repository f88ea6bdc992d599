// Package pdf417 implements the PDF417 codeword pipeline: high-level
// compaction, error correction over GF(929), and symbol dimensioning with
// row indicator codewords. It stops at the codeword level and is therefore
// not registered as a renderable symbology.
package pdf417

import (
	"fmt"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/checksum"
)

// Symbol geometry limits.
const (
	minDataColumns = 1
	maxDataColumns = 30
	minSymbolRows  = 3
	maxSymbolRows  = 90

	// maxCodewords is the largest codeword count a symbol can carry; the
	// symbol length descriptor must stay below the field modulus.
	maxCodewords = 929

	// padCodeword fills unused data positions.
	padCodeword = 900
)

// Preferred symbol shape for automatic dimensioning, in the proportions of
// the printed symbol: rows of height 2 against 17-module codewords of width
// 0.357 each, aiming at a 3:1 aspect ratio.
const (
	moduleWidth    = 0.357
	rowHeight      = 2.0
	preferredRatio = 3.0
)

// Code is the codeword-level form of a PDF417 symbol. Turning it into bars
// additionally requires the low-level pattern tables of the symbology
// definition, which a renderer brings along.
type Code struct {
	// Columns and Rows give the data region dimensions.
	Columns int
	Rows    int

	// ECLevel is the error correction level, 0 through 8.
	ECLevel int

	// Codewords is the complete codeword stream: length descriptor, data,
	// padding, then error correction codewords.
	Codewords []int

	// Matrix holds the codewords per symbol row: a left row indicator,
	// Columns stream codewords, and a right row indicator.
	Matrix [][]int
}

// Encoder builds PDF417 codeword matrices. The zero value selects automatic
// compaction and the full dimension range.
type Encoder struct {
	compaction Compaction

	minCols, maxCols int
	minRows, maxRows int
}

// NewEncoder creates an encoder with automatic compaction and the full
// 1-30 column, 3-90 row dimension range.
func NewEncoder() *Encoder {
	return &Encoder{
		minCols: minDataColumns,
		maxCols: maxDataColumns,
		minRows: minSymbolRows,
		maxRows: maxSymbolRows,
	}
}

// SetCompaction forces a compaction scheme.
func (e *Encoder) SetCompaction(c Compaction) {
	e.compaction = c
}

// SetDimensions restricts the data region dimensions used by automatic
// fitting.
func (e *Encoder) SetDimensions(minCols, maxCols, minRows, maxRows int) error {
	if minCols < minDataColumns || maxCols > maxDataColumns || minCols > maxCols ||
		minRows < minSymbolRows || maxRows > maxSymbolRows || minRows > maxRows {
		return fmt.Errorf("pdf417: dimensions %d-%d cols, %d-%d rows: %w",
			minCols, maxCols, minRows, maxRows, symbology.ErrUnsupportedOption)
	}
	e.minCols, e.maxCols = minCols, maxCols
	e.minRows, e.maxRows = minRows, maxRows
	return nil
}

// Encode compacts contents and builds the codeword matrix at the given
// error correction level (0-8).
func (e *Encoder) Encode(contents string, ecLevel int) (*Code, error) {
	if ecLevel < 0 || ecLevel > 8 {
		return nil, fmt.Errorf("pdf417: error correction level %d: %w", ecLevel, symbology.ErrUnsupportedOption)
	}
	ecCount := 1 << uint(ecLevel+1)

	data, err := encodeHighLevel(contents, e.compaction)
	if err != nil {
		return nil, err
	}

	cols, rows, err := e.fitDimensions(len(data), ecCount)
	if err != nil {
		return nil, err
	}
	pad := cols*rows - ecCount - len(data) - 1
	if len(data)+ecCount+1 > maxCodewords || pad < 0 {
		return nil, fmt.Errorf("pdf417: %d data and %d error correction codewords: %w",
			len(data), ecCount, symbology.ErrCapacityExceeded)
	}

	stream := make([]int, 0, cols*rows)
	stream = append(stream, len(data)+pad+1)
	stream = append(stream, data...)
	for i := 0; i < pad; i++ {
		stream = append(stream, padCodeword)
	}
	stream = append(stream, checksum.NewRS929Encoder(checksum.Field929).Encode(stream, ecCount)...)

	return &Code{
		Columns:   cols,
		Rows:      rows,
		ECLevel:   ecLevel,
		Codewords: stream,
		Matrix:    buildMatrix(stream, cols, rows, ecLevel),
	}, nil
}

// fitDimensions picks the column and row counts whose printed aspect ratio
// comes closest to the preferred shape while holding the data and error
// correction codewords.
func (e *Encoder) fitDimensions(dataCount, ecCount int) (int, int, error) {
	cols, rows := 0, 0
	bestRatioDiff := 0.0

	for c := e.minCols; c <= e.maxCols; c++ {
		r := (dataCount + 1 + ecCount + c - 1) / c
		if r < e.minRows {
			break
		}
		if r > e.maxRows {
			continue
		}
		ratio := float64(17*c+69) * moduleWidth / (float64(r) * rowHeight)
		diff := ratio - preferredRatio
		if diff < 0 {
			diff = -diff
		}
		if cols != 0 && diff > bestRatioDiff {
			continue
		}
		cols, rows = c, r
		bestRatioDiff = diff
	}
	if cols == 0 {
		// Everything fit in fewer rows than the minimum; stretch the
		// narrowest allowed symbol to the minimum row count.
		if r := (dataCount + 1 + ecCount + e.minCols - 1) / e.minCols; r < e.minRows {
			return e.minCols, e.minRows, nil
		}
		return 0, 0, fmt.Errorf("pdf417: no dimensions within %d-%d cols, %d-%d rows: %w",
			e.minCols, e.maxCols, e.minRows, e.maxRows, symbology.ErrCapacityExceeded)
	}
	return cols, rows, nil
}

// buildMatrix lays the codeword stream out row by row and attaches the left
// and right row indicator codewords. Indicator values rotate through three
// clusters carrying the row count, column count, and error correction level.
func buildMatrix(stream []int, cols, rows, ecLevel int) [][]int {
	matrix := make([][]int, rows)
	for y := 0; y < rows; y++ {
		base := 30 * (y / 3)
		var left, right int
		switch y % 3 {
		case 0:
			left = base + (rows-1)/3
			right = base + cols - 1
		case 1:
			left = base + ecLevel*3 + (rows-1)%3
			right = base + (rows-1)/3
		default:
			left = base + cols - 1
			right = base + ecLevel*3 + (rows-1)%3
		}

		row := make([]int, 0, cols+2)
		row = append(row, left)
		row = append(row, stream[y*cols:(y+1)*cols]...)
		row = append(row, right)
		matrix[y] = row
	}
	return matrix
}
