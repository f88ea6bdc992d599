// Package datamatrix implements Data Matrix ECC-200 encoding for all square
// and rectangular symbol sizes.
package datamatrix

import (
	"fmt"

	"github.com/glyphworks/symbology"
	"github.com/glyphworks/symbology/bitutil"
	"github.com/glyphworks/symbology/checksum"
)

// quietZone is the blank margin required on each edge, in modules.
const quietZone = 1

// Encoder encodes Data Matrix symbols. The "shape" option restricts the
// symbol to "square" or "rectangle"; by default the smallest fitting symbol
// of either shape is chosen.
type Encoder struct{}

// NewEncoder creates a new Data Matrix encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func init() {
	symbology.Register(&symbology.Spec{
		ID:       symbology.DataMatrix,
		Kind:     symbology.KindMatrix,
		Charset:  symbology.CharsetByte,
		Checksum: "reed-solomon",
		New:      func() symbology.Encoder { return NewEncoder() },
	})
}

// Encode encodes contents into a Data Matrix symbol.
func (e *Encoder) Encode(contents string, opts symbology.Options) (*symbology.Symbol, error) {
	if err := opts.Check("shape"); err != nil {
		return nil, err
	}
	if contents == "" {
		return nil, fmt.Errorf("%s: %w", symbology.DataMatrix, symbology.ErrEmptyPayload)
	}

	var shape shapeHint
	switch opts.Get("shape", "") {
	case "":
		shape = shapeAny
	case "square":
		shape = shapeSquare
	case "rectangle":
		shape = shapeRectangle
	default:
		return nil, fmt.Errorf("%s: shape must be square or rectangle: %w",
			symbology.DataMatrix, symbology.ErrUnsupportedOption)
	}

	encoded := encodeHighLevel([]byte(contents))

	si, err := lookupSymbol(len(encoded), shape)
	if err != nil {
		return nil, err
	}

	codewords := padCodewords(encoded, si.DataCapacity)
	fullCodewords, err := encodeECC200(codewords, si)
	if err != nil {
		return nil, err
	}

	p := newPlacement(fullCodewords, si.MappingMatrixColumns(), si.MappingMatrixRows())
	p.place()

	grid := encodeLowLevel(p, si)
	return symbology.NewMatrixSymbol(symbology.DataMatrix, contents, grid, quietZone), nil
}

// encodeLowLevel surrounds each data region with the solid L finder on the
// left and bottom and the alternating clock track on the top and right, then
// copies the mapping matrix modules into place.
func encodeLowLevel(p *placement, si *symbolInfo) *bitutil.BitMatrix {
	symbolWidth := si.MatrixWidth
	symbolHeight := si.MatrixHeight

	matrix := bitutil.NewBitMatrixWithSize(symbolWidth, symbolHeight)

	drRows := si.DataRegionSizeRows
	drCols := si.DataRegionSizeColumns
	numRegionsH := symbolWidth / (drCols + 2)
	numRegionsV := symbolHeight / (drRows + 2)

	for vRegion := 0; vRegion < numRegionsV; vRegion++ {
		for hRegion := 0; hRegion < numRegionsH; hRegion++ {
			originX := hRegion * (drCols + 2)
			originY := vRegion * (drRows + 2)

			for y := 0; y < drRows+2; y++ {
				matrix.Set(originX, originY+y)
			}
			for x := 0; x < drCols+2; x++ {
				matrix.Set(originX+x, originY+drRows+1)
			}
			for x := 0; x < drCols+2; x += 2 {
				matrix.Set(originX+x, originY)
			}
			for y := 0; y < drRows+2; y += 2 {
				matrix.Set(originX+drCols+1, originY+y)
			}
		}
	}

	for vRegion := 0; vRegion < numRegionsV; vRegion++ {
		for hRegion := 0; hRegion < numRegionsH; hRegion++ {
			for r := 0; r < drRows; r++ {
				for c := 0; c < drCols; c++ {
					mappingRow := vRegion*drRows + r
					mappingCol := hRegion*drCols + c
					if p.getBit(mappingCol, mappingRow) {
						matrix.Set(hRegion*(drCols+2)+c+1, vRegion*(drRows+2)+r+1)
					}
				}
			}
		}
	}

	return matrix
}

// encodeECC200 appends the Reed-Solomon error correction codewords,
// interleaving across blocks for the larger symbols.
func encodeECC200(codewords []byte, si *symbolInfo) ([]byte, error) {
	if len(codewords) != si.DataCapacity {
		return nil, fmt.Errorf("datamatrix: %d data codewords, expected %d", len(codewords), si.DataCapacity)
	}

	blockCount := si.InterleavedBlockCount()
	ecPerBlock := si.RSBlockError
	totalEC := blockCount * ecPerBlock

	result := make([]byte, si.DataCapacity+totalEC)
	copy(result, codewords)

	if blockCount == 1 {
		copy(result[si.DataCapacity:], generateECCBlock(codewords, ecPerBlock))
		return result, nil
	}

	block1Count := si.block1Count()
	block1Data := si.RSBlockData
	block2Data := si.RSBlockData2
	if block2Data == 0 {
		block2Data = block1Data
	}

	blocks := make([][]byte, blockCount)
	for i := 0; i < blockCount; i++ {
		dataLen := block1Data
		if i >= block1Count {
			dataLen = block2Data
		}
		blocks[i] = make([]byte, dataLen)
	}

	// data codewords round-robin across blocks
	for i := 0; i < len(codewords); i++ {
		blockIdx := i % blockCount
		posInBlock := i / blockCount
		if posInBlock < len(blocks[blockIdx]) {
			blocks[blockIdx][posInBlock] = codewords[i]
		}
	}

	ecBlocks := make([][]byte, blockCount)
	for i := 0; i < blockCount; i++ {
		ecBlocks[i] = generateECCBlock(blocks[i], ecPerBlock)
	}

	ecStart := si.DataCapacity
	for i := 0; i < ecPerBlock; i++ {
		for j := 0; j < blockCount; j++ {
			result[ecStart] = ecBlocks[j][i]
			ecStart++
		}
	}

	return result, nil
}

func generateECCBlock(data []byte, numECCodewords int) []byte {
	toEncode := make([]int, len(data)+numECCodewords)
	for i, c := range data {
		toEncode[i] = int(c)
	}
	checksum.NewRSEncoder(checksum.DataMatrixField).Encode(toEncode, numECCodewords)
	ec := make([]byte, numECCodewords)
	for i := 0; i < numECCodewords; i++ {
		ec[i] = byte(toEncode[len(data)+i])
	}
	return ec
}
