package checksum

// RSEncoder appends Reed-Solomon error correction codewords over a Field.
// Generator polynomials are cached per degree; an RSEncoder is not safe for
// concurrent use.
type RSEncoder struct {
	field            *Field
	cachedGenerators []*Poly
}

// NewRSEncoder creates an encoder for the given field.
func NewRSEncoder(field *Field) *RSEncoder {
	e := &RSEncoder{
		field:            field,
		cachedGenerators: make([]*Poly, 1),
	}
	e.cachedGenerators[0] = newPoly(field, []int{1})
	return e
}

func (e *RSEncoder) buildGenerator(degree int) *Poly {
	if degree < len(e.cachedGenerators) {
		return e.cachedGenerators[degree]
	}
	lastGenerator := e.cachedGenerators[len(e.cachedGenerators)-1]
	for d := len(e.cachedGenerators); d <= degree; d++ {
		nextGenerator := lastGenerator.MultiplyPoly(
			newPoly(e.field, []int{1, e.field.Exp(d - 1 + e.field.GeneratorBase())}))
		e.cachedGenerators = append(e.cachedGenerators, nextGenerator)
		lastGenerator = nextGenerator
	}
	return e.cachedGenerators[degree]
}

// Encode appends ecWords error-correction codewords to the data in toEncode.
// toEncode holds the data words followed by ecWords slots to fill.
func (e *RSEncoder) Encode(toEncode []int, ecWords int) {
	if ecWords == 0 {
		panic("checksum: no error correction words")
	}
	dataWords := len(toEncode) - ecWords
	if dataWords <= 0 {
		panic("checksum: no data words provided")
	}
	generator := e.buildGenerator(ecWords)
	infoCoefficients := make([]int, dataWords)
	copy(infoCoefficients, toEncode[:dataWords])
	info := newPoly(e.field, infoCoefficients)
	info = info.MultiplyByMonomial(ecWords, 1)
	_, remainder := info.Divide(generator)
	coefficients := remainder.Coefficients()
	numZero := ecWords - len(coefficients)
	for i := 0; i < numZero; i++ {
		toEncode[dataWords+i] = 0
	}
	copy(toEncode[dataWords+numZero:], coefficients)
}
