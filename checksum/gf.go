package checksum

import "fmt"

// Field is a Galois field GF(2^n) represented by exponent and logarithm
// tables over a primitive polynomial.
type Field struct {
	expTable      []int
	logTable      []int
	zero          *Poly
	one           *Poly
	size          int
	primitive     int
	generatorBase int
}

// The fields the matrix symbologies encode over.
var (
	QRField         = NewField(0x011D, 256, 0) // x^8 + x^4 + x^3 + x^2 + 1
	DataMatrixField = NewField(0x012D, 256, 1) // x^8 + x^5 + x^3 + x^2 + 1
	AztecData12     = NewField(0x1069, 4096, 1)
	AztecData10     = NewField(0x0409, 1024, 1)
	AztecData8      = DataMatrixField
	AztecData6      = NewField(0x0043, 64, 1)
	AztecParam      = NewField(0x0013, 16, 1)
)

// NewField creates GF(size) over the given primitive polynomial.
// generatorBase is the power of the first generator root (0 or 1).
func NewField(primitive, size, generatorBase int) *Field {
	f := &Field{
		primitive:     primitive,
		size:          size,
		generatorBase: generatorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	x := 1
	for i := 0; i < size; i++ {
		f.expTable[i] = x
		x *= 2
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		f.logTable[f.expTable[i]] = i
	}

	f.zero = newPoly(f, []int{0})
	f.one = newPoly(f, []int{1})

	return f
}

// Zero returns the zero polynomial.
func (f *Field) Zero() *Poly { return f.zero }

// One returns the one polynomial.
func (f *Field) One() *Poly { return f.one }

// BuildMonomial returns coefficient * x^degree.
func (f *Field) BuildMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("checksum: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newPoly(f, coefficients)
}

// AddOrSubtract computes a XOR b (addition and subtraction coincide in
// GF(2^n)).
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns 2^a in this field.
func (f *Field) Exp(a int) int {
	return f.expTable[a]
}

// Log returns log2(a) in this field.
func (f *Field) Log(a int) int {
	if a == 0 {
		panic("checksum: log(0)")
	}
	return f.logTable[a]
}

// Inverse returns the multiplicative inverse of a.
func (f *Field) Inverse(a int) int {
	if a == 0 {
		panic("checksum: inverse(0)")
	}
	return f.expTable[f.size-f.logTable[a]-1]
}

// Multiply returns a * b in this field.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.size-1)]
}

// Size returns the size of the field.
func (f *Field) Size() int { return f.size }

// GeneratorBase returns the power of the first generator root.
func (f *Field) GeneratorBase() int { return f.generatorBase }

// String returns a string representation.
func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", f.primitive, f.size)
}
