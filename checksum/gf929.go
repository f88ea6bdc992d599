package checksum

// PrimeField is a field of integers modulo a prime, represented by exponent
// and logarithm tables over a generator element.
type PrimeField struct {
	expTable []int
	logTable []int
	modulus  int
}

// Field929 is GF(929) with generator 3, the field PDF417 error correction
// is defined over.
var Field929 = NewPrimeField(929, 3)

// NewPrimeField builds the exponent and logarithm tables for the field of
// integers modulo the given prime.
func NewPrimeField(modulus, generator int) *PrimeField {
	f := &PrimeField{
		modulus:  modulus,
		expTable: make([]int, modulus),
		logTable: make([]int, modulus),
	}
	x := 1
	for i := 0; i < modulus; i++ {
		f.expTable[i] = x
		x = (x * generator) % modulus
	}
	for i := 0; i < modulus-1; i++ {
		f.logTable[f.expTable[i]] = i
	}
	return f
}

// Add returns (a + b) mod modulus.
func (f *PrimeField) Add(a, b int) int {
	return (a + b) % f.modulus
}

// Subtract returns (a - b) mod modulus.
func (f *PrimeField) Subtract(a, b int) int {
	return (f.modulus + a - b) % f.modulus
}

// Exp returns generator^a.
func (f *PrimeField) Exp(a int) int {
	return f.expTable[a]
}

// Log returns the discrete logarithm of a.
func (f *PrimeField) Log(a int) int {
	if a == 0 {
		panic("checksum: log(0)")
	}
	return f.logTable[a]
}

// Multiply returns a * b in this field.
func (f *PrimeField) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.modulus-1)]
}

// Size returns the modulus of this field.
func (f *PrimeField) Size() int {
	return f.modulus
}

// RS929Encoder computes PDF417 error correction codewords over Field929.
// Generator polynomials are cached per codeword count; an RS929Encoder is
// not safe for concurrent use.
type RS929Encoder struct {
	field      *PrimeField
	generators map[int][]int
}

// NewRS929Encoder creates an encoder for the given prime field.
func NewRS929Encoder(field *PrimeField) *RS929Encoder {
	return &RS929Encoder{
		field:      field,
		generators: make(map[int][]int),
	}
}

// generator returns the coefficients of (x - g)(x - g^2)...(x - g^k),
// excluding the leading x^k term, indexed by degree.
func (e *RS929Encoder) generator(k int) []int {
	if coeff, ok := e.generators[k]; ok {
		return coeff
	}
	// full[d] is the coefficient of x^d; start with the unit polynomial
	full := make([]int, k+1)
	full[0] = 1
	degree := 0
	for i := 1; i <= k; i++ {
		root := e.field.Exp(i)
		// multiply by (x - root)
		degree++
		for d := degree; d >= 1; d-- {
			full[d] = e.field.Subtract(full[d-1], e.field.Multiply(full[d], root))
		}
		full[0] = e.field.Subtract(0, e.field.Multiply(full[0], root))
	}
	coeff := full[:k]
	e.generators[k] = coeff
	return coeff
}

// Encode returns ecCount error correction codewords for the data codewords,
// highest-degree first, as they are placed in the symbol.
func (e *RS929Encoder) Encode(data []int, ecCount int) []int {
	coefficients := e.generator(ecCount)
	registers := make([]int, ecCount)
	for _, d := range data {
		t := e.field.Add(d, registers[ecCount-1])
		for j := ecCount - 1; j >= 1; j-- {
			registers[j] = e.field.Subtract(registers[j-1], e.field.Multiply(t, coefficients[j]))
		}
		registers[0] = e.field.Subtract(0, e.field.Multiply(t, coefficients[0]))
	}
	ec := make([]int, ecCount)
	for j := 0; j < ecCount; j++ {
		ec[j] = e.field.Subtract(0, registers[ecCount-1-j])
	}
	return ec
}
