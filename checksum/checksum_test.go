package checksum

import "testing"

func TestMod10(t *testing.T) {
	tests := []struct {
		digits string
		want   int
	}{
		{"123456789012", 8}, // EAN-13 body
		{"590123412345", 7},
		{"9638507", 4},      // EAN-8 body
		{"03600029145", 2},  // UPC-A body
		{"00000000000", 0},
		{"4", 8},
	}
	for _, tt := range tests {
		got, err := Mod10(tt.digits)
		if err != nil {
			t.Fatalf("Mod10(%q) error: %v", tt.digits, err)
		}
		if got != tt.want {
			t.Errorf("Mod10(%q) = %d, want %d", tt.digits, got, tt.want)
		}
	}
}

func TestMod10RejectsNonDigits(t *testing.T) {
	if _, err := Mod10("12a4"); err == nil {
		t.Error("expected error for non-digit input")
	}
}

func TestWeightedMod43(t *testing.T) {
	// CODE39: values of "CODE39" in the 43-character set are
	// C=12 O=24 D=13 E=14 3=3 9=9; sum=75; 75 mod 43 = 32.
	values := []int{12, 24, 13, 14, 3, 9}
	if got := WeightedMod(values, 1, 43); got != 32 {
		t.Errorf("WeightedMod = %d, want 32", got)
	}
}

func TestWeightedModWeightsCycle(t *testing.T) {
	// With maxWeight 2 and values all 1, weights from the right are
	// 1,2,1,2,... so five values sum to 1+2+1+2+1 = 7.
	values := []int{1, 1, 1, 1, 1}
	if got := WeightedMod(values, 2, 47); got != 7 {
		t.Errorf("WeightedMod = %d, want 7", got)
	}
}

func TestFieldBasics(t *testing.T) {
	field := QRField
	if field.Size() != 256 {
		t.Errorf("size = %d, want 256", field.Size())
	}
	if field.GeneratorBase() != 0 {
		t.Errorf("generatorBase = %d, want 0", field.GeneratorBase())
	}

	// a * inverse(a) should be 1
	for a := 1; a < 256; a++ {
		inv := field.Inverse(a)
		if product := field.Multiply(a, inv); product != 1 {
			t.Errorf("a=%d: a*inv(a) = %d, want 1", a, product)
		}
	}

	// a XOR a should be 0
	if AddOrSubtract(42, 42) != 0 {
		t.Error("a XOR a should be 0")
	}

	if field.Multiply(0, 100) != 0 || field.Multiply(100, 0) != 0 {
		t.Error("multiply by 0 should be 0")
	}
}

func TestPolyBasics(t *testing.T) {
	field := QRField

	zero := field.Zero()
	if !zero.IsZero() {
		t.Error("zero should be zero")
	}

	one := field.One()
	if one.IsZero() {
		t.Error("one should not be zero")
	}
	if one.Degree() != 0 {
		t.Errorf("one degree = %d, want 0", one.Degree())
	}

	// p(x) = 2x + 3; p(0) = 3
	p := newPoly(field, []int{2, 3})
	if p.EvaluateAt(0) != 3 {
		t.Errorf("p(0) = %d, want 3", p.EvaluateAt(0))
	}
}

// A valid RS codeword evaluates to zero at every generator root.
func checkCodeword(t *testing.T, field *Field, codeword []int, ecWords int) {
	t.Helper()
	poly := newPoly(field, codeword)
	for i := 0; i < ecWords; i++ {
		root := field.Exp(i + field.GeneratorBase())
		if v := poly.EvaluateAt(root); v != 0 {
			t.Errorf("codeword(root %d) = %d, want 0", i, v)
		}
	}
}

func TestRSEncodeQRField(t *testing.T) {
	field := QRField
	dataSize := 10
	ecSize := 7
	toEncode := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		toEncode[i] = i + 1
	}

	enc := NewRSEncoder(field)
	enc.Encode(toEncode, ecSize)

	for i := 0; i < dataSize; i++ {
		if toEncode[i] != i+1 {
			t.Errorf("data[%d] = %d, want %d", i, toEncode[i], i+1)
		}
	}
	checkCodeword(t, field, toEncode, ecSize)
}

func TestRSEncodeKnownQRVector(t *testing.T) {
	// "HELLO WORLD" as version 1-M data codewords with 10 EC codewords,
	// a worked example in the QR literature.
	data := []int{
		32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17,
	}
	wantEC := []int{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}

	toEncode := make([]int, len(data)+len(wantEC))
	copy(toEncode, data)
	enc := NewRSEncoder(QRField)
	enc.Encode(toEncode, len(wantEC))

	for i, want := range wantEC {
		if got := toEncode[len(data)+i]; got != want {
			t.Errorf("ec[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestRSEncodeDataMatrixField(t *testing.T) {
	field := DataMatrixField
	toEncode := make([]int, 3+5)
	// ECC 200 codewords for "123456"
	copy(toEncode, []int{142, 164, 186})

	enc := NewRSEncoder(field)
	enc.Encode(toEncode, 5)
	checkCodeword(t, field, toEncode, 5)

	want := []int{114, 25, 5, 88, 102}
	for i, w := range want {
		if got := toEncode[3+i]; got != w {
			t.Errorf("ec[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestRSEncodeAztecFields(t *testing.T) {
	fields := []*Field{AztecData6, AztecData8, AztecData10, AztecData12, AztecParam}
	for _, field := range fields {
		dataSize := 4
		ecSize := 3
		toEncode := make([]int, dataSize+ecSize)
		for i := 0; i < dataSize; i++ {
			toEncode[i] = (i * 7) % field.Size()
		}
		enc := NewRSEncoder(field)
		enc.Encode(toEncode, ecSize)
		checkCodeword(t, field, toEncode, ecSize)
	}
}

func TestField929Basics(t *testing.T) {
	f := Field929
	if f.Size() != 929 {
		t.Errorf("size = %d, want 929", f.Size())
	}
	if f.Exp(0) != 1 || f.Exp(1) != 3 || f.Exp(2) != 9 {
		t.Error("exp table should be powers of 3")
	}
	if f.Add(900, 50) != 21 {
		t.Errorf("Add(900, 50) = %d, want 21", f.Add(900, 50))
	}
	if f.Subtract(3, 10) != 922 {
		t.Errorf("Subtract(3, 10) = %d, want 922", f.Subtract(3, 10))
	}
	for a := 1; a < 929; a++ {
		if got := f.Exp(f.Log(a)); got != a {
			t.Fatalf("exp(log(%d)) = %d", a, got)
		}
	}
}

func TestRS929EncodeKnownVector(t *testing.T) {
	// The worked PDF417 example: data codewords for "PDF417" at security
	// level 1 (4 EC codewords).
	data := []int{5, 453, 178, 121, 239}
	want := []int{452, 327, 657, 619}

	enc := NewRS929Encoder(Field929)
	got := enc.Encode(data, 4)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ec[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRS929GeneratorMatchesReference(t *testing.T) {
	// g(x) for 2 EC codewords is (x-3)(x-9) = x^2 + 917x + 27 mod 929.
	enc := NewRS929Encoder(Field929)
	coeff := enc.generator(2)
	if coeff[0] != 27 || coeff[1] != 917 {
		t.Errorf("generator(2) = %v, want [27 917]", coeff)
	}
}
