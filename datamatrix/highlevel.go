package datamatrix

// Special codeword values.
const (
	asciiUpperShift = 235
	asciiPad        = 129
	latchToC40      = 230
	unlatchASCII    = 254
)

// encodeHighLevel turns a payload into data codewords, using ASCII mode with
// digit pair packing, switching to C40 for long upper-case runs when that is
// shorter.
func encodeHighLevel(data []byte) []byte {
	asciiResult := encodeASCII(data)
	c40Result := encodeWithC40(data)
	if c40Result != nil && len(c40Result) < len(asciiResult) {
		return c40Result
	}
	return asciiResult
}

// encodeASCII encodes in pure ASCII mode: values 0-127 become value+1,
// digit pairs become pair+130, and bytes above 127 are upper-shifted.
func encodeASCII(data []byte) []byte {
	result := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		c := data[i]
		if c >= '0' && c <= '9' && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '9' {
			pairValue := (int(c)-'0')*10 + int(data[i+1]) - '0'
			result = append(result, byte(pairValue+130))
			i += 2
			continue
		}
		if c <= 127 {
			result = append(result, c+1)
		} else {
			result = append(result, asciiUpperShift, c-128+1)
		}
		i++
	}
	return result
}

// encodeWithC40 packs runs of C40-friendly characters (space, digits, upper
// case) three to two codewords, falling back to ASCII elsewhere. The latch
// and unlatch overhead only pays off on runs of six or more.
func encodeWithC40(data []byte) []byte {
	result := make([]byte, 0, len(data))
	i := 0

	for i < len(data) {
		c40Len := 0
		for j := i; j < len(data); j++ {
			if !isBasicC40(data[j]) {
				break
			}
			c40Len++
		}

		if c40Len >= 6 {
			result = append(result, latchToC40)
			end := i + c40Len
			var buf []int
			for j := i; j < end; j++ {
				buf = append(buf, c40Value(data[j]))
			}

			k := 0
			for k+3 <= len(buf) {
				v := buf[k]*1600 + buf[k+1]*40 + buf[k+2] + 1
				result = append(result, byte(v/256), byte(v%256))
				k += 3
			}

			// leftover values go back through ASCII mode
			remaining := len(buf) - k
			i = end - remaining

			result = append(result, unlatchASCII)
		} else {
			c := data[i]
			if c >= '0' && c <= '9' && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '9' {
				pairValue := (int(c)-'0')*10 + int(data[i+1]) - '0'
				result = append(result, byte(pairValue+130))
				i += 2
				continue
			}
			if c <= 127 {
				result = append(result, c+1)
			} else {
				result = append(result, asciiUpperShift, c-128+1)
			}
			i++
		}
	}

	return result
}

func isBasicC40(b byte) bool {
	return b == ' ' || (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z')
}

func c40Value(b byte) int {
	switch {
	case b == ' ':
		return 3
	case b >= '0' && b <= '9':
		return int(b-'0') + 4
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 14
	}
	return 0
}

// randomize253State computes the pseudo-random pad codeword for a 1-based
// codeword position.
func randomize253State(codeword byte, position int) byte {
	pseudoRandom := ((149 * position) % 253) + 1
	tmp := int(codeword) + pseudoRandom
	if tmp > 254 {
		tmp -= 254
	}
	return byte(tmp)
}

// padCodewords fills the remaining data capacity with the pad codeword
// followed by 253-state randomized pads.
func padCodewords(codewords []byte, capacity int) []byte {
	if len(codewords) >= capacity {
		return codewords
	}
	result := make([]byte, capacity)
	copy(result, codewords)

	result[len(codewords)] = asciiPad
	for i := len(codewords) + 1; i < capacity; i++ {
		result[i] = randomize253State(asciiPad, i+1)
	}
	return result
}
