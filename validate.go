package symbology

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Validate checks contents against the symbology's charset and length rules.
// Charset violations are collected rather than reported one at a time: the
// returned error combines one wrapped ErrInvalidCharacter per offending
// position.
func Validate(id SymbologyID, contents string) error {
	spec, err := Lookup(id)
	if err != nil {
		return err
	}
	return spec.Validate(contents)
}

// Validate checks contents against the spec's charset and length rules.
func (s *Spec) Validate(contents string) error {
	if len(contents) == 0 {
		return fmt.Errorf("%s: %w", s.ID, ErrEmptyPayload)
	}
	if len(contents) < s.MinLength {
		return fmt.Errorf("%s: payload length %d, need at least %d: %w",
			s.ID, len(contents), s.MinLength, ErrInvalidLength)
	}
	if s.MaxLength > 0 && len(contents) > s.MaxLength {
		return fmt.Errorf("%s: payload length %d, at most %d allowed: %w",
			s.ID, len(contents), s.MaxLength, ErrInvalidLength)
	}

	var violations error
	switch s.Charset {
	case CharsetNumeric:
		for i := 0; i < len(contents); i++ {
			if c := contents[i]; c < '0' || c > '9' {
				violations = multierr.Append(violations, fmt.Errorf(
					"%s: non-digit %q at position %d: %w", s.ID, c, i, ErrInvalidCharacter))
			}
		}
	case CharsetAlphabet:
		for i := 0; i < len(contents); i++ {
			if !strings.ContainsRune(s.Alphabet, rune(contents[i])) {
				violations = multierr.Append(violations, fmt.Errorf(
					"%s: character %q at position %d not in alphabet: %w",
					s.ID, contents[i], i, ErrInvalidCharacter))
			}
		}
	case CharsetByte:
		// Any byte sequence is acceptable.
	}
	return violations
}
