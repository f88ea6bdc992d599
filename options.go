package symbology

import (
	"fmt"
	"sort"
	"strconv"
)

// Options carries symbology-specific encode settings as key/value pairs.
// Recognized keys are documented by each symbology package; an unrecognized
// key fails encoding with ErrUnsupportedOption.
type Options map[string]string

// Get returns the value for key, or def when the key is absent.
func (o Options) Get(key, def string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

// Int returns the integer value for key, or def when the key is absent.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option %q: not an integer: %w", key, ErrUnsupportedOption)
	}
	return n, nil
}

// Check verifies that every present key is one of the allowed keys.
func (o Options) Check(allowed ...string) error {
	for key := range o {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("option %q: %w", key, ErrUnsupportedOption)
		}
	}
	return nil
}

// Keys returns the present option keys in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
