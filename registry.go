package symbology

import (
	"fmt"
	"sort"
)

var specs = map[SymbologyID]*Spec{}

// Register records a symbology spec. It is intended to be called from the
// init function of a symbology package and panics on conflict.
func Register(spec *Spec) {
	if spec.New == nil {
		panic(fmt.Sprintf("symbology: register %s without encoder factory", spec.ID))
	}
	if _, dup := specs[spec.ID]; dup {
		panic(fmt.Sprintf("symbology: register %s twice", spec.ID))
	}
	specs[spec.ID] = spec
}

// Lookup returns the spec registered for id.
func Lookup(id SymbologyID) (*Spec, error) {
	spec, ok := specs[id]
	if !ok {
		return nil, wrapUnknown(id.String())
	}
	return spec, nil
}

// Symbologies returns the registered symbologies in identifier order.
func Symbologies() []*Spec {
	out := make([]*Spec, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Encode validates contents against the symbology's charset and length rules
// and encodes it into a symbol. A nil opts means defaults throughout.
func Encode(id SymbologyID, contents string, opts Options) (*Symbol, error) {
	spec, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(contents); err != nil {
		return nil, err
	}
	return spec.New().Encode(contents, opts)
}
