// internal/facts/facts.go

package facts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Facts is a bundle of named fact values describing one subject. Rules only
// read from it.
type Facts map[string]Value

// New builds a bundle from raw values, rejecting anything that is not an
// integer or a string. Keys are checked in sorted order so the reported error
// is deterministic.
func New(raw map[string]any) (Facts, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	f := make(Facts, len(raw))
	for _, name := range names {
		if name == "" {
			return nil, errors.New("fact name cannot be empty")
		}
		v, err := FromAny(raw[name])
		if err != nil {
			var typeErr *TypeError
			if errors.As(err, &typeErr) {
				typeErr.Fact = name
			}
			return nil, err
		}
		f[name] = v
	}
	return f, nil
}

// DecodeJSON parses exactly one JSON object into a bundle. Anything after the
// object other than whitespace is an error.
func DecodeJSON(data []byte) (Facts, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode facts JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode facts JSON: unexpected data after the object")
	}
	if raw == nil {
		return nil, errors.New("facts JSON must be an object")
	}
	return New(raw)
}

// Lookup returns the value stored under name.
func (f Facts) Lookup(name string) (Value, bool) {
	v, ok := f[name]
	return v, ok
}

// Int returns the integer stored under name. It reports false when the fact
// is missing or holds text.
func (f Facts) Int(name string) (int, bool) {
	v, ok := f[name]
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// Names returns the fact names in sorted order.
func (f Facts) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
