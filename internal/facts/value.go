// internal/facts/value.go

package facts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Value is a fact value: either an integer or a text. The zero Value is
// invalid and never equals anything.
type Value struct {
	kind Kind
	i    int
	s    string
}

// Int returns an integer Value.
func Int(v int) Value {
	return Value{kind: KindInt, i: v}
}

// Text returns a text Value.
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

func (v Value) Kind() Kind {
	return v.kind
}

// AsInt returns the integer payload and whether v is an integer.
func (v Value) AsInt() (int, bool) {
	return v.i, v.kind == KindInt
}

// AsText returns the text payload and whether v is a text.
func (v Value) AsText() (string, bool) {
	return v.s, v.kind == KindText
}

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindText:
		return v.s == o.s
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindText:
		return v.s
	default:
		return "<invalid>"
	}
}

// Interface returns the payload as a plain Go value (int or string), or nil
// for the zero Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindText:
		return v.s
	default:
		return nil
	}
}

// TypeError reports a raw value that cannot be represented as a fact.
type TypeError struct {
	Fact  string
	Value any
}

func (e *TypeError) Error() string {
	if e.Fact == "" {
		return fmt.Sprintf("unsupported fact value %v (%T): must be an integer or a string", e.Value, e.Value)
	}
	return fmt.Sprintf("fact %q: unsupported value %v (%T): must be an integer or a string", e.Fact, e.Value, e.Value)
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53

// FromAny converts a decoded JSON/YAML scalar or a Go integer/string into a
// Value. Non-integer notation such as 70.0 or 1e2 is accepted when it names
// an integer no larger in magnitude than 2^53; anything else is a TypeError.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		if v.kind == KindInvalid {
			return Value{}, &TypeError{Value: raw}
		}
		return v, nil
	case string:
		return Text(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(int(v)), nil
	case int16:
		return Int(int(v)), nil
	case int32:
		return Int(int(v)), nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return Value{}, &TypeError{Value: raw}
		}
		return Int(int(v)), nil
	case uint8:
		return Int(int(v)), nil
	case uint16:
		return Int(int(v)), nil
	case uint32:
		return Int(int(v)), nil
	case json.Number:
		if i, err := strconv.Atoi(v.String()); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil || !isExactInt(f) {
			return Value{}, &TypeError{Value: raw}
		}
		return Int(int(f)), nil
	case float64:
		if !isExactInt(v) {
			return Value{}, &TypeError{Value: raw}
		}
		return Int(int(v)), nil
	default:
		return Value{}, &TypeError{Value: raw}
	}
}

func isExactInt(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) <= maxExactFloat
}
