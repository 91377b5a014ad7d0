package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the discriminant of a Value. A Value's Kind is its type; schema
// slots only ever look at the Kind of their prototype.
type Kind uint8

const (
	KindText Kind = iota
	KindInt32
	KindUInt32
	KindFloat32
	KindFloat64
	KindBool
	KindInt64
	KindUInt64
)

var kindNames = [...]string{
	KindText:    "TEXT",
	KindInt32:   "INT32",
	KindUInt32:  "UINT32",
	KindFloat32: "FLOAT32",
	KindFloat64: "FLOAT64",
	KindBool:    "BOOL",
	KindInt64:   "INT64",
	KindUInt64:  "UINT64",
}

var constructorNames = [...]string{
	KindText:    "Text",
	KindInt32:   "Int32",
	KindUInt32:  "UInt32",
	KindFloat32: "Float32",
	KindFloat64: "Float64",
	KindBool:    "Bool",
	KindInt64:   "Int64",
	KindUInt64:  "UInt64",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// Value is a tagged primitive datum. Only the payload field that matches
// kind is meaningful; the zero Value is Text("").
type Value struct {
	kind Kind
	s    string
	i    int64
	u    uint64
	f    float64
	b    bool
}

func Text(s string) Value     { return Value{kind: KindText, s: s} }
func Int32(v int32) Value     { return Value{kind: KindInt32, i: int64(v)} }
func UInt32(v uint32) Value   { return Value{kind: KindUInt32, u: uint64(v)} }
func Float32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }
func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func Int64(v int64) Value     { return Value{kind: KindInt64, i: v} }
func UInt64(v uint64) Value   { return Value{kind: KindUInt64, u: v} }

// Zero returns the zero-payload prototype for kind, suitable as a schema slot.
func Zero(kind Kind) Value {
	return Value{kind: kind}
}

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

// Equal reports whether v and o carry the same kind and the same payload.
// Row matching uses this comparison.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.s == o.s
	case KindInt32, KindInt64:
		return v.i == o.i
	case KindUInt32, KindUInt64:
		return v.u == o.u
	case KindFloat32, KindFloat64:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	}
	return false
}

// SameKind reports whether v and o share a discriminant, ignoring payload.
// Schema conformance uses this comparison.
func (v Value) SameKind(o Value) bool {
	return v.kind == o.kind
}

// Interface returns the payload as its natural Go type.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt32:
		return int32(v.i)
	case KindUInt32:
		return uint32(v.u)
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindBool:
		return v.b
	case KindInt64:
		return v.i
	case KindUInt64:
		return v.u
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUInt32, KindUInt64:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// GoString renders the value with its kind, e.g. Int32(7) or Text("a").
func (v Value) GoString() string {
	if v.kind == KindText {
		return fmt.Sprintf("Text(%q)", v.s)
	}
	if !v.kind.Valid() {
		return v.kind.String()
	}
	return fmt.Sprintf("%s(%s)", constructorNames[v.kind], v.String())
}

// ParseKind maps a type name to a Kind. Names are case-insensitive and
// accept a few common aliases.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "string":
		return KindText, nil
	case "int32", "int", "integer":
		return KindInt32, nil
	case "uint32", "uint":
		return KindUInt32, nil
	case "float32", "float":
		return KindFloat32, nil
	case "float64", "double":
		return KindFloat64, nil
	case "bool", "boolean":
		return KindBool, nil
	case "int64", "bigint":
		return KindInt64, nil
	case "uint64", "biguint":
		return KindUInt64, nil
	}
	return 0, fmt.Errorf("unknown value kind %q", name)
}

// Coerce converts a loosely typed input (as decoded from TOML or JSON) into
// a Value of the given kind. Integers must fit the target range; floats are
// accepted for integer kinds only when they carry no fraction.
func Coerce(kind Kind, raw interface{}) (Value, error) {
	switch kind {
	case KindText:
		s, ok := raw.(string)
		if !ok {
			return Value{}, coerceError(kind, raw)
		}
		return Text(s), nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, coerceError(kind, raw)
		}
		return Bool(b), nil

	case KindFloat32, KindFloat64:
		var f float64
		switch n := raw.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		default:
			i, ok := normalizeToInt64(raw)
			if !ok {
				return Value{}, coerceError(kind, raw)
			}
			f = float64(i)
		}
		if kind == KindFloat32 {
			if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
				return Value{}, fmt.Errorf("value %v overflows %s", raw, kind)
			}
			return Float32(float32(f)), nil
		}
		return Float64(f), nil

	case KindInt32, KindInt64:
		i, ok := normalizeToInt64(raw)
		if !ok {
			return Value{}, coerceError(kind, raw)
		}
		if kind == KindInt32 {
			if i < math.MinInt32 || i > math.MaxInt32 {
				return Value{}, fmt.Errorf("value %v overflows %s", raw, kind)
			}
			return Int32(int32(i)), nil
		}
		return Int64(i), nil

	case KindUInt32, KindUInt64:
		if u, ok := raw.(uint64); ok {
			if kind == KindUInt32 && u > math.MaxUint32 {
				return Value{}, fmt.Errorf("value %v overflows %s", raw, kind)
			}
			if kind == KindUInt32 {
				return UInt32(uint32(u)), nil
			}
			return UInt64(u), nil
		}
		i, ok := normalizeToInt64(raw)
		if !ok {
			return Value{}, coerceError(kind, raw)
		}
		if i < 0 {
			return Value{}, fmt.Errorf("negative value %v for %s", raw, kind)
		}
		if kind == KindUInt32 {
			if i > math.MaxUint32 {
				return Value{}, fmt.Errorf("value %v overflows %s", raw, kind)
			}
			return UInt32(uint32(i)), nil
		}
		return UInt64(uint64(i)), nil
	}
	return Value{}, fmt.Errorf("unknown value kind %s", kind)
}

// normalizeToInt64 folds the integer shapes decoders produce into int64.
func normalizeToInt64(val interface{}) (int64, bool) {
	switch v := val.(type) {
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), true
		}
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	}
	return 0, false
}

func coerceError(kind Kind, raw interface{}) error {
	return fmt.Errorf("expected %s, got %T", kind, raw)
}
