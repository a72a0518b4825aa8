// Package style implements style records: property bags that are merged along
// a chain of base and override records and have their symbolic constants
// substituted at resolve time.
package style

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a style property value. It is one of Num, Color, Enum, Bool, Str,
// Record and *Expr. Only *Expr is unresolved.
type Value interface{ isValue() }

// Num is a numeric property value.
type Num float64

// Enum is a bare identifier, such as Fill, Fit or Down.
type Enum string

// Bool is a boolean property value.
type Bool bool

// Str is a string that is not an identifier, such as a resource path.
type Str string

// Record maps property names to values. Records are never modified after
// construction; all operations in this package return new records.
type Record map[string]Value

func (Num) isValue()    {}
func (Color) isValue()  {}
func (Enum) isValue()   {}
func (Bool) isValue()   {}
func (Str) isValue()    {}
func (Record) isValue() {}
func (*Expr) isValue()  {}

// FromAny converts plain data, as produced by decoding YAML or JSON into an
// interface{}, into a Value. Strings are classified as follows: a leading "#"
// makes a Color, a leading "(" makes an Expr, identifiers make an Enum, and
// anything else makes a Str.
func FromAny(v any) (Value, error) {
	switch v := v.(type) {
	case int:
		return Num(v), nil
	case int64:
		return Num(v), nil
	case uint64:
		return Num(v), nil
	case float64:
		return Num(v), nil
	case bool:
		return Bool(v), nil
	case string:
		return parseString(v)
	case map[string]any:
		rec := make(Record, len(v))
		for key, elem := range v {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			rec[key] = converted
		}
		return rec, nil
	case nil:
		return Record{}, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}

// RecordFromAny is like FromAny, but requires the value to be a mapping.
func RecordFromAny(v any) (Record, error) {
	value, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	rec, ok := value.(Record)
	if !ok {
		return nil, fmt.Errorf("want a mapping, got %s", Repr(value))
	}
	return rec, nil
}

func parseString(s string) (Value, error) {
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(s, "("):
		return ParseExpr(s)
	case isIdentifier(s):
		return Enum(s), nil
	}
	return Str(s), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !(r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || i > 0 && '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Record:
		b, ok := b.(Record)
		if !ok || len(a) != len(b) {
			return false
		}
		for k, va := range a {
			vb, ok := b[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case *Expr:
		b, ok := b.(*Expr)
		return ok && a.src == b.src
	default:
		return a == b
	}
}

// Repr returns a compact textual representation of a value, with record keys
// sorted.
func Repr(v Value) string {
	switch v := v.(type) {
	case Num:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case Color:
		return v.String()
	case Enum:
		return string(v)
	case Bool:
		return strconv.FormatBool(bool(v))
	case Str:
		return strconv.Quote(string(v))
	case Record:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(Repr(v[k]))
		}
		sb.WriteByte('}')
		return sb.String()
	case *Expr:
		return v.src
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("<unknown %T>", v)
}

// Keys returns the keys of the record in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup follows a path of keys through nested records.
func (r Record) Lookup(keys ...string) (Value, bool) {
	var v Value = r
	for _, key := range keys {
		rec, ok := v.(Record)
		if !ok {
			return nil, false
		}
		v, ok = rec[key]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

// Num returns the numeric value at the given key path.
func (r Record) Num(keys ...string) (float64, bool) {
	v, ok := r.Lookup(keys...)
	n, isNum := v.(Num)
	return float64(n), ok && isNum
}

// Enum returns the identifier at the given key path.
func (r Record) Enum(keys ...string) (string, bool) {
	v, ok := r.Lookup(keys...)
	e, isEnum := v.(Enum)
	return string(e), ok && isEnum
}

// Color returns the color at the given key path.
func (r Record) Color(keys ...string) (Color, bool) {
	v, ok := r.Lookup(keys...)
	c, isColor := v.(Color)
	return c, ok && isColor
}

// Bool returns the boolean at the given key path.
func (r Record) Bool(keys ...string) (bool, bool) {
	v, ok := r.Lookup(keys...)
	b, isBool := v.(Bool)
	return bool(b), ok && isBool
}

// Sub returns the nested record at the given key path, or nil.
func (r Record) Sub(keys ...string) Record {
	v, _ := r.Lookup(keys...)
	rec, _ := v.(Record)
	return rec
}
