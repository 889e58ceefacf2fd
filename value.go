package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
)

// Kind is the type of a claim Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Value is a single claim value: a string, a number, a boolean, a nested
// object, an array or null. Numbers keep their JSON literal so that they
// survive encode and decode without any float rounding.
//
// The zero Value is null.
type Value struct {
	kind Kind
	str  string // string contents or number literal.
	b    bool
	obj  *Map
	arr  []Value
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns a number Value.
func Int(n int64) Value { return Value{kind: KindNumber, str: strconv.FormatInt(n, 10)} }

// Float returns a number Value. NaN and infinities have no JSON
// representation and are reported by Encode as ErrInvalidClaims.
func Float(f float64) Value {
	return Value{kind: KindNumber, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Number returns a number Value from its JSON literal, e.g. "1.5e3".
// Anything but a number literal is reported by Encode as ErrInvalidClaims.
func Number(n json.Number) Value { return Value{kind: KindNumber, str: n.String()} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Object returns an object Value. A nil map is an empty object.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindObject, obj: m}
}

// Array returns an array Value.
func Array(values ...Value) Value { return Value{kind: KindArray, arr: values} }

// Null returns the null Value.
func Null() Value { return Value{} }

// Kind returns the type of the value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string contents, ok is false if the value is not a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Number returns the JSON literal of a number value.
func (v Value) Number() (json.Number, bool) { return json.Number(v.str), v.kind == KindNumber }

// Int64 returns the number as an integer. Fractional numbers are truncated.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	if n, err := strconv.ParseInt(v.str, 10, 64); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(v.str, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}

	return int64(f), true
}

// Float64 returns the number as a float.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	f, err := strconv.ParseFloat(v.str, 64)
	return f, err == nil
}

// Boolean returns the boolean contents.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Object returns the nested object, nil if the value is not an object.
func (v Value) Object() *Map {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Array returns the array elements, nil if the value is not an array.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Interface converts the value to the types encoding/json produces with
// UseNumber: string, json.Number, bool, map[string]any, []any or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return json.Number(v.str)
	case KindBool:
		return v.b
	case KindObject:
		return v.obj.Interface()
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether two values are identical, number literals included.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindString, KindNumber:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	case KindObject:
		return v.obj.Equal(other.obj)
	case KindArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	default:
		return true
	}
}

// MarshalJSON writes the canonical form of the value.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindNumber:
		if !isNumberLiteral(v.str) {
			return fmt.Errorf("%w: number %q", ErrInvalidClaims, v.str)
		}
		buf.WriteString(v.str)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindObject:
		return v.obj.writeJSON(buf)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("%w: value kind %d", ErrInvalidClaims, v.kind)
	}

	return nil
}

// isNumberLiteral reports whether s is a JSON number:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func isNumberLiteral(s string) bool {
	digits := func(i int) int {
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i
	}

	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		i = digits(i + 1)
	default:
		return false
	}

	if i < len(s) && s[i] == '.' {
		j := digits(i + 1)
		if j == i+1 {
			return false
		}
		i = j
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := digits(i)
		if j == i {
			return false
		}
		i = j
	}

	return i == len(s)
}

// Map is an ordered mapping of claim names to values.
//
// Keys are kept sorted, so iteration order and serialization are canonical:
// the same logical content always produces the same bytes.
// A Map is not safe for concurrent mutation.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// MapOf builds a Map from a Go map.
func MapOf(pairs map[string]Value) *Map {
	m := NewMap()
	for k, v := range pairs {
		m.Set(k, v)
	}
	return m
}

// Set stores "value" under "key", replacing any previous value.
func (m *Map) Set(key string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}

	if _, exists := m.values[key]; !exists {
		i, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, i, key)
	}
	m.values[key] = value
}

// Get returns the value stored under "key".
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes "key".
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}

	if _, exists := m.values[key]; !exists {
		return
	}

	delete(m.values, key)
	if i, found := slices.BinarySearch(m.keys, key); found {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (m *Map) Range(fn func(key string, value Value) bool) {
	if m == nil {
		return
	}

	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Equal reports whether both maps hold the same entries.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}

	equal := true
	m.Range(func(k string, v Value) bool {
		o, ok := other.Get(k)
		equal = ok && v.Equal(o)
		return equal
	})
	return equal
}

// Interface converts the map to a map[string]any.
func (m *Map) Interface() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(k string, v Value) bool {
		out[k] = v.Interface()
		return true
	})
	return out
}

// MarshalJSON writes the canonical form of the map.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a strict JSON object (see parseObject).
func (m *Map) UnmarshalJSON(data []byte) error {
	parsed, err := parseObject(data)
	if err != nil {
		return err
	}

	*m = *parsed
	return nil
}

func (m *Map) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	var err error
	i := 0
	m.Range(func(k string, v Value) bool {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		err = writeMember(buf, k, v)
		return err == nil
	})
	if err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeMember(buf *bytes.Buffer, key string, v Value) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return v.writeJSON(buf)
}

// maxDepth bounds nesting of parsed claim objects.
const maxDepth = 32

var errJSON = errors.New("invalid JSON object")

// parseObject parses "data" as a single JSON object. Unlike json.Unmarshal
// it rejects duplicate member names, trailing data and excessive nesting,
// and it keeps number literals untouched.
func parseObject(data []byte) (*Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errJSON, err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: not an object", errJSON)
	}

	m, err := parseMembers(dec, 1)
	if err != nil {
		return nil, err
	}

	if _, err = dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", errJSON)
	}

	return m, nil
}

func parseMembers(dec *json.Decoder, depth int) (*Map, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting too deep", errJSON)
	}

	m := NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errJSON, err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: member name", errJSON)
		}

		if _, dup := m.values[key]; dup {
			return nil, fmt.Errorf("%w: duplicate member %q", errJSON, key)
		}

		v, err := parseValue(dec, depth)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}

	// closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", errJSON, err)
	}

	return m, nil
}

func parseValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", errJSON, err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case json.Delim:
		switch t {
		case '{':
			m, err := parseMembers(dec, depth+1)
			if err != nil {
				return Value{}, err
			}
			return Object(m), nil
		case '[':
			if depth+1 > maxDepth {
				return Value{}, fmt.Errorf("%w: nesting too deep", errJSON)
			}

			var items []Value
			for dec.More() {
				item, err := parseValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			// closing ']'.
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("%w: %v", errJSON, err)
			}
			return Array(items...), nil
		}
	}

	return Value{}, fmt.Errorf("%w: unexpected token %v", errJSON, tok)
}
