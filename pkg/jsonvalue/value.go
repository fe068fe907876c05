package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is set.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a decoded JSON value. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	num    json.Number
	str    string
	object map[string]Value
	array  []Value
	raw    json.RawMessage
}

func Null() Value                { return Value{} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

func ObjectValue(m map[string]Value) Value { return Value{kind: KindObject, object: m} }
func ArrayValue(a []Value) Value           { return Value{kind: KindArray, array: a} }

// Parse decodes data into a Value.
func Parse(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("jsonvalue: empty input")
	}

	raw := append(json.RawMessage(nil), data...)
	switch data[0] {
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return fmt.Errorf("jsonvalue: invalid literal %q", data)
		}
		*v = Value{raw: raw}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("jsonvalue: %w", err)
		}
		*v = Value{kind: KindBool, b: b, raw: raw}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("jsonvalue: %w", err)
		}
		*v = Value{kind: KindString, str: s, raw: raw}
	case '{':
		var m map[string]Value
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("jsonvalue: %w", err)
		}
		*v = Value{kind: KindObject, object: m, raw: raw}
	case '[':
		var a []Value
		if err := json.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("jsonvalue: %w", err)
		}
		*v = Value{kind: KindArray, array: a, raw: raw}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("jsonvalue: %w", err)
		}
		*v = Value{kind: KindNumber, num: n, raw: raw}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindString:
		return json.Marshal(v.str)
	case KindObject:
		if v.object == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.object)
	case KindArray:
		if v.array == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.array)
	default:
		return []byte("null"), nil
	}
}

// Bool applies the bool coercion rule.
func (v Value) Bool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindNumber:
		f, err := v.num.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case KindString:
		return parseBoolString(v.str)
	default:
		return false, false
	}
}

// Float applies the number coercion rule.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		f, err := v.num.Float64()
		return f, err == nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int is Float truncated toward zero, failing on fractional values.
func (v Value) Int() (int64, bool) {
	if v.kind == KindNumber {
		if i, err := v.num.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := v.Float()
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// Text applies the string coercion rule: strings verbatim, everything else
// as raw JSON text, null as "".
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	}
	if len(v.raw) > 0 {
		return string(v.raw)
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// Str returns the string member only.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Object applies the object coercion rule.
func (v Value) Object() (map[string]Value, bool) {
	switch v.kind {
	case KindObject:
		return v.object, true
	case KindString:
		inner, err := Parse([]byte(v.str))
		if err != nil || inner.kind != KindObject {
			return nil, false
		}
		return inner.object, true
	default:
		return nil, false
	}
}

func (v Value) Array() ([]Value, bool) {
	return v.array, v.kind == KindArray
}

// Get returns the member key of an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	member, ok := v.object[key]
	return member, ok
}

// Interface converts v into the types encoding/json produces for any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		f, _ := v.num.Float64()
		return f
	case KindString:
		return v.str
	case KindObject:
		m := make(map[string]any, len(v.object))
		for k, member := range v.object {
			m[k] = member.Interface()
		}
		return m
	case KindArray:
		a := make([]any, len(v.array))
		for i, member := range v.array {
			a[i] = member.Interface()
		}
		return a
	default:
		return nil
	}
}

func parseBoolString(s string) (bool, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, false
	}
	return f != 0, true
}
