package jsonvalue

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bool is a boolean that also accepts 0/1 and string forms when decoding.
// null decodes to false. It always encodes as a JSON boolean.
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	if v.IsNull() {
		*b = false
		return nil
	}
	parsed, ok := v.Bool()
	if !ok {
		return fmt.Errorf("jsonvalue: cannot convert %s to bool", data)
	}
	*b = Bool(parsed)
	return nil
}

func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// OptionalBool is a Bool that remembers whether a value was present.
// null and "" decode to unset.
type OptionalBool struct {
	Value bool
	Set   bool
}

func (b *OptionalBool) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	if s, ok := v.Str(); v.IsNull() || (ok && strings.TrimSpace(s) == "") {
		*b = OptionalBool{}
		return nil
	}
	parsed, ok := v.Bool()
	if !ok {
		return fmt.Errorf("jsonvalue: cannot convert %s to bool", data)
	}
	*b = OptionalBool{Value: parsed, Set: true}
	return nil
}

func (b OptionalBool) MarshalJSON() ([]byte, error) {
	if !b.Set {
		return []byte("null"), nil
	}
	return json.Marshal(b.Value)
}

// Ptr returns nil when unset.
func (b OptionalBool) Ptr() *bool {
	if !b.Set {
		return nil
	}
	v := b.Value
	return &v
}

// Object is a property bag that accepts either a JSON object or a string
// holding one. Strings that do not contain an object decode to nil.
type Object map[string]Value

func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	if v.IsNull() {
		*o = nil
		return nil
	}
	switch v.Kind() {
	case KindObject, KindString:
		m, _ := v.Object()
		*o = m
		return nil
	default:
		// Unexpected shapes are skipped rather than failing the whole document.
		*o = nil
		return nil
	}
}

// Text returns the string coercion of key, or "" when absent.
func (o Object) Text(key string) string {
	return o[key].Text()
}

// StringMap is like Object but keeps every value as its string coercion.
type StringMap map[string]string

func (m *StringMap) UnmarshalJSON(data []byte) error {
	var o Object
	if err := o.UnmarshalJSON(data); err != nil {
		return err
	}
	if o == nil {
		*m = nil
		return nil
	}
	out := make(StringMap, len(o))
	for k, v := range o {
		out[k] = v.Text()
	}
	*m = out
	return nil
}

// DecodeEnum decodes a JSON string into one of allowed, ignoring case and
// the separators "_" and "-" so that "half_open", "HalfOpen" and "halfOpen"
// all match the same value.
func DecodeEnum[T ~string](data []byte, allowed ...T) (T, error) {
	var zero T
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return zero, fmt.Errorf("jsonvalue: enum must be a string: %w", err)
	}
	want := normalizeEnum(s)
	for _, candidate := range allowed {
		if normalizeEnum(string(candidate)) == want {
			return candidate, nil
		}
	}
	return zero, fmt.Errorf("jsonvalue: unknown enum value %q", s)
}

// EncodeEnum encodes v as a camelCase JSON string.
func EncodeEnum[T ~string](v T) ([]byte, error) {
	return json.Marshal(CamelCase(string(v)))
}

// CamelCase lower-cases the first rune and removes "_"/"-" separators,
// upper-casing the rune after each.
func CamelCase(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upperNext := false
	first := true
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			upperNext = !first
			continue
		}
		switch {
		case first:
			b.WriteRune(unicode.ToLower(r))
			first = false
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		upperNext = false
	}
	return b.String()
}

func normalizeEnum(s string) string {
	var b strings.Builder
	b.Grow(utf8.RuneCountInString(s))
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
