package component

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// PropertyKind tags the value stored in a Property.
type PropertyKind uint8

const (
	PropertyNone PropertyKind = iota
	PropertyBool
	PropertyInt
	PropertyFloat
	PropertyString
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyBool:
		return "bool"
	case PropertyInt:
		return "int"
	case PropertyFloat:
		return "float"
	case PropertyString:
		return "string"
	default:
		return "none"
	}
}

// Property is a tagged union over bool, int, float64 and string.
type Property struct {
	kind PropertyKind
	b    bool
	i    int
	f    float64
	s    string
}

func BoolProperty(v bool) Property { return Property{kind: PropertyBool, b: v} }
func IntProperty(v int) Property { return Property{kind: PropertyInt, i: v} }
func FloatProperty(v float64) Property { return Property{kind: PropertyFloat, f: v} }
func StringProperty(v string) Property { return Property{kind: PropertyString, s: v} }
func (p Property) Kind() PropertyKind { return p.kind }
func (p Property) IsValid() bool { return p.kind != PropertyNone }
func (p Property) Bool() (bool, bool) { return p.b, p.kind == PropertyBool }
func (p Property) Int() (int, bool) { return p.i, p.kind == PropertyInt }
func (p Property) Float() (float64, bool) { return p.f, p.kind == PropertyFloat }
func (p Property) Str() (string, bool) { return p.s, p.kind == PropertyString }

// Value returns the stored value as an interface, or nil for an empty Property.
func (p Property) Value() any {
	switch p.kind {
	case PropertyBool:
		return p.b
	case PropertyInt:
		return p.i
	case PropertyFloat:
		return p.f
	case PropertyString:
		return p.s
	default:
		return nil
	}
}

func (p Property) String() string {
	switch p.kind {
	case PropertyBool:
		return strconv.FormatBool(p.b)
	case PropertyInt:
		return strconv.Itoa(p.i)
	case PropertyFloat:
		return formatFloat(p.f)
	case PropertyString:
		return p.s
	default:
		return ""
	}
}

// MarshalJSON writes the value as a plain JSON scalar. Floats always carry a
// decimal point so they decode back as floats.
func (p Property) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PropertyBool, PropertyInt, PropertyString:
		return json.Marshal(p.Value())
	case PropertyFloat:
		if math.IsNaN(p.f) || math.IsInf(p.f, 0) {
			return nil, fmt.Errorf("property: unsupported float value %v", p.f)
		}
		return []byte(formatFloat(p.f)), nil
	default:
		return []byte("null"), nil
	}
}

func (p *Property) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*p = BoolProperty(v)
	case string:
		*p = StringProperty(v)
	case json.Number:
		if i, err := strconv.Atoi(v.String()); err == nil {
			*p = IntProperty(i)
			return nil
		}
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("property: parse number %q: %w", v.String(), err)
		}
		*p = FloatProperty(f)
	case nil:
		*p = Property{}
	default:
		return fmt.Errorf("property: unsupported json value %s", string(data))
	}
	return nil
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}

// Properties is a string-keyed bag of typed values. Typed getters never fail:
// a missing key or a value of another kind yields the caller's default.
type Properties map[string]Property

// Set stores v under key. A nil bag is left untouched.
func (p Properties) Set(key string, v Property) {
	if p == nil {
		return
	}
	p[key] = v
}

func (p Properties) Get(key string) (Property, bool) {
	v, ok := p[key]
	return v, ok
}

func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Properties) Delete(key string) {
	delete(p, key)
}

// Keys returns the stored keys in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Properties) GetBool(key string, def bool) bool {
	if v, ok := p[key].Bool(); ok {
		return v
	}
	return def
}

func (p Properties) GetInt(key string, def int) int {
	if v, ok := p[key].Int(); ok {
		return v
	}
	return def
}

func (p Properties) GetFloat(key string, def float64) float64 {
	if v, ok := p[key].Float(); ok {
		return v
	}
	return def
}

func (p Properties) GetString(key string, def string) string {
	if v, ok := p[key].Str(); ok {
		return v
	}
	return def
}

// PropertyValue lists the Go types a Property can hold.
type PropertyValue interface {
	bool | int | float64 | string
}

// GetProperty reads key as T, returning def when the key is absent or holds
// another kind.
func GetProperty[T PropertyValue](p Properties, key string, def T) T {
	prop, ok := p[key]
	if !ok {
		return def
	}
	if v, ok := prop.Value().(T); ok {
		return v
	}
	return def
}

// SetProperty stores v under key with the matching kind.
func SetProperty[T PropertyValue](p Properties, key string, v T) {
	p.Set(key, PropertyOf(v))
}

// PropertyOf wraps a Go value in a Property.
func PropertyOf[T PropertyValue](v T) Property {
	switch x := any(v).(type) {
	case bool:
		return BoolProperty(x)
	case int:
		return IntProperty(x)
	case float64:
		return FloatProperty(x)
	case string:
		return StringProperty(x)
	}
	return Property{}
}
