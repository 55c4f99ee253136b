package schema

import (
	"slices"
	"strconv"
	"strings"
)

// Optional attribute keys.
const (
	KeyDefault    = "default"
	KeyDimensions = "dimensions"
	KeyContained  = "contained"
	KeyEnumType   = "enumType"
)

// Attribute is a named, typed member of a blueprint.
type Attribute struct {
	// Name of the attribute as declared in the model.
	Name string
	// Description of the attribute.
	Description string

	typ    string
	values map[string]Value
}

// NewAttribute returns an attribute with the given name and type. The type
// is either a primitive name or a reference to a blueprint.
func NewAttribute(name, typ string) *Attribute {
	return &Attribute{Name: name, typ: typ, values: make(map[string]Value)}
}

// Type returns the declared attribute type.
func (a *Attribute) Type() string { return a.typ }

// Set stores an optional key. Setting an absent value removes the key.
func (a *Attribute) Set(key string, v Value) *Attribute {
	if a.values == nil {
		a.values = make(map[string]Value)
	}
	if v.IsAbsent() {
		delete(a.values, key)
		return a
	}
	a.values[key] = v
	return a
}

// Lookup returns the value stored under key. ok is false when the key is
// absent, which is different from a present value that happens to be
// empty or false.
func (a *Attribute) Lookup(key string) (v Value, ok bool) {
	v, ok = a.values[key]
	return v, ok
}

// Keys returns the optional keys set on the attribute, sorted.
func (a *Attribute) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Describe sets the description.
func (a *Attribute) Describe(s string) *Attribute {
	a.Description = s
	return a
}

// SetDefault sets the default value.
func (a *Attribute) SetDefault(v Value) *Attribute { return a.Set(KeyDefault, v) }

// SetContained sets the containment flag.
func (a *Attribute) SetContained(b bool) *Attribute { return a.Set(KeyContained, Bool(b)) }

// SetDimensions sets the dimension descriptor, e.g. "*" or "*,*".
func (a *Attribute) SetDimensions(dims string) *Attribute { return a.Set(KeyDimensions, String(dims)) }

// SetEnumType sets the enum type reference.
func (a *Attribute) SetEnumType(ref string) *Attribute { return a.Set(KeyEnumType, String(ref)) }

// Default returns the default value, or the absent value.
func (a *Attribute) Default() Value {
	v, _ := a.Lookup(KeyDefault)
	return v
}

// EnumType returns the enum type reference if the attribute has one.
func (a *Attribute) EnumType() (string, bool) {
	v, ok := a.Lookup(KeyEnumType)
	if !ok || v.Text() == "" {
		return "", false
	}
	return v.Text(), true
}

// Dimensions returns the dimension descriptors of the attribute.
// An attribute with at least one dimension is array-valued.
func (a *Attribute) Dimensions() []string {
	v, ok := a.Lookup(KeyDimensions)
	if !ok {
		return nil
	}
	var dims []string
	for _, d := range strings.Split(v.Text(), ",") {
		if d = strings.TrimSpace(d); d != "" {
			dims = append(dims, d)
		}
	}
	return dims
}

// IsArray reports whether the attribute has dimensions.
func (a *Attribute) IsArray() bool { return len(a.Dimensions()) > 0 }

// Contained reports whether the referenced entity is owned by the
// entity holding the attribute. Attributes are contained unless the
// model says otherwise.
func (a *Attribute) Contained() bool {
	v, ok := a.Lookup(KeyContained)
	if !ok {
		return true
	}
	if b, ok := v.AsBool(); ok {
		return b
	}
	b, err := strconv.ParseBool(v.Text())
	if err != nil {
		return true
	}
	return b
}
