package dmt

import "strings"

// Blueprint describes a generated entity type.
type Blueprint struct {
	// Name of the blueprint.
	Name string `json:"name" yaml:"name"`
	// Type is the absolute reference of the blueprint.
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Extends     []string `json:"extends,omitempty" yaml:"extends,omitempty"`
	// Attributes in field order, inherited attributes first.
	Attributes []*Attribute `json:"attributes" yaml:"attributes"`
}

// Attribute returns the named attribute.
func (b *Blueprint) Attribute(name string) (*Attribute, bool) {
	for _, a := range b.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Attribute describes one attribute of a blueprint.
type Attribute struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Default is the raw default value, empty when none was declared.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	// Dimensions is "*" for one-dimensional arrays and empty for single values.
	Dimensions string `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Contained  bool   `json:"contained" yaml:"contained"`
	EnumType   string `json:"enumType,omitempty" yaml:"enumType,omitempty"`
}

// IsArray reports whether the attribute holds a list of values.
func (a *Attribute) IsArray() bool {
	return strings.TrimSpace(a.Dimensions) != ""
}
