package load

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/dmtgen/schema"
)

// Document types recognized by the loader.
const (
	KindBlueprint = "blueprint"
	KindEnum      = "enum"
)

// Document is a blueprint or enum file as stored on disk. JSON files
// decode through the same YAML tags.
type Document struct {
	Name        string       `yaml:"name,omitempty"`
	Type        string       `yaml:"type"`
	Description string       `yaml:"description,omitempty"`
	Extends     []string     `yaml:"extends,omitempty"`
	Attributes  []*Attribute `yaml:"attributes,omitempty"`

	// Enum members.
	Values  []string `yaml:"values,omitempty"`
	Labels  []string `yaml:"labels,omitempty"`
	Default string   `yaml:"default,omitempty"`
}

// Attribute is a blueprint attribute as stored on disk.
type Attribute struct {
	Name          string       `yaml:"name"`
	Type          string       `yaml:"type,omitempty"`
	AttributeType string       `yaml:"attributeType"`
	Description   string       `yaml:"description,omitempty"`
	Default       schema.Value `yaml:"default,omitempty"`
	Dimensions    string       `yaml:"dimensions,omitempty"`
	Contained     *bool        `yaml:"contained,omitempty"`
	EnumType      string       `yaml:"enumType,omitempty"`
}

// UnmarshalDocument decodes a JSON or YAML document.
func UnmarshalDocument(buf []byte) (*Document, error) {
	d := &Document{}
	if err := yaml.Unmarshal(buf, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns KindBlueprint or KindEnum according to the document type,
// or the empty string for other documents.
func (d *Document) Kind() string {
	t := strings.TrimPrefix(d.Type, "dmt://")
	switch {
	case t == schema.BlueprintType || strings.HasSuffix(t, "SIMOS/Blueprint"):
		return KindBlueprint
	case t == schema.EnumType || strings.HasSuffix(t, "SIMOS/Enum"):
		return KindEnum
	}
	return ""
}

// Blueprint converts the document to a blueprint.
func (d *Document) Blueprint() (*schema.Blueprint, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("blueprint has no name")
	}
	bp := schema.NewBlueprint(d.Name).Describe(d.Description).Extends(d.Extends...)
	for i, a := range d.Attributes {
		if a.Name == "" {
			return nil, fmt.Errorf("blueprint %q: attribute %d has no name", d.Name, i)
		}
		if a.AttributeType == "" {
			return nil, fmt.Errorf("blueprint %q: attribute %q has no attributeType", d.Name, a.Name)
		}
		if err := bp.AddAttribute(a.attribute()); err != nil {
			return nil, fmt.Errorf("blueprint %q: %w", d.Name, err)
		}
	}
	return bp, nil
}

func (a *Attribute) attribute() *schema.Attribute {
	sa := schema.NewAttribute(a.Name, a.AttributeType).
		Describe(a.Description).
		SetDefault(a.Default)
	if a.Dimensions != "" {
		sa.SetDimensions(a.Dimensions)
	}
	if a.Contained != nil {
		sa.SetContained(*a.Contained)
	}
	if a.EnumType != "" {
		sa.SetEnumType(a.EnumType)
	}
	return sa
}

// Enum converts the document to an enum.
func (d *Document) Enum() (*schema.Enum, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("enum has no name")
	}
	if len(d.Labels) > 0 && len(d.Labels) != len(d.Values) {
		return nil, fmt.Errorf("enum %q: %d labels for %d values", d.Name, len(d.Labels), len(d.Values))
	}
	if d.Default != "" && !slices.Contains(d.Values, d.Default) {
		return nil, fmt.Errorf("enum %q: default %q is not a value", d.Name, d.Default)
	}
	e := schema.NewEnum(d.Name, d.Values...)
	e.Description = d.Description
	e.Labels = d.Labels
	e.Default = d.Default
	return e, nil
}
