package gen

import "github.com/syssam/dmtgen/schema"

// The following types are the intermediate representation handed to the
// renderer. A model is built once per entity and not mutated afterwards.
type (
	// GenerationModel is the compiled, render-ready form of one blueprint.
	GenerationModel struct {
		// Name holds the blueprint name as declared.
		Name string `json:"name" yaml:"name"`
		// Type is the Go type name: Name with its first character upper-cased.
		Type string `json:"type" yaml:"type"`
		// Filename is the lower-cased name used for the generated file and package.
		Filename string `json:"filename" yaml:"filename"`
		// BlueprintVarName is the lower-cased name of the blueprint variable.
		BlueprintVarName string `json:"blueprint_var_name" yaml:"blueprint_var_name"`
		// BlueprintType is the name of the blueprint metadata variable.
		BlueprintType string `json:"blueprint_type" yaml:"blueprint_type"`
		// SchemaType is the name of the schema type.
		SchemaType  string `json:"schema_type" yaml:"schema_type"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		Version     int    `json:"version" yaml:"version"`
		// Package and RootPackage hold the name of the generated root package.
		Package     string `json:"package" yaml:"package"`
		RootPackage string `json:"root_package" yaml:"root_package"`
		// MetaPackage is the import path of the blueprint metadata package.
		MetaPackage string `json:"meta_package" yaml:"meta_package"`
		// SchemaPackage is the import path of the schema package.
		SchemaPackage string `json:"schema_package" yaml:"schema_package"`
		// Module is the import path of the entity's own package.
		Module string `json:"module" yaml:"module"`
		// Fields in attribute declaration order.
		Fields []*Field `json:"fields" yaml:"fields"`
		// Imports holds contained entities and enums, in first-encounter order.
		Imports []ImportInfo `json:"imports" yaml:"imports"`
		// CrossReferences holds entities referenced by identifier.
		CrossReferences    []ImportInfo `json:"cross_references" yaml:"cross_references"`
		HasArray           bool         `json:"has_array" yaml:"has_array"`
		HasCrossReferences bool         `json:"has_cross_references" yaml:"has_cross_references"`
		HasSelfReference   bool         `json:"has_self_reference" yaml:"has_self_reference"`

		blueprint *schema.Blueprint
	}

	// Field is one compiled attribute.
	Field struct {
		// Name is the field identifier, suffixed when it collides with a
		// Go keyword.
		Name string `json:"name" yaml:"name"`
		// AttributeName is the attribute name as declared.
		AttributeName string `json:"attribute_name" yaml:"attribute_name"`
		Description   string `json:"description,omitempty" yaml:"description,omitempty"`
		// Type is the resolved type, e.g. "int", "[]float64", "Engine".
		Type string `json:"type" yaml:"type"`
		// ElemType is the element type of arrays, and Type otherwise.
		ElemType string `json:"elem_type" yaml:"elem_type"`
		// Init is the initializer literal.
		Init string `json:"init" yaml:"init"`
		// Setter is the expression assigned from "value".
		Setter           string `json:"setter" yaml:"setter"`
		IsArray          bool   `json:"is_array" yaml:"is_array"`
		IsEntity         bool   `json:"is_entity" yaml:"is_entity"`
		IsEnum           bool   `json:"is_enum" yaml:"is_enum"`
		IsCrossReference bool   `json:"is_cross_reference" yaml:"is_cross_reference"`
		// Module is the import path of the referenced entity or enum.
		Module string `json:"module,omitempty" yaml:"module,omitempty"`
		// EnumDefault is the member identifier of the enum initializer.
		EnumDefault string `json:"enum_default,omitempty" yaml:"enum_default,omitempty"`
	}
)

// Blueprint returns the blueprint the model was compiled from.
func (m *GenerationModel) Blueprint() *schema.Blueprint { return m.blueprint }

// HasImport reports whether the model imports the given type name.
func (m *GenerationModel) HasImport(name string) bool {
	return hasInfo(m.Imports, name)
}

// HasCrossReference reports whether the model cross-references the given type name.
func (m *GenerationModel) HasCrossReference(name string) bool {
	return hasInfo(m.CrossReferences, name)
}

// Field returns the field compiled from the named attribute.
func (m *GenerationModel) Field(attribute string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.AttributeName == attribute {
			return f, true
		}
	}
	return nil, false
}

// PackageName returns the Go package name of the generated entity.
func (m *GenerationModel) PackageName() string { return goPackageName(m.Filename) }

func hasInfo(infos []ImportInfo, name string) bool {
	for _, i := range infos {
		if i.Name == name {
			return true
		}
	}
	return false
}

// IsPrimitive reports whether the field holds a Go scalar.
func (f Field) IsPrimitive() bool { return !f.IsEntity }

// Accessor returns the name of the getter method of the field.
func (f Field) Accessor() string { return pascal(f.AttributeName) }

// SetterName returns the name of the setter method of the field.
func (f Field) SetterName() string { return "Set" + f.Accessor() }
