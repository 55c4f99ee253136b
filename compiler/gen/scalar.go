package gen

import (
	"fmt"
	"strings"
)

// Primitive is one of the closed set of primitive type names a model
// attribute may declare.
type Primitive uint8

// Primitive types.
const (
	PrimitiveNumber Primitive = iota + 1
	PrimitiveDouble
	PrimitiveString
	PrimitiveChar
	PrimitiveInteger
	PrimitiveShort
	PrimitiveBoolean
)

var primitiveNames = [...]string{
	PrimitiveNumber:  "number",
	PrimitiveDouble:  "double",
	PrimitiveString:  "string",
	PrimitiveChar:    "char",
	PrimitiveInteger: "integer",
	PrimitiveShort:   "short",
	PrimitiveBoolean: "boolean",
}

// ParsePrimitive returns the primitive with the given schema name.
func ParsePrimitive(name string) (Primitive, bool) {
	for p, n := range primitiveNames {
		if n != "" && n == name {
			return Primitive(p), true
		}
	}
	return 0, false
}

// String returns the schema name of the primitive.
func (p Primitive) String() string {
	if int(p) < len(primitiveNames) && primitiveNames[p] != "" {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// Scalar returns the Go scalar a primitive resolves to.
func (p Primitive) Scalar() Scalar {
	if int(p) < len(scalarOf) {
		return scalarOf[p]
	}
	return 0
}

// Scalar is a Go scalar type of generated fields.
type Scalar uint8

// Scalar types.
const (
	ScalarFloat Scalar = iota + 1
	ScalarString
	ScalarInt
	ScalarBool
)

var (
	scalarOf = [...]Scalar{
		PrimitiveNumber:  ScalarFloat,
		PrimitiveDouble:  ScalarFloat,
		PrimitiveString:  ScalarString,
		PrimitiveChar:    ScalarString,
		PrimitiveInteger: ScalarInt,
		PrimitiveShort:   ScalarInt,
		PrimitiveBoolean: ScalarBool,
	}
	scalarTypes = [...]string{
		ScalarFloat:  "float64",
		ScalarString: "string",
		ScalarInt:    "int",
		ScalarBool:   "bool",
	}
	zeroLiterals = [...]string{
		ScalarFloat:  "0.0",
		ScalarString: `""`,
		ScalarInt:    "0",
		ScalarBool:   "false",
	}
	// coercions hold the expression normalizing a raw value into the
	// scalar. %s is the value expression.
	coercions = [...]string{
		ScalarFloat:  "float64(%s)",
		ScalarString: "string(%s)",
		ScalarInt:    "int(%s)",
		ScalarBool:   "bool(%s)",
	}
)

func (s Scalar) valid() bool { return s > 0 && int(s) < len(scalarTypes) }

// Type returns the Go type name of the scalar.
func (s Scalar) Type() string {
	if !s.valid() {
		return ""
	}
	return scalarTypes[s]
}

// Zero returns the zero-value literal of the scalar.
func (s Scalar) Zero() string {
	if !s.valid() {
		return ""
	}
	return zeroLiterals[s]
}

// Coerce returns the coercion expression applied to expr.
func (s Scalar) Coerce(expr string) string {
	if !s.valid() {
		return expr
	}
	return fmt.Sprintf(coercions[s], expr)
}

// String implements fmt.Stringer.
func (s Scalar) String() string { return s.Type() }

// ScalarInfo is the resolution of a primitive name.
type ScalarInfo struct {
	Primitive Primitive
	Scalar    Scalar
	// Type is the Go type name, e.g. "float64".
	Type string
	// Zero is the zero-value literal, e.g. "0".
	Zero string
	// Setter is the coercion expression applied to "value".
	Setter string
}

// ResolveScalar maps a primitive name to its Go scalar. Unknown names
// fail with ErrUnknownPrimitive.
func ResolveScalar(name string) (ScalarInfo, error) {
	p, ok := ParsePrimitive(name)
	if !ok {
		return ScalarInfo{}, fmt.Errorf("%w %q: the schema declares a primitive this generator does not recognize (known: %s)",
			ErrUnknownPrimitive, name, strings.Join(primitiveNames[1:], ", "))
	}
	s := p.Scalar()
	return ScalarInfo{
		Primitive: p,
		Scalar:    s,
		Type:      s.Type(),
		Zero:      s.Zero(),
		Setter:    s.Coerce("value"),
	}, nil
}
