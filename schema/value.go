package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind is the kind of a loosely typed schema value.
type Kind uint8

// Value kinds.
const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "absent"
	}
}

// Value is a tagged union over the loosely typed values a model file
// may hold for a key: nothing, a string, a number or a boolean.
// Numbers keep their source text so no precision is lost before the
// generator decides which Go literal they become.
type Value struct {
	kind Kind
	text string
	b    bool
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value from its textual form, e.g. "10" or "0.5".
func Number(text string) Value { return Value{kind: KindNumber, text: text} }

// Int returns a number value holding an integer.
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Float returns a number value holding a float.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsZero reports whether the value is absent. It lets encoders omit
// absent values.
func (v Value) IsZero() bool { return v.IsAbsent() }

// Text returns the textual form of the value: the string itself,
// the source text of a number, or "true"/"false" for booleans.
func (v Value) Text() string {
	if v.kind == KindBool {
		return strconv.FormatBool(v.b)
	}
	return v.text
}

// AsBool returns the boolean held by the value. ok is false for
// any kind other than KindBool.
func (v Value) AsBool() (b, ok bool) {
	return v.b, v.kind == KindBool
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return strconv.Quote(v.text)
	default:
		return v.Text()
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. The node tag decides the
// kind, so `default: "10"` and `default: 10` stay distinguishable.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("schema: expected a scalar value at line %d, got %s", node.Line, nodeKind(node))
	}
	switch node.ShortTag() {
	case "!!null":
		*v = Absent()
	case "!!str":
		*v = String(node.Value)
	case "!!int", "!!float":
		*v = Number(node.Value)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = Bool(b)
	default:
		return fmt.Errorf("schema: unsupported value tag %s at line %d", node.ShortTag(), node.Line)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindString:
		return v.text, nil
	case KindBool:
		return v.b, nil
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: numberTag(v.text), Value: v.text}, nil
	default:
		return nil, nil
	}
}

func numberTag(text string) string {
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return "!!int"
	}
	return "!!float"
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
