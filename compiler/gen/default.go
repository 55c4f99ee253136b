package gen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/syssam/dmtgen/schema"
)

// BoolCoercion selects how a string default of a boolean attribute
// converts to a literal.
type BoolCoercion uint8

const (
	// BoolParse parses the string with strconv.ParseBool, so "false",
	// "0" and "F" become false. Anything unparseable is an error.
	BoolParse BoolCoercion = iota
	// BoolTruthy treats any non-empty string as true, so the string
	// "false" becomes true. Legacy DMT generators behave this way.
	BoolTruthy
)

// ConvertDefault converts the raw default of an attribute with primitive
// type p into a Go literal for the field initializer. Absent defaults
// resolve to the zero value of the scalar.
func ConvertDefault(p Primitive, v schema.Value, bc BoolCoercion) (string, error) {
	s := p.Scalar()
	if !s.valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownPrimitive, p)
	}
	if v.IsAbsent() {
		return s.Zero(), nil
	}
	text := v.Text()
	switch s {
	case ScalarString:
		if text == "" || text == `""` {
			return `""`, nil
		}
		return strconv.Quote(text), nil
	case ScalarInt:
		return convertInt(p, v)
	case ScalarFloat:
		return convertFloat(p, v)
	case ScalarBool:
		return convertBool(p, v, bc)
	}
	return "", ambiguous(p, v)
}

func convertInt(p Primitive, v schema.Value) (string, error) {
	if v.Kind() == schema.KindBool {
		return "", ambiguous(p, v)
	}
	text := strings.TrimSpace(v.Text())
	if text == "" || text == `""` {
		return ScalarInt.Zero(), nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	// Numbers such as 10.0 are integral and accepted.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f >= 0x1p63 || f < -0x1p63 {
		return "", ambiguous(p, v)
	}
	return strconv.FormatInt(int64(f), 10), nil
}

func convertFloat(p Primitive, v schema.Value) (string, error) {
	if v.Kind() == schema.KindBool {
		return "", ambiguous(p, v)
	}
	text := strings.TrimSpace(v.Text())
	if text == "" || text == `""` {
		return ScalarFloat.Zero(), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", ambiguous(p, v)
	}
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(lit, ".e") {
		lit += ".0"
	}
	return lit, nil
}

func convertBool(p Primitive, v schema.Value, bc BoolCoercion) (string, error) {
	if b, ok := v.AsBool(); ok {
		return strconv.FormatBool(b), nil
	}
	text := v.Text()
	if bc == BoolTruthy {
		if v.Kind() == schema.KindNumber {
			f, err := strconv.ParseFloat(text, 64)
			return strconv.FormatBool(err != nil || f != 0), nil
		}
		return strconv.FormatBool(text != ""), nil
	}
	switch text {
	case "true", "false":
		return text, nil
	}
	if v.Kind() == schema.KindString {
		if text == "" || text == `""` {
			return ScalarBool.Zero(), nil
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(text)); err == nil {
			return strconv.FormatBool(b), nil
		}
	}
	return "", ambiguous(p, v)
}

func ambiguous(p Primitive, v schema.Value) error {
	return fmt.Errorf("%w: %s default %s for %s attribute", ErrAmbiguousDefault, v.Kind(), v, p)
}
