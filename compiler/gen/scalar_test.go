package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dmtgen/schema"
)

func TestResolveScalar(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		zero   string
		setter string
	}{
		{"number", "float64", "0.0", "float64(value)"},
		{"double", "float64", "0.0", "float64(value)"},
		{"string", "string", `""`, "string(value)"},
		{"char", "string", `""`, "string(value)"},
		{"integer", "int", "0", "int(value)"},
		{"short", "int", "0", "int(value)"},
		{"boolean", "bool", "false", "bool(value)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ResolveScalar(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, info.Type)
			assert.Equal(t, tt.zero, info.Zero)
			assert.Equal(t, tt.setter, info.Setter)
			assert.Equal(t, tt.name, info.Primitive.String())
		})
	}

	_, err := ResolveScalar("decimal")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPrimitive))
	assert.Contains(t, err.Error(), "known: number, double")
}

func TestPrimitiveString(t *testing.T) {
	assert.Equal(t, "Primitive(42)", Primitive(42).String())
	assert.Equal(t, Scalar(0), Primitive(42).Scalar())
	assert.Equal(t, "", Scalar(0).Type())
	assert.Equal(t, "value", Scalar(0).Coerce("value"))
}

func TestConvertDefault(t *testing.T) {
	tests := []struct {
		name  string
		p     Primitive
		v     schema.Value
		bools BoolCoercion
		want  string
		err   bool
	}{
		{"absent string", PrimitiveString, schema.Absent(), BoolParse, `""`, false},
		{"absent number", PrimitiveNumber, schema.Absent(), BoolParse, "0.0", false},
		{"absent boolean", PrimitiveBoolean, schema.Absent(), BoolParse, "false", false},
		{"string", PrimitiveString, schema.String(`say "hi"`), BoolParse, `"say \"hi\""`, false},
		{"empty string", PrimitiveChar, schema.String(""), BoolParse, `""`, false},
		{"quoted empty string", PrimitiveString, schema.String(`""`), BoolParse, `""`, false},
		{"number for string", PrimitiveString, schema.Int(10), BoolParse, `"10"`, false},
		{"integer", PrimitiveInteger, schema.Int(-3), BoolParse, "-3", false},
		{"integral float for integer", PrimitiveShort, schema.Number("10.0"), BoolParse, "10", false},
		{"string integer", PrimitiveInteger, schema.String(" 7 "), BoolParse, "7", false},
		{"empty integer", PrimitiveInteger, schema.String(""), BoolParse, "0", false},
		{"fraction for integer", PrimitiveInteger, schema.Number("1.5"), BoolParse, "", true},
		{"bool for integer", PrimitiveInteger, schema.Bool(true), BoolParse, "", true},
		{"max int64", PrimitiveInteger, schema.String("9223372036854775807"), BoolParse, "9223372036854775807", false},
		{"min int64", PrimitiveInteger, schema.String("-9223372036854775808"), BoolParse, "-9223372036854775808", false},
		{"int64 overflow", PrimitiveInteger, schema.String("9223372036854775808"), BoolParse, "", true},
		{"int64 overflow as float", PrimitiveInteger, schema.Number("9.3e18"), BoolParse, "", true},
		{"int64 underflow as float", PrimitiveInteger, schema.Number("-9.3e18"), BoolParse, "", true},
		{"float", PrimitiveNumber, schema.Number("2.5"), BoolParse, "2.5", false},
		{"whole float", PrimitiveDouble, schema.Int(3), BoolParse, "3.0", false},
		{"exponent float", PrimitiveDouble, schema.Number("1e21"), BoolParse, "1e+21", false},
		{"text for float", PrimitiveNumber, schema.String("fast"), BoolParse, "", true},
		{"bool", PrimitiveBoolean, schema.Bool(true), BoolParse, "true", false},
		{"string false", PrimitiveBoolean, schema.String("false"), BoolParse, "false", false},
		{"string F", PrimitiveBoolean, schema.String("F"), BoolParse, "false", false},
		{"string 1", PrimitiveBoolean, schema.String("1"), BoolParse, "true", false},
		{"empty bool string", PrimitiveBoolean, schema.String(""), BoolParse, "false", false},
		{"unparseable bool", PrimitiveBoolean, schema.String("yes please"), BoolParse, "", true},
		{"number for bool", PrimitiveBoolean, schema.Int(1), BoolParse, "", true},
		{"legacy string false", PrimitiveBoolean, schema.String("false"), BoolTruthy, "true", false},
		{"legacy empty string", PrimitiveBoolean, schema.String(""), BoolTruthy, "false", false},
		{"legacy zero", PrimitiveBoolean, schema.Int(0), BoolTruthy, "false", false},
		{"legacy bool", PrimitiveBoolean, schema.Bool(false), BoolTruthy, "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertDefault(tt.p, tt.v, tt.bools)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrAmbiguousDefault))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ConvertDefault(Primitive(0), schema.Absent(), BoolParse)
	assert.True(t, errors.Is(err, ErrUnknownPrimitive))
}
