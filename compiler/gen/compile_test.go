package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dmtgen/schema"
)

// vehicleCatalog returns a catalog with a models root:
//
//	models/Vehicle
//	models/Person
//	models/parts/Engine
//	models/parts/FuelType (enum)
func vehicleCatalog(t testing.TB) *schema.Catalog {
	t.Helper()
	c := schema.NewCatalog()
	root := c.AddRoot("models")
	parts := root.AddPackage("parts")

	require.NoError(t, parts.AddBlueprint(schema.NewBlueprint("Engine").MustAddAttributes(
		schema.NewAttribute("power", "number").SetDefault(schema.Float(150.5)),
		schema.NewAttribute("cylinders", "integer").SetDefault(schema.Int(4)),
	)))
	fuel := schema.NewEnum("FuelType", "petrol", "diesel", "electric")
	fuel.Labels = []string{"Petrol", "Diesel", "Electric"}
	require.NoError(t, parts.AddEnum(fuel))

	require.NoError(t, root.AddBlueprint(schema.NewBlueprint("Person").
		Extends(schema.NamedEntityRef).
		MustAddAttributes(schema.NewAttribute("age", "integer"))))
	require.NoError(t, root.AddBlueprint(schema.NewBlueprint("Vehicle").
		Describe("A road vehicle").
		MustAddAttributes(
			schema.NewAttribute("name", "string").Describe("Registration name"),
			schema.NewAttribute("wheels", "integer").SetDefault(schema.Int(4)),
			schema.NewAttribute("electric", "boolean").SetDefault(schema.String("false")),
			schema.NewAttribute("engine", "parts/Engine"),
			schema.NewAttribute("spare", "parts/Engine"),
			schema.NewAttribute("owner", "Person").SetContained(false),
			schema.NewAttribute("fuel", "parts/FuelType"),
			schema.NewAttribute("tags", "string").SetDimensions("*"),
			schema.NewAttribute("type", "string"),
			schema.NewAttribute("trailer", "Vehicle"),
		)))
	c.AddBuiltins()
	require.NoError(t, c.Resolve())
	return c
}

func blueprint(t testing.TB, c *schema.Catalog, ref string) *schema.Blueprint {
	t.Helper()
	root, ok := c.Root("models")
	require.True(t, ok)
	bp, ok := root.LookupBlueprint(ref)
	require.True(t, ok, ref)
	return bp
}

func field(t testing.TB, m *GenerationModel, attr string) *Field {
	t.Helper()
	f, ok := m.Field(attr)
	require.True(t, ok, attr)
	return f
}

func TestCompile(t *testing.T) {
	c := vehicleCatalog(t)
	m, err := Compile(blueprint(t, c, "Vehicle"), "models", "")
	require.NoError(t, err)

	assert.Equal(t, "Vehicle", m.Type)
	assert.Equal(t, "vehicle", m.Filename)
	assert.Equal(t, "VehicleBlueprint", m.BlueprintType)
	assert.Equal(t, "models/vehicle", m.Module)
	assert.Equal(t, "models/blueprints", m.MetaPackage)
	assert.Equal(t, "models/schema/schemas", m.SchemaPackage)
	assert.Equal(t, "A road vehicle", m.Description)
	require.Len(t, m.Fields, 10)

	t.Run("Primitives", func(t *testing.T) {
		name := field(t, m, "name")
		assert.Equal(t, "string", name.Type)
		assert.Equal(t, `""`, name.Init)
		assert.Equal(t, "string(value)", name.Setter)
		assert.True(t, name.IsPrimitive())
		assert.Equal(t, "Registration name", name.Description)

		wheels := field(t, m, "wheels")
		assert.Equal(t, "int", wheels.Type)
		assert.Equal(t, "4", wheels.Init)

		electric := field(t, m, "electric")
		assert.Equal(t, "bool", electric.Type)
		assert.Equal(t, "false", electric.Init)
	})

	t.Run("Contained entity", func(t *testing.T) {
		engine := field(t, m, "engine")
		assert.True(t, engine.IsEntity)
		assert.False(t, engine.IsCrossReference)
		assert.Equal(t, "Engine", engine.Type)
		assert.Equal(t, "models/parts/engine", engine.Module)
		assert.Equal(t, "nil", engine.Init)
		assert.Equal(t, "value", engine.Setter)
	})

	t.Run("Cross reference", func(t *testing.T) {
		owner := field(t, m, "owner")
		assert.True(t, owner.IsCrossReference)
		assert.Equal(t, "models/person", owner.Module)
		assert.True(t, m.HasCrossReferences)
		assert.Equal(t, []ImportInfo{{Module: "models/person", Name: "Person"}}, m.CrossReferences)
		assert.True(t, m.HasCrossReference("Person"))
		assert.False(t, m.HasImport("Person"))
	})

	t.Run("Enum", func(t *testing.T) {
		fuel := field(t, m, "fuel")
		assert.True(t, fuel.IsEnum)
		assert.Equal(t, "FuelType", fuel.Type)
		assert.Equal(t, "Petrol", fuel.EnumDefault)
		assert.Equal(t, "fueltype.Petrol", fuel.Init)
	})

	t.Run("Array", func(t *testing.T) {
		tags := field(t, m, "tags")
		assert.True(t, tags.IsArray)
		assert.Equal(t, "[]string", tags.Type)
		assert.Equal(t, "string", tags.ElemType)
		assert.Equal(t, "[]string{}", tags.Init)
		assert.True(t, m.HasArray)
	})

	t.Run("Keyword attribute", func(t *testing.T) {
		typ := field(t, m, "type")
		assert.Equal(t, "type_", typ.Name)
		assert.Equal(t, "Type", typ.Accessor())
		assert.Equal(t, "SetType", typ.SetterName())
	})

	t.Run("Imports are deduplicated and exclude the entity", func(t *testing.T) {
		assert.Equal(t, []ImportInfo{
			{Module: "models/parts/engine", Name: "Engine"},
			{Module: "models/parts/fueltype", Name: "FuelType"},
		}, m.Imports)
		assert.True(t, m.HasSelfReference)
		assert.False(t, m.HasImport("Vehicle"))
		trailer := field(t, m, "trailer")
		assert.Equal(t, "models/vehicle", trailer.Module)
	})
}

func TestCompileInherited(t *testing.T) {
	c := vehicleCatalog(t)
	m, err := Compile(blueprint(t, c, "Person"), "models", "")
	require.NoError(t, err)

	var names []string
	for _, f := range m.Fields {
		names = append(names, f.AttributeName)
	}
	assert.Equal(t, []string{"name", "description", "age"}, names)
	assert.Empty(t, m.Imports)
	assert.False(t, m.HasSelfReference)
}

func TestCompileNamedEntityReference(t *testing.T) {
	c := schema.NewCatalog()
	root := c.AddRoot("models")
	require.NoError(t, root.AddBlueprint(schema.NewBlueprint("Tag").MustAddAttributes(
		schema.NewAttribute("meta", schema.NamedEntityRef),
	)))
	c.AddBuiltins()
	require.NoError(t, c.Resolve())

	m, err := Compile(blueprint(t, c, "Tag"), "models", "")
	require.NoError(t, err)
	assert.Equal(t, RuntimePackage, field(t, m, "meta").Module)
	assert.Equal(t, []ImportInfo{{Module: RuntimePackage, Name: "NamedEntity"}}, m.Imports)
}

func TestCompilePackage(t *testing.T) {
	c := vehicleCatalog(t)
	cc := NewCompiler(&Config{Package: "example.com/fleet"})

	m, err := cc.Compile(blueprint(t, c, "Vehicle"), "example.com/fleet", "")
	require.NoError(t, err)
	assert.Equal(t, "example.com/fleet/vehicle", m.Module)
	assert.Equal(t, "example.com/fleet/parts/engine", field(t, m, "engine").Module)
	assert.Equal(t, "example.com/fleet/person", m.CrossReferences[0].Module)

	e, err := cc.Compile(blueprint(t, c, "parts/Engine"), "example.com/fleet", "parts")
	require.NoError(t, err)
	assert.Equal(t, "example.com/fleet/blueprints/parts", e.MetaPackage)
}

func TestCompileLegacyBools(t *testing.T) {
	c := vehicleCatalog(t)
	m, err := NewCompiler(&Config{LegacyBoolDefaults: true}).Compile(blueprint(t, c, "Vehicle"), "models", "")
	require.NoError(t, err)
	assert.Equal(t, "true", field(t, m, "electric").Init)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		attr *schema.Attribute
		want error
	}{
		{"unknown primitive", schema.NewAttribute("x", "decimal"), ErrUnknownPrimitive},
		{"unresolved blueprint", schema.NewAttribute("x", "parts/Wheel"), ErrUnresolvedType},
		{"unresolved enum type", schema.NewAttribute("x", "string").SetEnumType("parts/Color"), ErrUnresolvedType},
		{"enum default not a member", schema.NewAttribute("x", "parts/FuelType").SetDefault(schema.String("hydrogen")), ErrAmbiguousDefault},
		{"integer default", schema.NewAttribute("x", "integer").SetDefault(schema.String("four")), ErrAmbiguousDefault},
		{"fractional integer default", schema.NewAttribute("x", "integer").SetDefault(schema.Float(1.5)), ErrAmbiguousDefault},
		{"boolean default", schema.NewAttribute("x", "boolean").SetDefault(schema.String("maybe")), ErrAmbiguousDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := vehicleCatalog(t)
			root, _ := c.Root("models")
			bp := schema.NewBlueprint("Broken").MustAddAttributes(tt.attr)
			require.NoError(t, root.AddBlueprint(bp))

			_, err := Compile(bp, "models", "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
			var se *SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "Broken", se.Blueprint)
			assert.Equal(t, "x", se.Attribute)
		})
	}

	t.Run("nil blueprint", func(t *testing.T) {
		_, err := Compile(nil, "models", "")
		assert.True(t, IsSchemaError(err))
	})
}

func TestCompileEnumType(t *testing.T) {
	c := vehicleCatalog(t)
	root, _ := c.Root("models")
	bp := schema.NewBlueprint("Pump").MustAddAttributes(
		schema.NewAttribute("fuel", "string").SetEnumType("parts/FuelType").SetDefault(schema.String("diesel")),
		schema.NewAttribute("accepted", "string").SetEnumType("parts/FuelType").SetDimensions("*"),
	)
	require.NoError(t, root.AddBlueprint(bp))

	m, err := Compile(bp, "models", "")
	require.NoError(t, err)
	fuel := field(t, m, "fuel")
	assert.True(t, fuel.IsEnum)
	assert.Equal(t, "Diesel", fuel.EnumDefault)

	accepted := field(t, m, "accepted")
	assert.Equal(t, "[]FuelType", accepted.Type)
	assert.Equal(t, "[]FuelType{}", accepted.Init)
	assert.Len(t, m.Imports, 1)
}

func TestCompileScenario(t *testing.T) {
	c := schema.NewCatalog()
	root := c.AddRoot("garage")
	require.NoError(t, root.AddBlueprint(schema.NewBlueprint("Engine")))
	require.NoError(t, root.AddBlueprint(schema.NewBlueprint("Person")))
	bp := schema.NewBlueprint("Vehicle").MustAddAttributes(
		schema.NewAttribute("name", "string"),
		schema.NewAttribute("speed", "integer").SetDefault(schema.String("10")),
		schema.NewAttribute("engine", "Engine"),
		schema.NewAttribute("owner", "Person").SetContained(false),
	)
	require.NoError(t, root.AddBlueprint(bp))
	c.AddBuiltins()
	require.NoError(t, c.Resolve())

	m, err := Compile(bp, "garage", "")
	require.NoError(t, err)
	assert.Len(t, m.Fields, 4)
	assert.Equal(t, []ImportInfo{{Module: "garage/engine", Name: "Engine"}}, m.Imports)
	assert.Equal(t, []ImportInfo{{Module: "garage/person", Name: "Person"}}, m.CrossReferences)
	assert.True(t, m.HasCrossReferences)
	assert.False(t, m.HasArray)
	assert.False(t, m.HasSelfReference)
	assert.Equal(t, "10", field(t, m, "speed").Init)
}

func TestCompileSelfCrossReference(t *testing.T) {
	c := schema.NewCatalog()
	root := c.AddRoot("tree")
	bp := schema.NewBlueprint("Node").MustAddAttributes(
		schema.NewAttribute("parent", "Node").SetContained(false),
	)
	require.NoError(t, root.AddBlueprint(bp))
	c.AddBuiltins()
	require.NoError(t, c.Resolve())

	m, err := Compile(bp, "tree", "")
	require.NoError(t, err)
	assert.True(t, m.HasSelfReference)
	assert.Empty(t, m.CrossReferences)
	assert.Empty(t, m.Imports)
	assert.False(t, m.HasCrossReferences)
	assert.True(t, field(t, m, "parent").IsCrossReference)
}

func TestCompileSameNamedTypes(t *testing.T) {
	attrs := map[string]*schema.Attribute{
		"parent": schema.NewAttribute("parent", "Node"),
		"link":   schema.NewAttribute("link", "lib/Node"),
		"a":      schema.NewAttribute("a", "other/Engine"),
		"b":      schema.NewAttribute("b", "parts/Engine"),
	}
	tests := []struct {
		name  string
		order []string
	}{
		{"self first", []string{"parent", "link", "a", "b"}},
		{"self after foreign", []string{"link", "parent", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := schema.NewCatalog()
			root := c.AddRoot("models")
			require.NoError(t, root.AddPackage("lib").AddBlueprint(schema.NewBlueprint("Node")))
			require.NoError(t, root.AddPackage("other").AddBlueprint(schema.NewBlueprint("Engine")))
			require.NoError(t, root.AddPackage("parts").AddBlueprint(schema.NewBlueprint("Engine")))
			bp := schema.NewBlueprint("Node")
			for _, name := range tt.order {
				require.NoError(t, bp.AddAttribute(attrs[name]))
			}
			require.NoError(t, root.AddBlueprint(bp))
			c.AddBuiltins()
			require.NoError(t, c.Resolve())

			m, err := Compile(bp, "models", "")
			require.NoError(t, err)
			assert.True(t, m.HasSelfReference)
			assert.ElementsMatch(t, []ImportInfo{
				{Module: "models/lib/node", Name: "Node"},
				{Module: "models/other/engine", Name: "Engine"},
				{Module: "models/parts/engine", Name: "Engine"},
			}, m.Imports)
			assert.Equal(t, "models/lib/node", field(t, m, "link").Module)
			assert.Equal(t, "models/node", field(t, m, "parent").Module)
		})
	}
}

func TestLooksPrimitive(t *testing.T) {
	assert.True(t, looksPrimitive("decimal"))
	assert.False(t, looksPrimitive("Engine"))
	assert.False(t, looksPrimitive("parts/engine"))
	assert.False(t, looksPrimitive("dmt:engine"))
	assert.False(t, looksPrimitive(""))
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "type_", FieldName("type"))
	assert.Equal(t, "func_", FieldName("func"))
	assert.Equal(t, "name", FieldName("name"))
}
