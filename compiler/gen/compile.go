package gen

import (
	"fmt"
	"go/token"
	"path"
	"slices"
	"strings"
	"unicode"

	"github.com/syssam/dmtgen/schema"
)

// Compiler compiles blueprints into generation models.
type Compiler struct {
	bools BoolCoercion
	// module replaces the schema root segment of import paths.
	module string
}

// NewCompiler returns a compiler configured by c. A nil config uses the
// defaults. When c sets a Package, import paths inside the compiled root
// are rebased onto it.
func NewCompiler(c *Config) *Compiler {
	cc := &Compiler{bools: BoolParse}
	if c != nil {
		if c.LegacyBoolDefaults {
			cc.bools = BoolTruthy
		}
		cc.module = c.Package
	}
	return cc
}

// Compile compiles bp with the default compiler. packageName is the name
// of the generated root package and packagePath the "/"-separated path of
// the blueprint's package below the root.
func Compile(bp *schema.Blueprint, packageName, packagePath string) (*GenerationModel, error) {
	return NewCompiler(nil).Compile(bp, packageName, packagePath)
}

// Compile builds the generation model of bp. Attributes are compiled in
// declaration order, inherited ones first. The first attribute that fails
// aborts compilation with a *SchemaError naming the entity and attribute.
func (c *Compiler) Compile(bp *schema.Blueprint, packageName, packagePath string) (*GenerationModel, error) {
	if bp == nil {
		return nil, NewSchemaError("", "", "nil blueprint", nil)
	}
	var (
		imports   = newOrderedSet()
		crossRefs = newOrderedSet()
		scope     = bp.Package()
		root      = rootName(scope)
		typ       = firstToUpper(bp.Name)
		lower     = strings.ToLower(bp.Name)
	)
	m := &GenerationModel{
		Name:             bp.Name,
		Type:             typ,
		Filename:         lower,
		BlueprintVarName: lower,
		BlueprintType:    typ + "Blueprint",
		SchemaType:       typ + "Schema",
		Description:      bp.Description,
		Version:          1,
		Package:          packageName,
		RootPackage:      packageName,
		MetaPackage:      joinPath(packageName, "blueprints", packagePath),
		SchemaPackage:    joinPath(packageName, "schema", packagePath, "schemas"),
		Module:           c.importPath(root, scope, bp.Name),
		blueprint:        bp,
	}
	for _, a := range bp.AllAttributes() {
		f, err := c.field(root, scope, a, imports, crossRefs)
		if err != nil {
			return nil, NewSchemaError(bp.Name, a.Name, "", err)
		}
		m.HasArray = m.HasArray || f.IsArray
		m.Fields = append(m.Fields, f)
	}
	// A package cannot import itself.
	m.HasSelfReference = imports.refersTo(bp) || crossRefs.refersTo(bp)
	imports.remove(bp)
	crossRefs.remove(bp)
	m.Imports = c.importInfos(root, imports.values())
	m.CrossReferences = c.importInfos(root, crossRefs.values())
	m.HasCrossReferences = crossRefs.len() > 0
	return m, nil
}

// field compiles one attribute and registers its references.
func (c *Compiler) field(root string, scope *schema.Package, a *schema.Attribute, imports, crossRefs *orderedSet) (*Field, error) {
	f := &Field{
		Name:          FieldName(a.Name),
		AttributeName: a.Name,
		Description:   a.Description,
		IsArray:       a.IsArray(),
	}
	_, enumTyped := a.EnumType()
	if p, ok := ParsePrimitive(a.Type()); ok && !enumTyped {
		return f, c.primitiveField(f, p, a)
	}
	ref, err := resolveReference(scope, a)
	if err != nil {
		if !enumTyped && looksPrimitive(a.Type()) {
			_, err = ResolveScalar(a.Type())
		}
		return nil, err
	}
	ref.register(imports, crossRefs)
	f.IsEntity = true
	f.Module = c.importPath(root, ref.pkg(), ref.name())
	if ref.isEnum() {
		return f, enumField(f, ref.enum, a)
	}
	f.IsCrossReference = ref.crossRef
	entityField(f, firstToUpper(ref.name()))
	return f, nil
}

func (c *Compiler) primitiveField(f *Field, p Primitive, a *schema.Attribute) error {
	info, err := ResolveScalar(p.String())
	if err != nil {
		return err
	}
	if f.IsArray {
		arrayField(f, info.Type)
		return nil
	}
	f.Type = info.Type
	f.ElemType = info.Type
	f.Setter = info.Setter
	f.Init, err = ConvertDefault(p, a.Default(), c.bools)
	return err
}

// enumField initializes f with the enum default, or with the member the
// attribute default names.
func enumField(f *Field, e *schema.Enum, a *schema.Attribute) error {
	f.IsEnum = true
	name := firstToUpper(e.Name)
	if f.IsArray {
		arrayField(f, name)
		return nil
	}
	member := e.DefaultMember()
	if v := a.Default(); !v.IsAbsent() && v.Text() != "" {
		if !slices.Contains(e.Values, v.Text()) {
			return fmt.Errorf("%w: %q is not a member of enum %s", ErrAmbiguousDefault, v.Text(), e.Name)
		}
		member = v.Text()
	}
	f.Type = name
	f.ElemType = name
	f.Setter = "value"
	if member == "" {
		f.Init = `""`
		return nil
	}
	f.EnumDefault = memberIdent(e.Values, member)
	f.Init = strings.ToLower(e.Name) + "." + f.EnumDefault
	return nil
}

func entityField(f *Field, name string) {
	if f.IsArray {
		arrayField(f, name)
		return
	}
	f.Type = name
	f.ElemType = name
	f.Init = "nil"
	f.Setter = "value"
}

func arrayField(f *Field, elem string) {
	f.Type = "[]" + elem
	f.ElemType = elem
	f.Init = "[]" + elem + "{}"
	f.Setter = "value"
}

// importPath returns the import path of a type, rebased onto the
// configured module when it lives under root.
func (c *Compiler) importPath(root string, pkg *schema.Package, typeName string) string {
	p := ImportPath(pkg, typeName)
	if c.module == "" || root == "" {
		return p
	}
	if p == root || strings.HasPrefix(p, root+"/") {
		return c.module + strings.TrimPrefix(p, root)
	}
	return p
}

func (c *Compiler) importInfos(root string, refs []reference) []ImportInfo {
	infos := make([]ImportInfo, 0, len(refs))
	for _, r := range refs {
		infos = append(infos, ImportInfo{
			Module: c.importPath(root, r.pkg(), r.name()),
			Name:   firstToUpper(r.name()),
		})
	}
	return infos
}

func rootName(p *schema.Package) string {
	if p == nil {
		return ""
	}
	return p.Root().Name
}

// FieldName returns the identifier of an attribute, suffixed with "_" when
// the name is a Go keyword.
func FieldName(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// looksPrimitive reports whether an unresolved type name has the form of a
// primitive: a bare lower-case word.
func looksPrimitive(name string) bool {
	if name == "" || strings.ContainsAny(name, "/:") {
		return false
	}
	for _, r := range name {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func joinPath(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}
