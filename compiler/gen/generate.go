package gen

import (
	"bytes"
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/dmtgen/schema"
)

// Generator renders a graph into Go packages. Every schema root is written
// to a directory of the same name on the output filesystem.
type Generator struct {
	graph   *Graph
	fs      billy.Filesystem
	workers int
	log     *slog.Logger
}

// NewGenerator creates a generator writing g to fs.
//
// Example:
//
//	graph, err := gen.NewGraph(cfg, root)
//	if err != nil {
//		return err
//	}
//	err = gen.NewGenerator(graph, osfs.New(cfg.Target)).Generate(ctx)
func NewGenerator(g *Graph, fs billy.Filesystem) *Generator {
	return &Generator{
		graph:   g,
		fs:      fs,
		workers: g.workers(),
		log:     g.Log(),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Generate writes one entity file and one blueprint metadata file per
// model, one file per enum and, unless the config asks for sources only,
// the go.mod and doc.go of every root.
func (g *Generator) Generate(ctx context.Context) error {
	if g.graph.Cleanup {
		for _, root := range g.graph.Roots {
			if err := util.RemoveAll(g.fs, root.Name); err != nil {
				return NewGenerationError("cleanup", root.Name, "remove previous output", err)
			}
			g.log.Debug("removed previous output", "dir", root.Name)
		}
	}
	errg, gctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, m := range g.graph.Models {
		if m.Module == RuntimePackage {
			continue
		}
		root := m.Blueprint().Package().Root()
		errg.Go(func() error {
			return g.writeFile(gctx, "entity", g.outPath(root, m.Module, m.Filename+".go"), g.genEntity(m))
		})
		errg.Go(func() error {
			return g.writeFile(gctx, "blueprint", g.outPath(root, m.MetaPackage, m.Filename+".go"), g.genBlueprint(m))
		})
	}
	for _, e := range g.graph.Enums {
		root := e.Enum().Package().Root()
		errg.Go(func() error {
			return g.writeFile(gctx, "enum", g.outPath(root, e.Module, e.Filename+".go"), g.genEnum(e))
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}
	if g.graph.SourceOnly {
		return nil
	}
	return NewTemplateWriter(g.graph, g.fs).WithWorkers(g.workers).GenerateAll(ctx)
}

// outPath returns the path of a file of the package module, relative to
// the output filesystem.
func (g *Generator) outPath(root *schema.Package, module, file string) string {
	rel := strings.TrimPrefix(module, g.graph.PackageName(root.Name))
	return filepath.Join(root.Name, filepath.FromSlash(strings.TrimPrefix(rel, "/")), file)
}

// writeFile renders f and writes it to name.
func (g *Generator) writeFile(ctx context.Context, phase, name string, f *jen.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError(phase, name, "render", err)
	}
	if err := g.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return NewGenerationError(phase, name, "create directory", err)
	}
	if err := util.WriteFile(g.fs, name, buf.Bytes(), 0o644); err != nil {
		return NewGenerationError(phase, name, "write", err)
	}
	g.log.Debug("wrote file", "phase", phase, "file", name)
	return nil
}

// newFile creates a new Jennifer file with the header comment.
func (g *Generator) newFile(module, pkg string) *jen.File {
	f := jen.NewFilePathName(module, pkg)
	f.HeaderComment(g.graph.header())
	return f
}

// genEntity renders the struct, constructor and accessors of an entity.
func (g *Generator) genEntity(m *GenerationModel) *jen.File {
	f := g.newFile(m.Module, m.PackageName())
	if d := oneLine(m.Description); d != "" {
		f.Commentf("%s is generated from the %s blueprint: %s", m.Type, m.Blueprint().Ref(), d)
	} else {
		f.Commentf("%s is generated from the %s blueprint.", m.Type, m.Blueprint().Ref())
	}
	f.Type().Id(m.Type).StructFunc(func(grp *jen.Group) {
		for _, fd := range m.Fields {
			grp.Id(structField(fd)).Add(fieldType(fd))
		}
	})

	f.Commentf("New%s returns a %s holding the default value of every attribute.", m.Type, m.Type)
	f.Func().Id("New" + m.Type).Params().Op("*").Id(m.Type).Block(
		jen.Return(jen.Op("&").Id(m.Type).Values(jen.DictFunc(func(d jen.Dict) {
			for _, fd := range m.Fields {
				if v := initValue(fd); v != nil {
					d[jen.Id(structField(fd))] = v
				}
			}
		}))),
	)

	recv := receiver(m.Type)
	for _, fd := range m.Fields {
		field := jen.Id(recv).Dot(structField(fd))
		f.Line()
		if d := oneLine(fd.Description); d != "" {
			f.Commentf("%s returns %s", fd.Accessor(), lowerFirst(d))
		} else {
			f.Commentf("%s returns the %s attribute.", fd.Accessor(), fd.AttributeName)
		}
		f.Func().Params(jen.Id(recv).Op("*").Id(m.Type)).Id(fd.Accessor()).Params().Add(fieldType(fd)).Block(
			jen.Return(field.Clone()),
		)
		f.Commentf("%s sets the %s attribute.", fd.SetterName(), fd.AttributeName)
		f.Func().Params(jen.Id(recv).Op("*").Id(m.Type)).Id(fd.SetterName()).Params(jen.Id("value").Add(fieldType(fd))).Op("*").Id(m.Type).Block(
			field.Clone().Op("=").Id(fd.Setter),
			jen.Return(jen.Id(recv)),
		)
	}
	return f
}

// genEnum renders a string type with one constant per member.
func (g *Generator) genEnum(e *EnumModel) *jen.File {
	f := g.newFile(e.Module, e.PackageName())
	if d := oneLine(e.Description); d != "" {
		f.Commentf("%s is %s", e.Type, lowerFirst(d))
	} else {
		f.Commentf("%s is the %s enumeration.", e.Type, e.Name)
	}
	f.Type().Id(e.Type).String()

	if len(e.Members) > 0 {
		f.Commentf("Members of %s.", e.Type)
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, m := range e.Members {
				grp.Id(m.Ident).Id(e.Type).Op("=").Lit(m.Value)
			}
		})
	}
	if e.Default != "" {
		f.Commentf("Default%s is the member new entities start with.", e.Type)
		f.Const().Id("Default" + e.Type).Op("=").Id(e.Default)
	}

	f.Commentf("Values returns the members of %s in declaration order.", e.Type)
	f.Func().Id("Values").Params().Index().Id(e.Type).Block(
		jen.Return(jen.Index().Id(e.Type).ValuesFunc(func(grp *jen.Group) {
			for _, m := range e.Members {
				grp.Id(m.Ident)
			}
		})),
	)

	recv := receiver(e.Type)
	f.Comment("String implements fmt.Stringer.")
	f.Func().Params(jen.Id(recv).Id(e.Type)).Id("String").Params().String().Block(
		jen.Return(jen.String().Call(jen.Id(recv))),
	)
	f.Commentf("IsValid reports whether %s is a member of %s.", recv, e.Type)
	f.Func().Params(jen.Id(recv).Id(e.Type)).Id("IsValid").Params().Bool().Block(
		jen.Return(jen.Qual("slices", "Contains").Call(jen.Id("Values").Call(), jen.Id(recv))),
	)
	f.Comment("Label returns the display label of the member.")
	f.Func().Params(jen.Id(recv).Id(e.Type)).Id("Label").Params().String().BlockFunc(func(grp *jen.Group) {
		var cases []jen.Code
		for _, m := range e.Members {
			if m.Label != m.Value {
				cases = append(cases, jen.Case(jen.Id(m.Ident)).Block(jen.Return(jen.Lit(m.Label))))
			}
		}
		if len(cases) > 0 {
			grp.Switch(jen.Id(recv)).Block(cases...)
		}
		grp.Return(jen.String().Call(jen.Id(recv)))
	})
	return f
}

// genBlueprint renders the metadata variable of an entity and registers it
// with the runtime.
func (g *Generator) genBlueprint(m *GenerationModel) *jen.File {
	bp := m.Blueprint()
	f := g.newFile(m.MetaPackage, goPackageName(path.Base(m.MetaPackage)))
	f.Commentf("%s describes the attributes of %s.", m.BlueprintType, m.Type)
	f.Var().Id(m.BlueprintType).Op("=").Op("&").Qual(RuntimePackage, "Blueprint").Values(jen.DictFunc(func(d jen.Dict) {
		d[jen.Id("Name")] = jen.Lit(m.Name)
		d[jen.Id("Type")] = jen.Lit(bp.Ref())
		if m.Description != "" {
			d[jen.Id("Description")] = jen.Lit(m.Description)
		}
		if refs := bp.ExtendsRefs(); len(refs) > 0 {
			d[jen.Id("Extends")] = jen.Index().String().ValuesFunc(func(grp *jen.Group) {
				for _, r := range refs {
					grp.Lit(r)
				}
			})
		}
		d[jen.Id("Attributes")] = jen.Index().Op("*").Qual(RuntimePackage, "Attribute").ValuesFunc(func(grp *jen.Group) {
			for _, a := range bp.AllAttributes() {
				grp.Values(attributeDict(a))
			}
		})
	}))
	f.Func().Id("init").Params().Block(
		jen.Qual(RuntimePackage, "Register").Call(jen.Id(m.BlueprintType)),
	)
	return f
}

func attributeDict(a *schema.Attribute) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"):      jen.Lit(a.Name),
		jen.Id("Type"):      jen.Lit(a.Type()),
		jen.Id("Contained"): jen.Lit(a.Contained()),
	}
	if a.Description != "" {
		d[jen.Id("Description")] = jen.Lit(a.Description)
	}
	if v := a.Default(); !v.IsAbsent() {
		d[jen.Id("Default")] = jen.Lit(v.Text())
	}
	if dims := a.Dimensions(); len(dims) > 0 {
		d[jen.Id("Dimensions")] = jen.Lit(strings.Join(dims, ","))
	}
	if ref, ok := a.EnumType(); ok {
		d[jen.Id("EnumType")] = jen.Lit(ref)
	}
	return d
}

// fieldType returns the Go type of a field. Contained entities are held by
// pointer, cross-references through the runtime Reference type.
func fieldType(fd *Field) *jen.Statement {
	var elem *jen.Statement
	switch {
	case fd.IsCrossReference:
		elem = jen.Op("*").Qual(RuntimePackage, "Reference")
	case fd.IsEnum:
		elem = jen.Qual(fd.Module, fd.ElemType)
	case fd.IsEntity:
		elem = jen.Op("*").Qual(fd.Module, fd.ElemType)
	default:
		elem = jen.Id(fd.ElemType)
	}
	if fd.IsArray {
		return jen.Index().Add(elem)
	}
	return elem
}

// initValue returns the initializer of a field, or nil for fields that
// start at the zero value of a pointer.
func initValue(fd *Field) jen.Code {
	switch {
	case fd.IsArray:
		return fieldType(fd).Values()
	case fd.IsEnum && fd.EnumDefault != "":
		return jen.Qual(fd.Module, fd.EnumDefault)
	case fd.Init == "nil" || fd.Init == "":
		return nil
	}
	return jen.Id(fd.Init)
}

// structField returns the unexported struct field name of fd.
func structField(fd *Field) string {
	return FieldName(lowerFirst(fd.Name))
}

// receiver returns the receiver name of methods on typeName.
func receiver(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if !unicode.IsLetter(r) {
		return "x"
	}
	return string(unicode.ToLower(r))
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
