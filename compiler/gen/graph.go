package gen

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/dmtgen/schema"
)

type (
	// Graph holds the compiled models of one or more schema roots.
	Graph struct {
		*Config
		// Roots are the schema packages the graph was built from.
		Roots []*schema.Package
		// Models in package walk order, blueprints in declaration order.
		Models []*GenerationModel
		// Enums declared under the roots.
		Enums []*EnumModel
	}

	// EnumModel is the render-ready form of an enum.
	EnumModel struct {
		Name        string        `json:"name" yaml:"name"`
		Type        string        `json:"type" yaml:"type"`
		Description string        `json:"description,omitempty" yaml:"description,omitempty"`
		Filename    string        `json:"filename" yaml:"filename"`
		Module      string        `json:"module" yaml:"module"`
		Members     []*EnumMember `json:"members" yaml:"members"`
		// Default is the identifier of the default member.
		Default string `json:"default,omitempty" yaml:"default,omitempty"`

		enum *schema.Enum
	}

	// EnumMember is one value of an enum.
	EnumMember struct {
		Ident string `json:"ident" yaml:"ident"`
		Value string `json:"value" yaml:"value"`
		Label string `json:"label,omitempty" yaml:"label,omitempty"`
	}
)

// NewGraph compiles every blueprint and enum under roots. Blueprints are
// compiled in parallel; all failures are reported, joined.
func NewGraph(c *Config, roots ...*schema.Package) (*Graph, error) {
	if c == nil {
		c = DefaultConfig()
	}
	if len(roots) == 0 {
		return nil, NewConfigError("Roots", nil, "no schema package to generate")
	}
	if c.Package != "" && len(roots) > 1 {
		return nil, NewConfigError("Package", c.Package, "a package name applies to a single schema root")
	}
	type job struct {
		bp          *schema.Blueprint
		packageName string
		packagePath string
	}
	var (
		jobs  []job
		g     = &Graph{Config: c, Roots: roots}
		cc    = NewCompiler(c)
		enums = make(map[string]struct{})
	)
	for _, root := range roots {
		pkgName := c.PackageName(root.Name)
		err := root.Walk(func(p *schema.Package) error {
			for _, bp := range p.Blueprints() {
				jobs = append(jobs, job{bp: bp, packageName: pkgName, packagePath: strings.Join(p.SubPath(), "/")})
			}
			for _, e := range p.Enums() {
				em := cc.enumModel(root.Name, e)
				if _, ok := enums[em.Module]; ok {
					continue
				}
				enums[em.Module] = struct{}{}
				g.Enums = append(g.Enums, em)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	var (
		eg     errgroup.Group
		models = make([]*GenerationModel, len(jobs))
		errs   = make([]error, len(jobs))
	)
	eg.SetLimit(c.workers())
	for i, j := range jobs {
		eg.Go(func() error {
			models[i], errs[i] = cc.Compile(j.bp, j.packageName, j.packagePath)
			return nil
		})
	}
	_ = eg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	g.Models = models
	if err := g.checkModules(); err != nil {
		return nil, err
	}
	c.Log().Debug("compiled schema graph", "models", len(g.Models), "enums", len(g.Enums))
	return g, nil
}

// checkModules rejects two generated types sharing one package.
func (g *Graph) checkModules() error {
	seen := make(map[string]string, len(g.Models)+len(g.Enums))
	var errs []error
	claim := func(module, name string) {
		if prev, ok := seen[module]; ok {
			errs = append(errs, NewSchemaError(name, "", fmt.Sprintf("package %q is also generated for %s", module, prev), nil))
			return
		}
		seen[module] = name
	}
	for _, e := range g.Enums {
		claim(e.Module, e.Name)
	}
	for _, m := range g.Models {
		claim(m.Module, m.Name)
	}
	return errors.Join(errs...)
}

// Model returns the model of the named blueprint.
func (g *Graph) Model(name string) (*GenerationModel, bool) {
	for _, m := range g.Models {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Enum returns the model of the named enum.
func (g *Graph) Enum(name string) (*EnumModel, bool) {
	for _, e := range g.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Module returns the generated module path of the first root.
func (g *Graph) Module() string {
	return g.PackageName(g.Roots[0].Name)
}

func (c *Compiler) enumModel(root string, e *schema.Enum) *EnumModel {
	em := &EnumModel{
		Name:        e.Name,
		Type:        firstToUpper(e.Name),
		Description: e.Description,
		Filename:    strings.ToLower(e.Name),
		Module:      c.importPath(root, e.Package(), e.Name),
		enum:        e,
	}
	idents := memberIdents(e.Values)
	for i, v := range e.Values {
		em.Members = append(em.Members, &EnumMember{
			Ident: idents[i],
			Value: v,
			Label: e.Label(i),
		})
	}
	if d := e.DefaultMember(); d != "" {
		em.Default = memberIdent(e.Values, d)
	}
	return em
}

// Enum returns the enum the model was built from.
func (e *EnumModel) Enum() *schema.Enum { return e.enum }

// PackageName returns the Go package name of the generated enum.
func (e *EnumModel) PackageName() string { return goPackageName(e.Filename) }
