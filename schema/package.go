package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Package is a node in the catalog tree.
type Package struct {
	// Name of the package, the last segment of its path.
	Name string

	catalog    *Catalog
	parent     *Package
	packages   []*Package
	blueprints []*Blueprint
	enums      []*Enum
	byName     map[string]*Package
	bpByName   map[string]*Blueprint
	enumByName map[string]*Enum
}

func newPackage(c *Catalog, parent *Package, name string) *Package {
	return &Package{
		Name:       name,
		catalog:    c,
		parent:     parent,
		byName:     make(map[string]*Package),
		bpByName:   make(map[string]*Blueprint),
		enumByName: make(map[string]*Enum),
	}
}

// Parent returns the parent package, or nil for a root package.
func (p *Package) Parent() *Package { return p.parent }

// Catalog returns the catalog the package belongs to.
func (p *Package) Catalog() *Catalog { return p.catalog }

// Path returns the path segments of the package, starting at its root.
func (p *Package) Path() []string {
	var segs []string
	for s := p; s != nil; s = s.parent {
		segs = append(segs, s.Name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}

// Root returns the root package of the tree holding p.
func (p *Package) Root() *Package {
	r := p
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// SubPath returns the path segments below the root package.
func (p *Package) SubPath() []string { return p.Path()[1:] }

func (p *Package) ref(name string) string {
	return strings.Join(append(p.Path(), name), "/")
}

// AddPackage returns the sub-package with the given name, creating it
// when missing.
func (p *Package) AddPackage(name string) *Package {
	if sub, ok := p.byName[name]; ok {
		return sub
	}
	sub := newPackage(p.catalog, p, name)
	p.byName[name] = sub
	p.packages = append(p.packages, sub)
	return sub
}

// Package returns the direct sub-package with the given name.
func (p *Package) Package(name string) (*Package, bool) {
	sub, ok := p.byName[name]
	return sub, ok
}

// Packages returns the direct sub-packages in insertion order.
func (p *Package) Packages() []*Package { return p.packages }

// AddBlueprint adds a blueprint to the package.
func (p *Package) AddBlueprint(b *Blueprint) error {
	if _, ok := p.bpByName[b.Name]; ok {
		return fmt.Errorf("%w: blueprint %q in package %q", ErrDuplicate, b.Name, strings.Join(p.Path(), "/"))
	}
	b.pkg = p
	p.bpByName[b.Name] = b
	p.blueprints = append(p.blueprints, b)
	return nil
}

// AddEnum adds an enum to the package.
func (p *Package) AddEnum(e *Enum) error {
	if _, ok := p.enumByName[e.Name]; ok {
		return fmt.Errorf("%w: enum %q in package %q", ErrDuplicate, e.Name, strings.Join(p.Path(), "/"))
	}
	e.pkg = p
	p.enumByName[e.Name] = e
	p.enums = append(p.enums, e)
	return nil
}

// Blueprints returns the blueprints of the package in insertion order.
func (p *Package) Blueprints() []*Blueprint { return p.blueprints }

// Enums returns the enums of the package in insertion order.
func (p *Package) Enums() []*Enum { return p.enums }

// Blueprint returns the blueprint declared directly in the package.
func (p *Package) Blueprint(name string) (*Blueprint, bool) {
	b, ok := p.bpByName[name]
	return b, ok
}

// Enum returns the enum declared directly in the package.
func (p *Package) Enum(name string) (*Enum, bool) {
	e, ok := p.enumByName[name]
	return e, ok
}

// LookupBlueprint resolves a blueprint reference from the scope of p.
func (p *Package) LookupBlueprint(ref string) (*Blueprint, bool) {
	return lookup(p, ref, (*Package).Blueprint)
}

// LookupEnum resolves an enum reference from the scope of p.
func (p *Package) LookupEnum(ref string) (*Enum, bool) {
	return lookup(p, ref, (*Package).Enum)
}

// Walk calls fn for p and every package below it, depth first,
// in insertion order.
func (p *Package) Walk(fn func(*Package) error) error {
	if err := fn(p); err != nil {
		return err
	}
	for _, sub := range p.packages {
		if err := sub.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

func (p *Package) descend(segs []string) (*Package, bool) {
	q := p
	for _, s := range segs {
		sub, ok := q.byName[s]
		if !ok {
			return nil, false
		}
		q = sub
	}
	return q, true
}

func lookup[T any](p *Package, ref string, get func(*Package, string) (T, bool)) (T, bool) {
	var zero T
	segs := splitRef(ref)
	if len(segs) == 0 {
		return zero, false
	}
	name, dir := segs[len(segs)-1], segs[:len(segs)-1]
	if len(dir) == 0 {
		for s := p; s != nil; s = s.parent {
			if v, ok := get(s, name); ok {
				return v, true
			}
		}
		return zero, false
	}
	if p.catalog != nil {
		if root, ok := p.catalog.Root(dir[0]); ok {
			if q, ok := root.descend(dir[1:]); ok {
				if v, ok := get(q, name); ok {
					return v, true
				}
			}
		}
	}
	for s := p; s != nil; s = s.parent {
		if q, ok := s.descend(dir); ok {
			if v, ok := get(q, name); ok {
				return v, true
			}
		}
	}
	return zero, false
}

// splitRef splits a reference such as "dmt://vehicles/Engine" or
// "/vehicles/Engine" into its path segments.
func splitRef(ref string) []string {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "dmt://")
	var segs []string
	for _, s := range strings.Split(ref, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Catalog is the forest of packages a generator run works on.
type Catalog struct {
	roots  []*Package
	byName map[string]*Package
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Package)}
}

// AddRoot returns the root package with the given name, creating it
// when missing.
func (c *Catalog) AddRoot(name string) *Package {
	if p, ok := c.byName[name]; ok {
		return p
	}
	p := newPackage(c, nil, name)
	c.byName[name] = p
	c.roots = append(c.roots, p)
	return p
}

// Root returns the root package with the given name.
func (c *Catalog) Root(name string) (*Package, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Roots returns the root packages in insertion order.
func (c *Catalog) Roots() []*Package { return c.roots }

// Resolve links every blueprint to the parents named in its extends
// list. It reports all unresolved references at once.
func (c *Catalog) Resolve() error {
	var errs []error
	for _, root := range c.roots {
		_ = root.Walk(func(p *Package) error {
			for _, b := range p.blueprints {
				b.parents = b.parents[:0]
				for _, ref := range b.extends {
					parent, ok := p.LookupBlueprint(ref)
					if !ok {
						errs = append(errs, fmt.Errorf("%w: blueprint %q extends %q", ErrUnresolved, b.Ref(), ref))
						continue
					}
					if parent != b {
						b.parents = append(b.parents, parent)
					}
				}
			}
			return nil
		})
	}
	return errors.Join(errs...)
}
