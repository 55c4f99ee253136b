package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate is returned when a name is declared twice in the same scope.
	ErrDuplicate = errors.New("schema: duplicate definition")
	// ErrUnresolved is returned when a reference cannot be found in the catalog.
	ErrUnresolved = errors.New("schema: unresolved reference")
)

// Blueprint is an entity type definition.
type Blueprint struct {
	// Name of the blueprint.
	Name string
	// Description of the blueprint.
	Description string

	pkg     *Package
	extends []string
	parents []*Blueprint
	attrs   []*Attribute
	index   map[string]int
}

// NewBlueprint returns an empty blueprint.
func NewBlueprint(name string) *Blueprint {
	return &Blueprint{Name: name, index: make(map[string]int)}
}

// Describe sets the description.
func (b *Blueprint) Describe(s string) *Blueprint {
	b.Description = s
	return b
}

// Extends records references to parent blueprints. They are resolved by
// Catalog.Resolve.
func (b *Blueprint) Extends(refs ...string) *Blueprint {
	b.extends = append(b.extends, refs...)
	return b
}

// ExtendsRefs returns the parent references as declared.
func (b *Blueprint) ExtendsRefs() []string { return b.extends }

// Parents returns the resolved parent blueprints.
func (b *Blueprint) Parents() []*Blueprint { return b.parents }

// Package returns the package owning the blueprint.
func (b *Blueprint) Package() *Package { return b.pkg }

// AddAttribute appends an attribute. Attribute names are unique
// within a blueprint.
func (b *Blueprint) AddAttribute(a *Attribute) error {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if _, ok := b.index[a.Name]; ok {
		return fmt.Errorf("%w: attribute %q in blueprint %q", ErrDuplicate, a.Name, b.Name)
	}
	b.index[a.Name] = len(b.attrs)
	b.attrs = append(b.attrs, a)
	return nil
}

// MustAddAttributes is like AddAttribute but panics on error. It is meant
// for building blueprints in code and tests.
func (b *Blueprint) MustAddAttributes(attrs ...*Attribute) *Blueprint {
	for _, a := range attrs {
		if err := b.AddAttribute(a); err != nil {
			panic(err)
		}
	}
	return b
}

// Attributes returns the attributes declared on the blueprint itself,
// in declaration order.
func (b *Blueprint) Attributes() []*Attribute { return b.attrs }

// Attribute returns the declared attribute with the given name.
func (b *Blueprint) Attribute(name string) (*Attribute, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.attrs[i], true
}

// AllAttributes returns the inheritance-flattened attribute set: the
// attributes of the parents first, in extends order, followed by the
// blueprint's own. An attribute redeclared by a child replaces the
// inherited one at the inherited position.
func (b *Blueprint) AllAttributes() []*Attribute {
	var (
		all   []*Attribute
		index = make(map[string]int)
		seen  = make(map[*Blueprint]bool)
	)
	var walk func(*Blueprint)
	walk = func(bp *Blueprint) {
		if seen[bp] {
			return
		}
		seen[bp] = true
		for _, p := range bp.parents {
			walk(p)
		}
		for _, a := range bp.attrs {
			if i, ok := index[a.Name]; ok {
				all[i] = a
				continue
			}
			index[a.Name] = len(all)
			all = append(all, a)
		}
	}
	walk(b)
	return all
}

// Ref returns the absolute reference of the blueprint, e.g.
// "vehicles/Vehicle". Blueprints outside a package return their name.
func (b *Blueprint) Ref() string {
	if b.pkg == nil {
		return b.Name
	}
	return b.pkg.ref(b.Name)
}

// Enum is an enumeration type.
type Enum struct {
	// Name of the enum.
	Name string
	// Description of the enum.
	Description string
	// Values are the member values in declaration order.
	Values []string
	// Labels are optional display labels, parallel to Values.
	Labels []string
	// Default is the default member. Empty means the first value.
	Default string

	pkg *Package
}

// NewEnum returns an enum with the given values.
func NewEnum(name string, values ...string) *Enum {
	return &Enum{Name: name, Values: values}
}

// Package returns the package owning the enum.
func (e *Enum) Package() *Package { return e.pkg }

// DefaultMember returns the default member name.
func (e *Enum) DefaultMember() string {
	if e.Default != "" || len(e.Values) == 0 {
		return e.Default
	}
	return e.Values[0]
}

// Label returns the label of the i-th value, falling back to the value.
func (e *Enum) Label(i int) string {
	if i < len(e.Labels) && e.Labels[i] != "" {
		return e.Labels[i]
	}
	return e.Values[i]
}
