package gen

import (
	"fmt"

	"github.com/syssam/dmtgen/schema"
)

// reference is a resolved non-primitive attribute type.
type reference struct {
	bp   *schema.Blueprint
	enum *schema.Enum
	// crossRef marks a non-contained blueprint reference.
	crossRef bool
}

func (r reference) isEnum() bool { return r.enum != nil }

// name returns the declared type name.
func (r reference) name() string {
	if r.enum != nil {
		return r.enum.Name
	}
	return r.bp.Name
}

func (r reference) pkg() *schema.Package {
	if r.enum != nil {
		return r.enum.Package()
	}
	return r.bp.Package()
}

// key identifies the referenced type by its import path, so same-named
// types of different packages stay distinct.
func (r reference) key() string {
	return ImportPath(r.pkg(), r.name())
}

// resolveReference resolves an enum-typed or blueprint-typed attribute in
// the scope of the owning package. An enumType key wins; otherwise the
// attribute type is looked up as a blueprint and then as an enum.
func resolveReference(scope *schema.Package, a *schema.Attribute) (reference, error) {
	if scope == nil {
		return reference{}, fmt.Errorf("%w %q: blueprint has no package scope", ErrUnresolvedType, a.Type())
	}
	if ref, ok := a.EnumType(); ok {
		e, ok := scope.LookupEnum(ref)
		if !ok {
			return reference{}, fmt.Errorf("%w: enum %q", ErrUnresolvedType, ref)
		}
		return reference{enum: e}, nil
	}
	if bp, ok := scope.LookupBlueprint(a.Type()); ok {
		return reference{bp: bp, crossRef: !a.Contained()}, nil
	}
	if e, ok := scope.LookupEnum(a.Type()); ok {
		return reference{enum: e}, nil
	}
	return reference{}, fmt.Errorf("%w %q", ErrUnresolvedType, a.Type())
}

// register records r in imports or crossRefs. Contained blueprints and
// enums are imported; other blueprints are cross-referenced.
func (r reference) register(imports, crossRefs *orderedSet) {
	if r.isEnum() || !r.crossRef {
		imports.add(r)
		return
	}
	crossRefs.add(r)
}

// orderedSet is a set of references keyed by import path that keeps the
// order of first insertion.
type orderedSet struct {
	keys  []string
	items map[string]reference
}

func newOrderedSet() *orderedSet {
	return &orderedSet{items: make(map[string]reference)}
}

// add inserts r unless its type is already present.
func (s *orderedSet) add(r reference) bool {
	key := r.key()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.keys = append(s.keys, key)
	s.items[key] = r
	return true
}

// refersTo reports whether bp is a member of the set.
func (s *orderedSet) refersTo(bp *schema.Blueprint) bool {
	for _, r := range s.items {
		if r.bp == bp {
			return true
		}
	}
	return false
}

// remove deletes every entry resolving to bp.
func (s *orderedSet) remove(bp *schema.Blueprint) {
	keys := s.keys[:0]
	for _, k := range s.keys {
		if s.items[k].bp == bp {
			delete(s.items, k)
			continue
		}
		keys = append(keys, k)
	}
	s.keys = keys
}

func (s *orderedSet) len() int { return len(s.keys) }

// values returns the references in insertion order.
func (s *orderedSet) values() []reference {
	refs := make([]reference, 0, len(s.keys))
	for _, k := range s.keys {
		refs = append(refs, s.items[k])
	}
	return refs
}
