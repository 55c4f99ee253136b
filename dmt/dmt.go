// Package dmt holds the runtime types generated entities depend on.
//
// Entities extending the SIMOS NamedEntity blueprint are generated with the
// name and description attributes of NamedEntity. Attributes that refer to
// another entity without containing it hold a *Reference, and every
// generated entity has a Blueprint variable describing its attributes.
package dmt

import "strings"

// NamedEntity is an entity with a name and a description.
type NamedEntity struct {
	name        string
	description string
}

// NewNamedEntity returns an empty NamedEntity.
func NewNamedEntity() *NamedEntity {
	return &NamedEntity{}
}

// Name returns the name of the entity.
func (e *NamedEntity) Name() string { return e.name }

// SetName sets the name of the entity.
func (e *NamedEntity) SetName(value string) *NamedEntity {
	e.name = value
	return e
}

// Description returns the description of the entity.
func (e *NamedEntity) Description() string { return e.description }

// SetDescription sets the description of the entity.
func (e *NamedEntity) SetDescription(value string) *NamedEntity {
	e.description = value
	return e
}

// Reference refers to an entity that is not contained by its holder.
type Reference struct {
	// Type is the blueprint reference of the target, e.g. "vehicles/Engine".
	Type string `json:"type" yaml:"type"`
	// ID identifies the target entity.
	ID string `json:"id" yaml:"id"`
}

// NewReference returns a reference to the entity id of blueprint typ.
func NewReference(typ, id string) *Reference {
	return &Reference{Type: typ, ID: id}
}

// IsZero reports whether the reference points nowhere.
func (r *Reference) IsZero() bool {
	return r == nil || r.ID == ""
}

// String returns the reference in "type#id" form.
func (r *Reference) String() string {
	if r == nil {
		return ""
	}
	return r.Type + "#" + r.ID
}

// ParseReference parses a reference in "type#id" form. A string without a
// separator is an identifier of unknown type.
func ParseReference(s string) *Reference {
	typ, id, ok := strings.Cut(s, "#")
	if !ok {
		return &Reference{ID: s}
	}
	return &Reference{Type: typ, ID: id}
}
