// Package schema holds the in-memory catalog of DMT models that the code
// generator compiles.
//
// A catalog is a forest of packages. Every package owns blueprints (entity
// types with named, typed attributes), enums, and sub-packages:
//
//	Catalog
//	├── system
//	│   └── SIMOS
//	│       └── NamedEntity (blueprint)
//	└── vehicles
//	    ├── Vehicle (blueprint)
//	    ├── Engine  (blueprint)
//	    └── colors
//	        └── Color (enum)
//
// # Attributes
//
// An attribute is either primitive (its type is one of number, double,
// string, char, integer, short or boolean), enum-typed (it carries an
// enumType key), or references another blueprint. Optional keys are read
// through [Attribute.Lookup], which separates an absent key from a present
// but falsy one:
//
//	if v, ok := attr.Lookup(schema.KeyDefault); ok {
//	    // v.Kind() is KindString, KindNumber or KindBool.
//	}
//
// # Lookups
//
// [Package.LookupBlueprint] and [Package.LookupEnum] resolve a type
// reference the way DMT models write them. A bare name is searched in the
// package and then in its ancestors. A path such as "system/SIMOS/NamedEntity"
// is resolved from a catalog root first and relative to the package second.
// Lookups never mutate the catalog, so they are stable across repeated calls.
package schema
