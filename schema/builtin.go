package schema

// Built-in SIMOS references.
const (
	SystemPackage  = "system"
	SIMOSPackage   = "SIMOS"
	NamedEntity    = "NamedEntity"
	NamedEntityRef = SystemPackage + "/" + SIMOSPackage + "/" + NamedEntity

	BlueprintType          = "system/SIMOS/Blueprint"
	BlueprintAttributeType = "system/SIMOS/BlueprintAttribute"
	EnumType               = "system/SIMOS/Enum"
)

// AddBuiltins adds the system/SIMOS package and its NamedEntity blueprint
// unless the catalog already defines them. Models extend NamedEntity to
// inherit the name and description attributes.
func (c *Catalog) AddBuiltins() {
	simos := c.AddRoot(SystemPackage).AddPackage(SIMOSPackage)
	if _, ok := simos.Blueprint(NamedEntity); ok {
		return
	}
	ne := NewBlueprint(NamedEntity).
		Describe("An entity with a name and a description.").
		MustAddAttributes(
			NewAttribute("name", "string").Describe("Name of the entity."),
			NewAttribute("description", "string").Describe("Description of the entity.").SetDefault(String("")),
		)
	_ = simos.AddBlueprint(ne)
}
