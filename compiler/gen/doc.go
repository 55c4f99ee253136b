// Package gen compiles DMT blueprints into Go entity packages.
//
// Each blueprint becomes its own Go package holding one struct with
// getters, setters and a constructor that applies the attribute defaults.
// Each enum becomes a package with a string type and one constant per
// member.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Schema catalog (schema.Catalog, filled by compiler/load)
//	        ↓
//	   Compiler (one GenerationModel per blueprint)
//	        ↓
//	   Graph (models and enums of the compiled roots)
//	        ↓
//	   Generator (jennifer) + TemplateWriter (go.mod, doc.go)
//	        ↓
//	   Generated code (<target>/<root>/...)
//
// # Key Types
//
//   - Compiler: resolves attribute types, defaults and references
//   - GenerationModel: the render-ready form of one blueprint
//   - Field: one compiled attribute
//   - ImportInfo: the (module, type) pair of a referenced type
//   - Graph: all models and enums of a generation run
//   - Config: global configuration for code generation
//
// # Type Resolution
//
// Primitive attribute types map to Go scalars:
//
//	number, double    float64
//	string, char      string
//	integer, short    int
//	boolean           bool
//
// Any other type names a blueprint or an enum, looked up from the package
// of the owning blueprint outwards. Contained blueprints and enums are
// imported; blueprints with contained set to false are cross-references
// and are held as *dmt.Reference.
//
// # Error Handling
//
// The package uses structured error types for better error handling:
//
//   - SchemaError: blueprint errors, naming the entity and attribute
//   - ConfigError: configuration errors
//   - GenerationError: rendering and output errors
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, root)
//	if errors.Is(err, gen.ErrUnresolvedType) {
//	    // an attribute names a type the catalog does not have
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./output"),
//	    gen.WithVersion("1.2.0"),
//	    gen.WithLicense("MIT"),
//	)
//	compiler.Generate("./models", config)
//
// The same settings can be read from a YAML file with LoadConfigFile.
package gen
