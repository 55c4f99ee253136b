package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/syssam/dmtgen/schema"
)

// RuntimePackage is the import path of the support library generated
// code depends on.
const RuntimePackage = "github.com/syssam/dmtgen/dmt"

// importRemaps rewrites the paths of foundational types to the runtime
// library, so entities extending or holding them do not depend on where
// the schema tree keeps those types.
var importRemaps = map[string]string{
	"system/SIMOS/namedentity": RuntimePackage,
}

// ImportInfo is the (module path, type name) pair of a referenced type.
// The renderer turns it into an import spec.
type ImportInfo struct {
	// Module is the fully qualified import path.
	Module string `json:"module" yaml:"module"`
	// Name is the type name inside Module.
	Name string `json:"name" yaml:"name"`
}

// ImportPath returns the import path of a type declared in pkg: the package
// path segments joined with the lower-cased type name.
func ImportPath(pkg *schema.Package, typeName string) string {
	var segs []string
	if pkg != nil {
		segs = pkg.Path()
	}
	p := strings.Join(append(segs, strings.ToLower(typeName)), "/")
	if remapped, ok := importRemaps[p]; ok {
		return remapped
	}
	return p
}

// firstToUpper upper-cases the first character of s.
func firstToUpper(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
