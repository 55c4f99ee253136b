package gen

import (
	"go/token"
	"slices"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title upper-cases the first letter of each word and keeps the rest.
var title = cases.Title(language.Und, cases.NoLower)

// pascal returns the exported method name of an attribute.
//
//	engine_power => EnginePower
//	maxSpeed     => MaxSpeed
//	type         => Type
func pascal(s string) string {
	s = strings.TrimRight(s, "_")
	if s == "" {
		return "X"
	}
	return firstToUpper(inflect.Camelize(s))
}

// MemberIdent returns the Go identifier of an enum value.
//
//	red        => Red
//	dark-blue  => DarkBlue
//	OFF ROAD   => OFFROAD
//	4wd        => V4Wd
func MemberIdent(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	id := b.String()
	switch {
	case id == "":
		return "Empty"
	case unicode.IsDigit([]rune(id)[0]):
		return "V" + id
	}
	return id
}

// memberIdents returns the identifiers of enum values, suffixed with "_"
// where two values map to the same identifier or collide with the
// generated Values function.
func memberIdents(values []string) []string {
	idents := make([]string, len(values))
	seen := map[string]bool{"Values": true}
	for i, v := range values {
		id := MemberIdent(v)
		for seen[id] {
			id += "_"
		}
		seen[id] = true
		idents[i] = id
	}
	return idents
}

// memberIdent returns the identifier of value among values.
func memberIdent(values []string, value string) string {
	if i := slices.Index(values, value); i >= 0 {
		return memberIdents(values)[i]
	}
	return MemberIdent(value)
}

// goPackageName returns a valid Go package name for a path segment or a
// type name.
//
//	Car        => car
//	my-models  => mymodels
//	3d         => p3d
func goPackageName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	switch {
	case name == "":
		return "pkg"
	case !unicode.IsLetter([]rune(name)[0]):
		return "p" + name
	case token.IsKeyword(name):
		return name + "_"
	}
	return name
}
