package gen

import "text/template"

// packageTemplates are rendered once per generated root.
var packageTemplates = []struct {
	name string
	file string
}{
	{name: "gomod", file: "go.mod"},
	{name: "doc", file: "doc.go"},
}

var templates = template.Must(template.New("dmtgen").
	Funcs(template.FuncMap{"oneline": oneLine}).
	Parse(`
{{- define "gomod" -}}
module {{ .Module }}

go {{ .GoVersion }}

require {{ .Runtime }} {{ .RuntimeVersion }}
{{ end }}

{{- define "doc" -}}
// {{ .Header }}

// Package {{ .Package }} holds the entities generated from the {{ .Root }} schema.
//
// Entities:
{{- range .Models }}
//   - {{ .Type }}{{ with oneline .Description }}: {{ . }}{{ end }}
{{- end }}
{{- if .Enums }}
//
// Enumerations:
{{- range .Enums }}
//   - {{ .Type }}
{{- end }}
{{- end }}
package {{ .Package }}

// Version is the version of the generated package.
const Version = {{ printf "%q" .Version }}

// License is the license of the generated package.
const License = {{ printf "%q" .License }}
{{ end }}
`))
