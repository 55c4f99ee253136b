package view

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of command output.
type Format string

const (
	FormatHuman   Format = ""
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat parses the value of the -o flag.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatHuman, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	case "human", "text":
		return FormatHuman, nil
	}
	return FormatHuman, fmt.Errorf("invalid output format %q, expected one of: json, yaml, msgpack", s)
}

// Encode writes v to w in format f. Msgpack keys follow the json tags and
// maps are written with sorted keys, so the output is stable.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.SetSortMapKeys(true)
		return enc.Encode(v)
	}
	return fmt.Errorf("format %q has no encoder", f)
}
