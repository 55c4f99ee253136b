package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidSchema    = errors.New("dmtgen: invalid schema")
	ErrMissingConfig    = errors.New("dmtgen: missing configuration")
	ErrInvalidConfig    = errors.New("dmtgen: invalid configuration")
	ErrGenerationFailed = errors.New("dmtgen: code generation failed")
)

// Causes wrapped by a SchemaError.
var (
	// ErrUnresolvedType is an attribute type that is neither a primitive
	// nor a blueprint or enum reachable from the owning package.
	ErrUnresolvedType = errors.New("unresolved type reference")
	// ErrUnknownPrimitive is a lower-case type name with no scalar.
	ErrUnknownPrimitive = errors.New("unknown type")
	// ErrAmbiguousDefault is a default whose form does not fit the
	// attribute type.
	ErrAmbiguousDefault = errors.New("ambiguous default value")
)

// SchemaError reports a blueprint that cannot be compiled.
type SchemaError struct {
	Blueprint string // blueprint name
	Attribute string // attribute name, empty for blueprint-level errors
	Message   string
	Cause     error
}

func (e *SchemaError) Error() string {
	var where []string
	if e.Blueprint != "" {
		where = append(where, "blueprint "+e.Blueprint)
	}
	if e.Attribute != "" {
		where = append(where, fmt.Sprintf("attribute %q", e.Attribute))
	}
	return describe("dmtgen: schema", strings.Join(where, ", "), e.Message, e.Cause)
}

func (e *SchemaError) Unwrap() error        { return e.Cause }
func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a SchemaError for attribute attr of blueprint bp.
func NewSchemaError(bp, attr, message string, cause error) *SchemaError {
	return &SchemaError{Blueprint: bp, Attribute: attr, Message: message, Cause: cause}
}

// ConfigError reports an invalid configuration setting.
type ConfigError struct {
	Option string
	Value  any // offending value, nil when missing
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("dmtgen: config %s=%v: %s", e.Option, e.Value, e.Reason)
	}
	return fmt.Sprintf("dmtgen: config %s: %s", e.Option, e.Reason)
}

// Is matches ErrMissingConfig when no value was given and ErrInvalidConfig
// when the given value was rejected.
func (e *ConfigError) Is(target error) bool {
	if e.Value == nil {
		return target == ErrMissingConfig
	}
	return target == ErrInvalidConfig
}

// NewConfigError returns a ConfigError for option.
func NewConfigError(option string, value any, reason string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Reason: reason}
}

// GenerationError reports a failure to render or write an output file.
type GenerationError struct {
	Phase string // entity, enum, blueprint, package or cleanup
	File  string // path on the output filesystem
	Op    string // render, write, format...
	Cause error
}

func (e *GenerationError) Error() string {
	where := e.Phase
	if e.File != "" {
		where = strings.TrimSpace(where + " " + e.File)
	}
	return describe("dmtgen: generate", where, e.Op, e.Cause)
}

func (e *GenerationError) Unwrap() error        { return e.Cause }
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError for file.
func NewGenerationError(phase, file, op string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, File: file, Op: op, Cause: cause}
}

// describe joins the non-empty parts of an error message.
func describe(prefix, where, message string, cause error) string {
	parts := []string{prefix}
	if where != "" {
		parts[0] += " " + where
	}
	if message != "" {
		parts = append(parts, message)
	}
	if cause != nil {
		parts = append(parts, cause.Error())
	}
	return strings.Join(parts, ": ")
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool { return errorAs[*SchemaError](err) }

// IsConfigError reports whether err wraps a *ConfigError.
func IsConfigError(err error) bool { return errorAs[*ConfigError](err) }

// IsGenerationError reports whether err wraps a *GenerationError.
func IsGenerationError(err error) bool { return errorAs[*GenerationError](err) }

func errorAs[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
