package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Defaults of the packaging metadata.
const (
	DefaultTarget  = "output"
	DefaultVersion = "0.1.0"
	DefaultLicense = "UNKNOWN"
)

// Config holds the configuration of a generation run.
type Config struct {
	// Target is the output directory.
	Target string
	// Package is the module path of the generated root package. Empty
	// means the name of the schema root.
	Package string
	// Header is the comment written at the top of every generated file.
	Header string
	// Workers bounds the parallelism of compilation and rendering.
	Workers int
	// Version and License are recorded in the packaging files.
	Version string
	License string
	// SourceOnly skips go.mod and doc.go.
	SourceOnly bool
	// Cleanup removes Target before writing.
	Cleanup bool
	// LegacyBoolDefaults selects BoolTruthy default conversion.
	LegacyBoolDefaults bool
	// Logger receives progress. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns a config with the default settings.
func DefaultConfig() *Config {
	return &Config{
		Target:  DefaultTarget,
		Version: DefaultVersion,
		License: DefaultLicense,
	}
}

// OutputConfig groups the output-related settings.
type OutputConfig struct {
	Target     string
	Package    string
	Header     string
	SourceOnly bool
	Cleanup    bool
}

// Output returns the output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:     c.Target,
		Package:    c.Package,
		Header:     c.Header,
		SourceOnly: c.SourceOnly,
		Cleanup:    c.Cleanup,
	}
}

// PackageName returns the module path generated for the schema root.
func (c *Config) PackageName(root string) string {
	if c.Package != "" {
		return c.Package
	}
	return root
}

// Log returns the configured logger, or a logger discarding everything.
func (c *Config) Log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Config) workers() int {
	if c == nil || c.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

func (c *Config) header() string {
	if c != nil && c.Header != "" {
		return c.Header
	}
	return "Code generated by dmtgen. DO NOT EDIT."
}

// fileConfig is the layout of a configuration file.
type fileConfig struct {
	Target             string `yaml:"target"`
	Package            string `yaml:"package"`
	Header             string `yaml:"header"`
	Workers            int    `yaml:"workers"`
	Version            string `yaml:"version"`
	License            string `yaml:"license"`
	SourceOnly         bool   `yaml:"source_only"`
	Cleanup            bool   `yaml:"cleanup"`
	LegacyBoolDefaults bool   `yaml:"legacy_bool_defaults"`
}

// LoadConfigFile reads a YAML configuration file and returns the options
// it sets. Keys left out of the file produce no option, so the result can
// be followed by options that override it.
func LoadConfigFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data. See LoadConfigFile.
func ParseConfig(data []byte) ([]Option, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError("file", err, "cannot decode YAML")
	}
	var opts []Option
	if fc.Target != "" {
		opts = append(opts, WithTarget(fc.Target))
	}
	if fc.Package != "" {
		opts = append(opts, WithPackage(fc.Package))
	}
	if fc.Header != "" {
		opts = append(opts, WithHeader(fc.Header))
	}
	if fc.Workers != 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	if fc.Version != "" {
		opts = append(opts, WithVersion(fc.Version))
	}
	if fc.License != "" {
		opts = append(opts, WithLicense(fc.License))
	}
	if fc.SourceOnly {
		opts = append(opts, WithSourceOnly())
	}
	if fc.Cleanup {
		opts = append(opts, WithCleanup())
	}
	if fc.LegacyBoolDefaults {
		opts = append(opts, WithLegacyBoolDefaults())
	}
	return opts, nil
}
