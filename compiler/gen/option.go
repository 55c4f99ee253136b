package gen

import (
	"errors"
	"log/slog"

	"github.com/Masterminds/semver/v3"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the module path of the generated root package, for
// example "example.com/fleet". Import paths are rebased onto it. It
// defaults to the name of the schema root.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of parallel workers used to compile and
// render entities.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithVersion sets the version recorded in the generated package
// documentation. It must be a semantic version.
func WithVersion(v string) Option {
	return func(c *Config) error {
		sv, err := semver.NewVersion(v)
		if err != nil {
			return NewConfigError("Version", v, err.Error())
		}
		c.Version = sv.String()
		return nil
	}
}

// WithLicense sets the license recorded in the generated package
// documentation.
func WithLicense(license string) Option {
	return func(c *Config) error {
		c.License = license
		return nil
	}
}

// WithSourceOnly skips the go.mod and doc.go packaging files.
func WithSourceOnly() Option {
	return func(c *Config) error {
		c.SourceOnly = true
		return nil
	}
}

// WithCleanup removes the target directory before generating.
func WithCleanup() Option {
	return func(c *Config) error {
		c.Cleanup = true
		return nil
	}
}

// WithLegacyBoolDefaults converts string defaults of boolean attributes
// the way older DMT generators did: any non-empty string is true.
func WithLegacyBoolDefaults() Option {
	return func(c *Config) error {
		c.LegacyBoolDefaults = true
		return nil
	}
}

// WithLogger sets the logger generation progress is reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
