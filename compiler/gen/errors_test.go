package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	tests := []struct {
		name string
		err  *SchemaError
		want string
	}{
		{
			name: "attribute",
			err:  NewSchemaError("Vehicle", "wheels", "invalid default", errors.New("boom")),
			want: `dmtgen: schema blueprint Vehicle, attribute "wheels": invalid default: boom`,
		},
		{
			name: "blueprint",
			err:  &SchemaError{Blueprint: "Vehicle", Message: "duplicate module"},
			want: "dmtgen: schema blueprint Vehicle: duplicate module",
		},
		{
			name: "bare",
			err:  &SchemaError{},
			want: "dmtgen: schema",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	t.Run("unwrap", func(t *testing.T) {
		cause := fmt.Errorf("%w %q", ErrUnresolvedType, "parts/Wheel")
		err := fmt.Errorf("compile: %w", NewSchemaError("Vehicle", "wheel", "", cause))
		assert.ErrorIs(t, err, ErrUnresolvedType)
		assert.ErrorIs(t, err, ErrInvalidSchema)
		assert.NotErrorIs(t, err, ErrMissingConfig)
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	assert.Equal(t, "dmtgen: config Version=latest: not a semantic version",
		NewConfigError("Version", "latest", "not a semantic version").Error())
	assert.Equal(t, "dmtgen: config Package: cannot be empty",
		NewConfigError("Package", nil, "cannot be empty").Error())

	err := fmt.Errorf("setup: %w", NewConfigError("Target", nil, "missing"))
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	invalid := NewConfigError("Workers", -1, "workers must be positive")
	assert.ErrorIs(t, invalid, ErrInvalidConfig)
	assert.NotErrorIs(t, invalid, ErrMissingConfig)
	assert.True(t, IsConfigError(err))
	assert.False(t, IsConfigError(errors.New("other")))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewGenerationError("entity", "models/vehicle/vehicle.go", "write", cause)
	assert.Equal(t, "dmtgen: generate entity models/vehicle/vehicle.go: write: disk full", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, ErrGenerationFailed)

	assert.Equal(t, "dmtgen: generate enum", NewGenerationError("enum", "", "", nil).Error())
	assert.True(t, IsGenerationError(NewGenerationError("package", "go.mod", "", nil)))
	assert.False(t, IsGenerationError(NewSchemaError("Vehicle", "", "", nil)))
}
