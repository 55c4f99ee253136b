package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dmtgen/compiler/gen"
)

const (
	vehicleJSON = `{
  "name": "Vehicle",
  "type": "system/SIMOS/Blueprint",
  "description": "A road vehicle",
  "attributes": [
    {"name": "name", "type": "system/SIMOS/BlueprintAttribute", "attributeType": "string"},
    {"name": "wheels", "attributeType": "integer", "default": 4},
    {"name": "engine", "attributeType": "parts/Engine"},
    {"name": "fuel", "attributeType": "parts/FuelType"}
  ]
}`
	engineYAML = `name: Engine
type: system/SIMOS/Blueprint
attributes:
  - name: power
    attributeType: number
    default: 150.5
`
	fuelJSON = `{
  "name": "FuelType",
  "type": "system/SIMOS/Enum",
  "values": ["petrol", "diesel"],
  "labels": ["Petrol", "Diesel"]
}`
)

func writeTree(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "parts"), 0o755))
	write(t, filepath.Join(dir, "Vehicle.json"), vehicleJSON)
	write(t, filepath.Join(dir, "parts", "Engine.yaml"), engineYAML)
	write(t, filepath.Join(dir, "parts", "FuelType.json"), fuelJSON)
	return dir
}

func write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func read(t *testing.T, name string) string {
	t.Helper()
	buf, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(buf)
}

func TestLoadGraph(t *testing.T) {
	g, err := LoadGraph(writeTree(t), nil)
	require.NoError(t, err)
	require.Len(t, g.Models, 2)
	require.Len(t, g.Enums, 1)

	v, ok := g.Model("Vehicle")
	require.True(t, ok)
	assert.Equal(t, "models/vehicle", v.Module)
	assert.True(t, v.HasImport("Engine"))
	assert.True(t, v.HasImport("FuelType"))

	wheels, ok := v.Field("wheels")
	require.True(t, ok)
	assert.Equal(t, "4", wheels.Init)

	fuel, ok := v.Field("fuel")
	require.True(t, ok)
	assert.True(t, fuel.IsEnum)
	assert.Equal(t, "Petrol", fuel.EnumDefault)
}

func TestLoadGraphError(t *testing.T) {
	dir := writeTree(t)
	write(t, filepath.Join(dir, "Broken.json"), `{
  "name": "Broken",
  "type": "system/SIMOS/Blueprint",
  "attributes": [{"name": "x", "attributeType": "decimal"}]
}`)
	_, err := LoadGraph(dir, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gen.ErrUnknownPrimitive))

	_, err = LoadGraph(filepath.Join(dir, "missing"), nil)
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	dir := writeTree(t)
	target := t.TempDir()
	cfg, err := gen.NewConfig(gen.WithTarget(target), gen.WithVersion("1.2.0"), gen.WithLicense("MIT"))
	require.NoError(t, err)
	require.NoError(t, Generate(dir, cfg))

	for _, name := range []string{
		"models/go.mod",
		"models/doc.go",
		"models/vehicle/vehicle.go",
		"models/parts/engine/engine.go",
		"models/parts/fueltype/fueltype.go",
		"models/blueprints/vehicle.go",
		"models/blueprints/parts/engine.go",
	} {
		assert.FileExists(t, filepath.Join(target, name))
	}
	vehicle := read(t, filepath.Join(target, "models/vehicle/vehicle.go"))
	assert.Contains(t, vehicle, "package vehicle")
	assert.Contains(t, vehicle, `"models/parts/engine"`)
	assert.Contains(t, vehicle, "func NewVehicle() *Vehicle")
	assert.Regexp(t, `fuel:\s+fueltype\.Petrol`, vehicle)
	assert.Contains(t, read(t, filepath.Join(target, "models/doc.go")), `const Version = "1.2.0"`)
}

func TestGenerateConfig(t *testing.T) {
	err := Generate(writeTree(t), &gen.Config{})
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerateCleanup(t *testing.T) {
	dir := writeTree(t)
	target := t.TempDir()
	stale := filepath.Join(target, "models", "stale.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	write(t, stale, "package models\n")

	cfg, err := gen.NewConfig(gen.WithTarget(target), gen.WithCleanup())
	require.NoError(t, err)
	require.NoError(t, Generate(dir, cfg))
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(target, "models", "go.mod"))
}

func TestSchemaChange(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "models/Vehicle.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "models/Engine.YAML", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "models/Engine.yml", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "models/Engine.yml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "models/notes.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "models/parts", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "models/parts", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, schemaChange(tt.ev), tt.ev.String())
	}
}

func TestWatch(t *testing.T) {
	old := debounce
	debounce = 20 * time.Millisecond
	t.Cleanup(func() { debounce = old })

	dir := writeTree(t)
	target := t.TempDir()
	cfg, err := gen.NewConfig(gen.WithTarget(target), gen.WithSourceOnly())
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		results []error
	)
	runs := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(results)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, cfg, func(err error) {
			mu.Lock()
			results = append(results, err)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool { return runs() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.FileExists(t, filepath.Join(target, "models", "vehicle", "vehicle.go"))

	write(t, filepath.Join(dir, "parts", "Wheel.json"), `{"name": "Wheel", "type": "system/SIMOS/Blueprint"}`)
	require.Eventually(t, func() bool { return runs() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(target, "models", "parts", "wheel", "wheel.go"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.NoError(t, results[0])
	assert.NoError(t, results[len(results)-1])
}
