package gen

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dmtgen/schema"
)

// fleetCatalog returns a catalog with n sub-packages, each holding a few
// blueprints that reference each other and an enum.
func fleetCatalog(b *testing.B, n int) *schema.Package {
	b.Helper()
	c := schema.NewCatalog()
	root := c.AddRoot("fleet")
	for i := range n {
		pkg := root.AddPackage(fmt.Sprintf("depot%d", i))
		require.NoError(b, pkg.AddEnum(schema.NewEnum("Status", "active", "retired", "in-repair")))
		require.NoError(b, pkg.AddBlueprint(schema.NewBlueprint("Wheel").MustAddAttributes(
			schema.NewAttribute("diameter", "number").SetDefault(schema.Float(17)),
			schema.NewAttribute("pressure", "number"),
		)))
		require.NoError(b, pkg.AddBlueprint(schema.NewBlueprint("Truck").
			Extends(schema.NamedEntityRef).
			MustAddAttributes(
				schema.NewAttribute("axles", "integer").SetDefault(schema.Int(2)),
				schema.NewAttribute("wheels", "Wheel").SetDimensions("*"),
				schema.NewAttribute("spare", "Wheel"),
				schema.NewAttribute("status", "Status").SetDefault(schema.String("active")),
				schema.NewAttribute("towing", "Truck").SetContained(false),
			)))
	}
	c.AddBuiltins()
	require.NoError(b, c.Resolve())
	return root
}

func BenchmarkNewGraph(b *testing.B) {
	root := fleetCatalog(b, 50)
	b.ResetTimer()
	for b.Loop() {
		_, err := NewGraph(DefaultConfig(), root)
		require.NoError(b, err)
	}
}

func BenchmarkGenerate(b *testing.B) {
	root := fleetCatalog(b, 50)
	graph, err := NewGraph(DefaultConfig(), root)
	require.NoError(b, err)
	b.ResetTimer()
	for b.Loop() {
		require.NoError(b, NewGenerator(graph, memfs.New()).Generate(context.Background()))
	}
}
