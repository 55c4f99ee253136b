// testgen builds a small blueprint catalog in code and generates it into a
// temporary directory.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/syssam/dmtgen/compiler/gen"
	"github.com/syssam/dmtgen/schema"
)

func main() {
	outDir, err := os.MkdirTemp("", "dmtgen-testgen-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	root, err := catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build catalog: %v\n", err)
		os.Exit(1)
	}
	config, err := gen.NewConfig(
		gen.WithTarget(outDir),
		gen.WithVersion("0.0.1"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}
	graph, err := gen.NewGraph(config, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}
	if err := gen.NewGenerator(graph, osfs.New(outDir)).Generate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGenerated files:")
	err = filepath.WalkDir(outDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(outDir, path)
		fmt.Printf("  %s (%d bytes)\n", rel, info.Size())
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list files: %v\n", err)
	}

	fmt.Println("\n--- Sample: garage/car/car.go ---")
	if content, err := os.ReadFile(filepath.Join(outDir, "garage", "car", "car.go")); err == nil {
		sc := bufio.NewScanner(bytes.NewReader(content))
		for n := 0; sc.Scan(); n++ {
			if n == 60 {
				fmt.Println("... (truncated)")
				break
			}
			fmt.Println(sc.Text())
		}
	}
	fmt.Println("\nTo verify compilation: cd " + filepath.Join(outDir, "garage") + " && go build ./...")
}

func catalog() (*schema.Package, error) {
	c := schema.NewCatalog()
	root := c.AddRoot("garage")
	color := schema.NewEnum("Color", "red", "silver", "black")
	color.Labels = []string{"Red", "Silver", "Black"}
	if err := root.AddEnum(color); err != nil {
		return nil, err
	}
	if err := root.AddBlueprint(schema.NewBlueprint("Driver").
		Extends(schema.NamedEntityRef).
		MustAddAttributes(schema.NewAttribute("licensed", "boolean").SetDefault(schema.Bool(true)))); err != nil {
		return nil, err
	}
	if err := root.AddBlueprint(schema.NewBlueprint("Car").
		Describe("A passenger car").
		MustAddAttributes(
			schema.NewAttribute("model", "string").SetDefault(schema.String("Beetle")),
			schema.NewAttribute("seats", "integer").SetDefault(schema.Int(5)),
			schema.NewAttribute("color", "Color"),
			schema.NewAttribute("driver", "Driver").SetContained(false),
			schema.NewAttribute("passengers", "Driver").SetDimensions("*"),
		)); err != nil {
		return nil, err
	}
	c.AddBuiltins()
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return root, nil
}
