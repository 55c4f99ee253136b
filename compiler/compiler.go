// Package compiler loads DMT schema trees and generates Go packages from
// them.
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/syssam/dmtgen/compiler/gen"
	"github.com/syssam/dmtgen/compiler/load"
)

// Generate loads the schema tree at schemaDir and writes the generated
// packages under cfg.Target, in a directory named after the tree.
func Generate(schemaDir string, cfg *gen.Config) error {
	return GenerateContext(context.Background(), schemaDir, cfg)
}

// GenerateContext is like Generate with a context.
func GenerateContext(ctx context.Context, schemaDir string, cfg *gen.Config) error {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	if cfg.Target == "" {
		return gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	graph, err := LoadGraph(schemaDir, cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := gen.NewGenerator(graph, osfs.New(cfg.Target)).Generate(ctx); err != nil {
		return err
	}
	cfg.Log().Info("generated packages",
		"schema", schemaDir,
		"target", filepath.Join(cfg.Target, load.RootName(schemaDir)),
		"entities", len(graph.Models),
		"enums", len(graph.Enums),
		"took", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// LoadGraph loads the schema tree at schemaDir and compiles its root
// package.
func LoadGraph(schemaDir string, cfg *gen.Config) (*gen.Graph, error) {
	catalog, err := load.Dir(schemaDir)
	if err != nil {
		return nil, err
	}
	name := load.RootName(schemaDir)
	root, ok := catalog.Root(name)
	if !ok {
		return nil, fmt.Errorf("compiler: no schema package %q", name)
	}
	cfg.Log().Debug("loaded schema", "root", name, "dir", schemaDir)
	return gen.NewGraph(cfg, root)
}

// debounce is the quiet period after a change before regenerating.
var debounce = 250 * time.Millisecond

// Watch generates once and then again after every change to a schema
// document under schemaDir, until ctx is done. onResult receives the
// outcome of every run. Watch returns an error only when the watcher
// cannot be set up.
func Watch(ctx context.Context, schemaDir string, cfg *gen.Config, onResult func(error)) error {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("compiler: watch: %w", err)
	}
	defer w.Close()
	if err := watchTree(w, schemaDir); err != nil {
		return fmt.Errorf("compiler: watch: %w", err)
	}
	log := cfg.Log().With("schema", schemaDir)
	run := func() { onResult(GenerateContext(ctx, schemaDir, cfg)) }
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := watchTree(w, ev.Name); err != nil {
						log.Warn("cannot watch directory", "dir", ev.Name, "error", err)
					}
				}
			}
			if !schemaChange(ev) {
				continue
			}
			log.Debug("schema changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			run()
		}
	}
}

// watchTree adds dir and every directory below it to w.
func watchTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}

// schemaChange reports whether ev touches a schema document, or removes
// something that may be a package directory.
func schemaChange(ev fsnotify.Event) bool {
	if load.IsDocument(ev.Name) {
		return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
	}
	return filepath.Ext(ev.Name) == "" && (ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename))
}
