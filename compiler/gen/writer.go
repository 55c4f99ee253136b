package gen

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// RuntimeVersion is the version of the runtime module required by the
// generated go.mod.
const RuntimeVersion = "v0.1.0"

// TemplateWriter renders the packaging files of every root with
// text/template. Go outputs are formatted with goimports.
type TemplateWriter struct {
	graph   *Graph
	fs      billy.Filesystem
	tmpl    *template.Template
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewTemplateWriter creates a new template-based writer.
func NewTemplateWriter(g *Graph, fs billy.Filesystem) *TemplateWriter {
	return &TemplateWriter{
		graph:   g,
		fs:      fs,
		tmpl:    templates,
		workers: g.workers(),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *TemplateWriter) WithWorkers(n int) *TemplateWriter {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *TemplateWriter) Metrics() *WriterMetrics {
	return w.metrics
}

// fileTask represents a single file generation task.
type fileTask struct {
	name     string // output file path, relative to the filesystem root
	template string // template name to execute
	data     any    // data to pass to template
}

// packageData is the template data of one generated root.
type packageData struct {
	Header         string
	Root           string
	Module         string
	Package        string
	Version        string
	License        string
	GoVersion      string
	Runtime        string
	RuntimeVersion string
	Models         []*GenerationModel
	Enums          []*EnumModel
}

// GenerateAll renders go.mod and doc.go of every root in parallel.
func (w *TemplateWriter) GenerateAll(ctx context.Context) error {
	var files []fileTask
	for _, root := range w.graph.Roots {
		data := w.packageData(root.Name)
		for _, t := range packageTemplates {
			files = append(files, fileTask{
				name:     filepath.Join(root.Name, t.file),
				template: t.name,
				data:     data,
			})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.generateFile(f)
			}
		})
	}
	return eg.Wait()
}

func (w *TemplateWriter) packageData(root string) *packageData {
	module := w.graph.PackageName(root)
	d := &packageData{
		Header:         w.graph.header(),
		Root:           root,
		Module:         module,
		Package:        goPackageName(path.Base(module)),
		Version:        w.graph.Version,
		License:        w.graph.License,
		GoVersion:      "1.24",
		Runtime:        strings.TrimSuffix(RuntimePackage, "/dmt"),
		RuntimeVersion: RuntimeVersion,
	}
	if d.Version == "" {
		d.Version = DefaultVersion
	}
	if d.License == "" {
		d.License = DefaultLicense
	}
	for _, m := range w.graph.Models {
		if m.RootPackage == module {
			d.Models = append(d.Models, m)
		}
	}
	for _, e := range w.graph.Enums {
		if e.Enum().Package().Root().Name == root {
			d.Enums = append(d.Enums, e)
		}
	}
	return d
}

// generateFile generates a single file.
func (w *TemplateWriter) generateFile(f fileTask) error {
	// 1. Execute template
	var buf bytes.Buffer
	if err := w.tmpl.ExecuteTemplate(&buf, f.template, f.data); err != nil {
		return NewGenerationError("package", f.name, fmt.Sprintf("execute template %q", f.template), err)
	}

	// 2. Format Go files using goimports
	out := buf.Bytes()
	if strings.HasSuffix(f.name, ".go") {
		formatted, err := imports.Process(f.name, out, nil)
		if err != nil {
			// Keep the unformatted output next to the target for debugging.
			_ = util.WriteFile(w.fs, f.name+".error", out, 0o644)
			return NewGenerationError("package", f.name, "format (unformatted written to "+f.name+".error)", err)
		}
		out = formatted
	}

	// 3. Write file
	if err := w.fs.MkdirAll(filepath.Dir(f.name), 0o755); err != nil {
		return NewGenerationError("package", f.name, "create directory", err)
	}
	if err := util.WriteFile(w.fs, f.name, out, 0o644); err != nil {
		return NewGenerationError("package", f.name, "write", err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(out))
	w.mu.Unlock()
	return nil
}
