// Package load reads DMT schema trees into a schema.Catalog.
//
// A schema tree is a directory whose name is the root package. Every
// sub-directory is a sub-package and every JSON or YAML file a blueprint
// or an enum document:
//
//	models/
//	├── Vehicle.json
//	└── parts/
//	    ├── Engine.yaml
//	    └── FuelType.json
package load

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/syssam/dmtgen/schema"
)

// Extensions of schema documents.
var Extensions = []string{".json", ".yaml", ".yml"}

// Dir loads the schema tree rooted at dir. The catalog also holds the
// built-in system/SIMOS package, and every extends reference is resolved.
func Dir(dir string) (*schema.Catalog, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("load: %s is not a directory", dir)
	}
	return FS(osfs.New(filepath.Dir(abs)), filepath.Base(abs))
}

// RootName returns the name of the root package Dir creates for dir.
func RootName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

// FS loads the schema tree stored under root on fsys. It reports every
// malformed document, each with its path.
func FS(fsys billy.Filesystem, root string) (*schema.Catalog, error) {
	c := schema.NewCatalog()
	l := &loader{fs: fsys}
	l.dir(c.AddRoot(path.Base(filepath.ToSlash(root))), root)
	if err := errors.Join(l.errs...); err != nil {
		return nil, err
	}
	c.AddBuiltins()
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

type loader struct {
	fs   billy.Filesystem
	errs []error
}

func (l *loader) fail(name string, err error) {
	l.errs = append(l.errs, fmt.Errorf("load %s: %w", name, err))
}

// dir reads the documents of dir into pkg, then its sub-directories.
func (l *loader) dir(pkg *schema.Package, dir string) {
	infos, err := l.fs.ReadDir(dir)
	if err != nil {
		l.fail(dir, err)
		return
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	var subdirs []os.FileInfo
	for _, info := range infos {
		switch name := info.Name(); {
		case strings.HasPrefix(name, "."):
		case info.IsDir():
			subdirs = append(subdirs, info)
		case IsDocument(name):
			l.file(pkg, l.fs.Join(dir, name))
		}
	}
	for _, info := range subdirs {
		l.dir(pkg.AddPackage(info.Name()), l.fs.Join(dir, info.Name()))
	}
}

// file reads one document into pkg. Documents of other types are skipped.
func (l *loader) file(pkg *schema.Package, name string) {
	buf, err := util.ReadFile(l.fs, name)
	if err != nil {
		l.fail(name, err)
		return
	}
	doc, err := UnmarshalDocument(buf)
	if err != nil {
		l.fail(name, err)
		return
	}
	if doc.Name == "" {
		base := filepath.Base(name)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	switch doc.Kind() {
	case KindBlueprint:
		bp, err := doc.Blueprint()
		if err == nil {
			err = pkg.AddBlueprint(bp)
		}
		if err != nil {
			l.fail(name, err)
		}
	case KindEnum:
		e, err := doc.Enum()
		if err == nil {
			err = pkg.AddEnum(e)
		}
		if err != nil {
			l.fail(name, err)
		}
	}
}

// IsDocument reports whether name has the extension of a schema document.
func IsDocument(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}
