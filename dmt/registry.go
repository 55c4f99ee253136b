package dmt

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

var registry = struct {
	sync.RWMutex
	byType map[string]*Blueprint
}{byType: make(map[string]*Blueprint)}

// Register makes a blueprint available by its type. Generated blueprint
// packages register their blueprints in init. Register panics when bp is
// nil, has no type, or a blueprint of the same type is registered.
func Register(bp *Blueprint) {
	if bp == nil || bp.Type == "" {
		panic("dmt: Register blueprint without type")
	}
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.byType[bp.Type]; dup {
		panic("dmt: Register called twice for blueprint " + bp.Type)
	}
	registry.byType[bp.Type] = bp
}

// Lookup returns the registered blueprint of type typ. A leading "dmt://"
// is ignored.
func Lookup(typ string) (*Blueprint, error) {
	registry.RLock()
	defer registry.RUnlock()
	bp, ok := registry.byType[strings.TrimPrefix(typ, "dmt://")]
	if !ok {
		return nil, NewNotFoundError("blueprint", typ)
	}
	return bp, nil
}

// Blueprints returns the registered blueprints sorted by type.
func Blueprints() []*Blueprint {
	registry.RLock()
	defer registry.RUnlock()
	bps := make([]*Blueprint, 0, len(registry.byType))
	for _, bp := range registry.byType {
		bps = append(bps, bp)
	}
	slices.SortFunc(bps, func(a, b *Blueprint) int { return strings.Compare(a.Type, b.Type) })
	return bps
}

// Validate checks that the reference has an identifier and, when typed,
// points to a registered blueprint. name is the attribute holding r.
func (r *Reference) Validate(name string) error {
	if r.IsZero() {
		return NewValidationError(name, errors.New("reference without id"))
	}
	if r.Type == "" {
		return nil
	}
	if _, err := Lookup(r.Type); err != nil {
		return NewValidationError(name, err)
	}
	return nil
}
