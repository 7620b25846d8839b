package tables

import (
	"fmt"
	"sort"
	"sync"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/prm"
	"github.com/Fenex/vangers-tool/core/source"
)

// Descriptor binds a table name to its file and parser.
type Descriptor struct {
	Name  string // Table name, e.g. "bunches"
	File  string // Entry name inside a source, e.g. "bunches.prm"
	Parse func(c *prm.Cursor) (Table, error)
}

// Decode parses an already loaded file. Failures are wrapped in a TableError.
func (d *Descriptor) Decode(f *prm.File) (Table, error) {
	t, err := d.Parse(f.Cursor())
	if err != nil {
		return nil, &prmerr.TableError{Table: d.Name, Path: f.Name, Err: err}
	}
	return t, nil
}

// Load reads the descriptor's file from src and parses it.
func (d *Descriptor) Load(src source.Source) (Table, error) {
	f, err := prm.Load(src, d.File)
	if err != nil {
		return nil, &prmerr.TableError{Table: d.Name, Path: d.File, Err: err}
	}
	return d.Decode(f)
}

// parser adapts a typed table parser to Descriptor.Parse.
func parser[T Table](parse func(*prm.Cursor) (T, error)) func(*prm.Cursor) (Table, error) {
	return func(c *prm.Cursor) (Table, error) {
		t, err := parse(c)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Descriptor)
)

// Register adds a table descriptor. Registering a name twice replaces the
// earlier descriptor.
func Register(d *Descriptor) {
	if d == nil || d.Name == "" || d.Parse == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name] = d
}

// Get returns the descriptor for name, or nil if none is registered.
func Get(name string) *Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// Names returns all registered table names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load parses the named table from src.
func Load(src source.Source, name string) (Table, error) {
	d := Get(name)
	if d == nil {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return d.Load(src)
}

// LoadAs parses the named table and asserts its concrete type.
func LoadAs[T Table](src source.Source, name string) (T, error) {
	var zero T
	t, err := Load(src, name)
	if err != nil {
		return zero, err
	}
	typed, ok := t.(T)
	if !ok {
		return zero, fmt.Errorf("table %q is %T, not %T", name, t, zero)
	}
	return typed, nil
}
