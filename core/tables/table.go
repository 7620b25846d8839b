// Package tables assembles typed tables from PRM files.
//
// Each file in this package owns one table: its record types, the record and
// block parsers for its layout, and the registry descriptor that binds it to
// a file name. Tables are immutable once parsed; accessors return copies or
// read-only views.
package tables

// Table is a parsed PRM table.
type Table interface {
	// Len returns the number of top-level entries.
	Len() int
	// Keys lists the names entries can be looked up by, in file order.
	Keys() []string
	// Lookup returns the entry stored under key.
	Lookup(key string) (any, bool)
	// At returns the i-th top-level entry in file order.
	At(i int) (any, bool)
	// Records returns the whole table as plain data for display.
	Records() any
}

// list is the common storage for tables that are a flat sequence of entries.
type list[T any] struct {
	items []T
	key   func(T) string
}

func newList[T any](items []T, key func(T) string) list[T] {
	if items == nil {
		items = []T{}
	}
	return list[T]{items: items, key: key}
}

func (l list[T]) Len() int {
	return len(l.items)
}

func (l list[T]) Keys() []string {
	keys := make([]string, 0, len(l.items))
	for _, it := range l.items {
		keys = append(keys, l.key(it))
	}
	return keys
}

// Lookup returns the first entry with the given key.
func (l list[T]) Lookup(key string) (any, bool) {
	for _, it := range l.items {
		if l.key(it) == key {
			return it, true
		}
	}
	return nil, false
}

func (l list[T]) At(i int) (any, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

func (l list[T]) Records() any {
	return l.all()
}

func (l list[T]) all() []T {
	return append([]T(nil), l.items...)
}

// groupEntry is one titled group in display order.
type groupEntry[T any] struct {
	Title string `json:"title" yaml:"title"`
	Items []T    `json:"items" yaml:"items"`
}
