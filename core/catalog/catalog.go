// Package catalog loads a set of PRM tables from one source.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Fenex/vangers-tool/core/cache"
	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/prm"
	"github.com/Fenex/vangers-tool/core/source"
	"github.com/Fenex/vangers-tool/core/tables"
	"github.com/Fenex/vangers-tool/internal/logging"
)

// Entry is one loaded table and the file it came from.
type Entry struct {
	Name        string
	File        string
	Fingerprint string
	Table       tables.Table
	Cached      bool
}

// Catalog is the result of one load. It is read-only.
type Catalog struct {
	LoadID string
	Source string
	order  []string
	byName map[string]*Entry
}

// Names returns the loaded table names in request order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Table returns a loaded table.
func (c *Catalog) Table(name string) (tables.Table, bool) {
	e, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return e.Table, true
}

// Entry returns the load record of a table.
func (c *Catalog) Entry(name string) (Entry, bool) {
	e, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns all load records in request order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.byName[name])
	}
	return out
}

// Loader loads catalogs. The zero value loads without caching and without a
// concurrency limit.
type Loader struct {
	Cache *cache.TableCache
	Limit int // Maximum tables parsed at once; 0 means no limit
}

// Load parses the named tables from src using a loader without cache.
func Load(ctx context.Context, src source.Source, names ...string) (*Catalog, error) {
	return (&Loader{}).Load(ctx, src, names...)
}

// Load parses the named tables from src, or every registered table when no
// names are given. Tables load concurrently; the first failure cancels the
// loads still pending and is returned.
func (l *Loader) Load(ctx context.Context, src source.Source, names ...string) (*Catalog, error) {
	if len(names) == 0 {
		names = tables.Names()
	}

	descs := make([]*tables.Descriptor, len(names))
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("table %q requested twice", name)
		}
		seen[name] = true
		if descs[i] = tables.Get(name); descs[i] == nil {
			return nil, fmt.Errorf("unknown table %q", name)
		}
	}

	loadID := uuid.NewString()
	ctx = logging.WithLoadID(ctx, loadID)
	logging.DebugContext(ctx, "catalog load started", "source", src.String(), "tables", len(descs))

	entries := make([]*Entry, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	if l.Limit > 0 {
		g.SetLimit(l.Limit)
	}
	for i, d := range descs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := l.loadOne(gctx, src, d)
			if err != nil {
				logging.TableFailed(gctx, d.Name, d.File, err)
				return err
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Catalog{
		LoadID: loadID,
		Source: src.String(),
		order:  append([]string(nil), names...),
		byName: make(map[string]*Entry, len(entries)),
	}
	for _, e := range entries {
		c.byName[e.Name] = e
	}
	logging.InfoContext(ctx, "catalog loaded", "source", c.Source, "tables", len(entries))
	return c, nil
}

func (l *Loader) loadOne(ctx context.Context, src source.Source, d *tables.Descriptor) (*Entry, error) {
	start := time.Now()
	data, err := source.ReadAll(src, d.File)
	if err != nil {
		return nil, &prmerr.TableError{Table: d.Name, Path: d.File, Err: prmerr.NewOpen(d.File, err)}
	}

	fp := source.Fingerprint(data)
	e := &Entry{Name: d.Name, File: d.File, Fingerprint: fp}
	if l.Cache != nil {
		if t, ok := l.Cache.Get(d.Name, fp); ok {
			e.Table, e.Cached = t, true
			logging.TableLoaded(ctx, d.Name, d.File, t.Len(), true, time.Since(start))
			return e, nil
		}
	}

	f, err := prm.LoadBytes(d.File, data)
	if err != nil {
		return nil, &prmerr.TableError{Table: d.Name, Path: d.File, Err: err}
	}
	if e.Table, err = d.Decode(f); err != nil {
		return nil, err
	}
	if e.Table.Len() == 0 {
		logging.WarnContext(ctx, "table is empty", "table", d.Name, "file", d.File)
	}
	if l.Cache != nil {
		l.Cache.Put(d.Name, fp, e.Table)
	}
	logging.TableLoaded(ctx, d.Name, d.File, e.Table.Len(), false, time.Since(start))
	return e, nil
}
