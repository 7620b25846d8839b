package prm

import (
	"iter"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
)

// Sentinel is the reserved literal that terminates lists and marks absent
// single-valued fields.
const Sentinel = "none"

// Record wraps a record parser failure with its line.
func Record(name string, l Line, err error) error {
	if err == nil {
		return nil
	}
	return &prmerr.RecordError{Record: name, Line: l.No, Err: err}
}

// Counted runs unit exactly n times. Units pull their lines with
// Cursor.Require, so input ending early surfaces as ErrShortBlock while a
// malformed line surfaces as the unit's own error.
func Counted[T any](c *Cursor, n int, unit func(c *Cursor, i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return nil, prmerr.NewStructural(prmerr.ErrZeroCount, "a block must declare at least one unit")
	}
	// n comes from the file; each unit takes at least one line.
	out := make([]T, 0, min(n, c.Remaining()))
	for i := 0; i < n; i++ {
		v, err := unit(c, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SentinelList consumes item lines until a line equal to Sentinel, which is
// consumed and dropped. Input ending first is ErrUnterminated.
func SentinelList[T any](c *Cursor, what string, item func(Line) (T, error)) ([]T, error) {
	var out []T
	for {
		l, ok := c.Next()
		if !ok {
			return nil, prmerr.NewStructural(prmerr.ErrUnterminated, "%s list", what)
		}
		if l.Text == Sentinel {
			return out, nil
		}
		v, err := item(l)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// Blocks applies block until the cursor is exhausted. Each failure is wrapped
// in a BlockError carrying the ordinal and first line of the block.
func Blocks[T any](c *Cursor, what string, block func(*Cursor) (T, error)) ([]T, error) {
	var out []T
	for i := 0; !c.Done(); i++ {
		first, _ := c.Peek()
		v, err := block(c)
		if err != nil {
			return nil, &prmerr.BlockError{Block: what, Index: i, Line: first.No, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// Grouped is the result of Groups: title → ordered items.
type Grouped[T any] struct {
	keys   []string
	groups map[string][]T
}

// Len returns the number of distinct titles.
func (g *Grouped[T]) Len() int {
	return len(g.keys)
}

// Keys returns titles in order of first appearance.
func (g *Grouped[T]) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Get returns the items under title.
func (g *Grouped[T]) Get(title string) ([]T, bool) {
	items, ok := g.groups[title]
	return items, ok
}

// All yields every group in key order.
func (g *Grouped[T]) All() iter.Seq2[string, []T] {
	return func(yield func(string, []T) bool) {
		for _, k := range g.keys {
			if !yield(k, g.groups[k]) {
				return
			}
		}
	}
}

func (g *Grouped[T]) seal(title string, items []T) {
	if _, ok := g.groups[title]; !ok {
		g.keys = append(g.keys, title)
	}
	if items == nil {
		items = []T{}
	}
	g.groups[title] = items
}

// Groups implements the title-delimited pattern. A line with exactly one
// token opens a group and seals the previous one; any other line is an item
// of the open group. A repeated title replaces the earlier group.
func Groups[T any](c *Cursor, what string, item func(Line) (T, error)) (*Grouped[T], error) {
	g := &Grouped[T]{groups: make(map[string][]T)}

	var (
		title   string
		titleNo int
		open    bool
		items   []T
		index   = -1
	)
	for {
		l, ok := c.Next()
		if !ok {
			break
		}

		if len(l.Fields()) == 1 {
			if open {
				g.seal(title, items)
			}
			title, titleNo, open, items = l.Text, l.No, true, nil
			index++
			continue
		}

		if !open {
			return nil, prmerr.NewStructural(prmerr.ErrExpectedTitle, "line %d precedes any %s title", l.No, what)
		}

		v, err := item(l)
		if err != nil {
			return nil, &prmerr.BlockError{Block: what + " " + title, Index: index, Line: titleNo, Err: err}
		}
		items = append(items, v)
	}

	if open {
		g.seal(title, items)
	}
	return g, nil
}
