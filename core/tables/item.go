package tables

import (
	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/prm"
)

// Item is one entry of item.prm.
type Item struct {
	Name         string `json:"name" yaml:"name"`
	Type         int32  `json:"type" yaml:"type"`
	SteelerFull  int32  `json:"steeler_full" yaml:"steeler_full"`
	SteelerEmpty int32  `json:"steeler_empty" yaml:"steeler_empty"`
	Size         uint32 `json:"size" yaml:"size"`
	Count        uint32 `json:"count" yaml:"count"`
	Param1       int32  `json:"param1" yaml:"param1"`
	Param2       int32  `json:"param2" yaml:"param2"`
}

// Items is the item.prm table.
type Items struct {
	list[Item]
}

// All returns the items in file order.
func (t *Items) All() []Item {
	return t.all()
}

// ParseItems reads the count line and then exactly that many item rows.
func ParseItems(c *prm.Cursor) (*Items, error) {
	n, err := countLine(c, "item count")
	if err != nil {
		return nil, err
	}
	items, err := declared(c, "item", n, parseItem)
	if err != nil {
		return nil, err
	}
	return &Items{newList(items, func(it Item) string { return it.Name })}, nil
}

func parseItem(l prm.Line) (Item, error) {
	var it Item
	var err error
	f := prm.NewFields(l)
	if it.Name, err = f.String("name"); err != nil {
		return it, prm.Record("item", l, err)
	}
	for _, field := range []struct {
		name string
		dst  *int32
	}{
		{"type", &it.Type},
		{"steeler_full", &it.SteelerFull},
		{"steeler_empty", &it.SteelerEmpty},
	} {
		if *field.dst, err = f.Int32(field.name); err != nil {
			return it, prm.Record("item", l, err)
		}
	}
	if it.Size, err = f.Uint32("size"); err != nil {
		return it, prm.Record("item", l, err)
	}
	if it.Count, err = f.Uint32("count"); err != nil {
		return it, prm.Record("item", l, err)
	}
	if it.Param1, err = f.Int32("param1"); err != nil {
		return it, prm.Record("item", l, err)
	}
	if it.Param2, err = f.Int32("param2"); err != nil {
		return it, prm.Record("item", l, err)
	}
	return it, prm.Record("item", l, f.End("item", "8"))
}

// countLine reads a line holding a single count.
func countLine(c *prm.Cursor, what string) (int, error) {
	l, err := c.Require(what)
	if err != nil {
		return 0, err
	}
	f := prm.NewFields(l)
	n, err := f.Count("count")
	if err == nil {
		err = f.End(what, "1")
	}
	if err != nil {
		return 0, prm.Record(what, l, err)
	}
	return n, nil
}

// declared reads exactly n rows of what and rejects lines left over.
func declared[T any](c *prm.Cursor, what string, n int, record func(prm.Line) (T, error)) ([]T, error) {
	if n == 0 {
		if l, ok := c.Peek(); ok {
			return nil, prmerr.NewStructural(prmerr.ErrCountMismatch,
				"%d %s lines past the declared 0, first at line %d", c.Remaining(), what, l.No)
		}
		return []T{}, nil
	}
	rows, err := prm.Counted(c, n, func(c *prm.Cursor, _ int) (T, error) {
		l, err := c.Require(what)
		if err != nil {
			var zero T
			return zero, err
		}
		return record(l)
	})
	if err != nil {
		return nil, err
	}
	if extra := c.Remaining(); extra > 0 {
		l, _ := c.Peek()
		return nil, prmerr.NewStructural(prmerr.ErrCountMismatch,
			"%d %s lines past the declared %d, first at line %d", extra, what, n, l.No)
	}
	return rows, nil
}

func init() {
	Register(&Descriptor{Name: "item", File: "item.prm", Parse: parser(ParseItems)})
}
