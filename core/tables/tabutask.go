package tables

import (
	"slices"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/prm"
)

// Tabutask is one task an escave offers. Its record layout is not known, so
// no item line can be parsed yet.
type Tabutask struct{}

// Tabutasks is the tabutask.prm table: escave name → tasks.
type Tabutasks struct {
	g *prm.Grouped[Tabutask]
}

func (t *Tabutasks) Len() int { return t.g.Len() }

func (t *Tabutasks) Keys() []string { return t.g.Keys() }

func (t *Tabutasks) Lookup(key string) (any, bool) {
	items, ok := t.g.Get(key)
	return slices.Clone(items), ok
}

func (t *Tabutasks) At(i int) (any, bool) {
	return groupAt(t.g, i)
}

func (t *Tabutasks) Records() any {
	return groupRecords(t.g)
}

// ParseTabutasks reads title-delimited task groups. Any task line fails with
// an UnimplementedError.
func ParseTabutasks(c *prm.Cursor) (*Tabutasks, error) {
	g, err := prm.Groups(c, "tabutask", parseTabutask)
	if err != nil {
		return nil, err
	}
	return &Tabutasks{g: g}, nil
}

func parseTabutask(l prm.Line) (Tabutask, error) {
	return Tabutask{}, prm.Record("tabutask", l, prmerr.NewUnimplemented("tabutask"))
}

func init() {
	Register(&Descriptor{Name: "tabutask", File: "tabutask.prm", Parse: parser(ParseTabutasks)})
}
