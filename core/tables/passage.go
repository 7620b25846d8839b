package tables

import (
	"github.com/Fenex/vangers-tool/core/prm"
)

// Passage is a corridor from one world into another.
type Passage struct {
	Name        string `json:"name" yaml:"name"`
	Source      string `json:"source" yaml:"source"`           // World the passage stands in
	Destination string `json:"destination" yaml:"destination"` // World it leads to
	X           int32  `json:"x" yaml:"x"`
	Y           int32  `json:"y" yaml:"y"`
}

// Passages is the passages.prm table.
type Passages struct {
	list[Passage]
}

// All returns the passages in file order.
func (t *Passages) All() []Passage {
	return t.all()
}

// ParsePassages reads one passage per line.
func ParsePassages(c *prm.Cursor) (*Passages, error) {
	passages, err := flat(c, parsePassage)
	if err != nil {
		return nil, err
	}
	return &Passages{newList(passages, func(p Passage) string { return p.Name })}, nil
}

func parsePassage(l prm.Line) (Passage, error) {
	var p Passage
	var err error
	f := prm.NewFields(l)
	if p.Name, err = f.String("name"); err != nil {
		return p, prm.Record("passage", l, err)
	}
	if p.Source, err = f.String("world_source"); err != nil {
		return p, prm.Record("passage", l, err)
	}
	if p.Destination, err = f.String("world_destination"); err != nil {
		return p, prm.Record("passage", l, err)
	}
	if p.X, err = f.Int32("x"); err != nil {
		return p, prm.Record("passage", l, err)
	}
	if p.Y, err = f.Int32("y"); err != nil {
		return p, prm.Record("passage", l, err)
	}
	return p, prm.Record("passage", l, f.End("passage", "5"))
}

func init() {
	Register(&Descriptor{Name: "passages", File: "passages.prm", Parse: parser(ParsePassages)})
}
