package tables

import (
	"github.com/Fenex/vangers-tool/core/prm"
)

// World is one map of the chain.
type World struct {
	Name   string `json:"name" yaml:"name"`
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

// Worlds is the worlds.prm table.
type Worlds struct {
	list[World]
}

// All returns the worlds in file order.
func (t *Worlds) All() []World {
	return t.all()
}

// ParseWorlds reads one world per line.
func ParseWorlds(c *prm.Cursor) (*Worlds, error) {
	worlds, err := flat(c, parseWorld)
	if err != nil {
		return nil, err
	}
	return &Worlds{newList(worlds, func(w World) string { return w.Name })}, nil
}

func parseWorld(l prm.Line) (World, error) {
	var w World
	var err error
	f := prm.NewFields(l)
	if w.Name, err = f.String("name"); err != nil {
		return w, prm.Record("world", l, err)
	}
	if w.Width, err = f.Uint32("width"); err != nil {
		return w, prm.Record("world", l, err)
	}
	if w.Height, err = f.Uint32("height"); err != nil {
		return w, prm.Record("world", l, err)
	}
	return w, prm.Record("world", l, f.End("world", "3"))
}

// flat applies a record parser to every remaining line.
func flat[T any](c *prm.Cursor, record func(prm.Line) (T, error)) ([]T, error) {
	var out []T
	for {
		l, ok := c.Next()
		if !ok {
			return out, nil
		}
		v, err := record(l)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func init() {
	Register(&Descriptor{Name: "worlds", File: "worlds.prm", Parse: parser(ParseWorlds)})
}
