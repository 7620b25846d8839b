package tables

import (
	"github.com/Fenex/vangers-tool/core/prm"
)

// VangerWeight is the relative c-vanger density of one world.
type VangerWeight struct {
	World  string `json:"world" yaml:"world"`
	Weight uint32 `json:"weight" yaml:"weight"`
}

// VangersWeights is the vangers.prm table.
type VangersWeights struct {
	list[VangerWeight]
	Total uint32 // C-vangers in the chain at one moment
}

// All returns the per-world weights in file order.
func (t *VangersWeights) All() []VangerWeight {
	return t.all()
}

// Weight returns the relative weight of world.
func (t *VangersWeights) Weight(world string) (uint32, bool) {
	v, ok := t.Lookup(world)
	if !ok {
		return 0, false
	}
	return v.(VangerWeight).Weight, true
}

func (t *VangersWeights) Records() any {
	return struct {
		Total   uint32         `json:"total" yaml:"total"`
		Weights []VangerWeight `json:"weights" yaml:"weights"`
	}{t.Total, t.all()}
}

// ParseVangersWeights reads the total line and then world weights to the end
// of input. A repeated world replaces the earlier weight in place.
func ParseVangersWeights(c *prm.Cursor) (*VangersWeights, error) {
	l, err := c.Require("vangers total")
	if err != nil {
		return nil, err
	}
	f := prm.NewFields(l)
	total, err := f.Uint32("vangers_total")
	if err == nil {
		err = f.End("vangers total", "1")
	}
	if err != nil {
		return nil, prm.Record("vangers total", l, err)
	}

	var weights []VangerWeight
	seen := make(map[string]int)
	for {
		l, ok := c.Next()
		if !ok {
			break
		}
		w, err := parseWeight(l)
		if err != nil {
			return nil, err
		}
		if i, dup := seen[w.World]; dup {
			weights[i] = w
			continue
		}
		seen[w.World] = len(weights)
		weights = append(weights, w)
	}

	return &VangersWeights{
		list:  newList(weights, func(w VangerWeight) string { return w.World }),
		Total: total,
	}, nil
}

func parseWeight(l prm.Line) (VangerWeight, error) {
	var w VangerWeight
	var err error
	f := prm.NewFields(l)
	if w.World, err = f.String("world"); err != nil {
		return w, prm.Record("vangers weight", l, err)
	}
	if w.Weight, err = f.Uint32("weight"); err != nil {
		return w, prm.Record("vangers weight", l, err)
	}
	return w, prm.Record("vangers weight", l, f.End("vangers weight", "2"))
}

func init() {
	Register(&Descriptor{Name: "vangers", File: "vangers.prm", Parse: parser(ParseVangersWeights)})
}
