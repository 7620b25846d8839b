package tables

import (
	"slices"

	"github.com/Fenex/vangers-tool/core/prm"
)

// Price is what an escave pays for and asks for one goods type.
type Price struct {
	Name string `json:"name" yaml:"name"`
	Buy  uint32 `json:"buy" yaml:"buy"`
	Sell uint32 `json:"sell" yaml:"sell"`
}

// Prices is the price.prm table: escave name → price list.
type Prices struct {
	g *prm.Grouped[Price]
}

func (t *Prices) Len() int { return t.g.Len() }

func (t *Prices) Keys() []string { return t.g.Keys() }

// Escave returns the price list of one escave.
func (t *Prices) Escave(name string) ([]Price, bool) {
	items, ok := t.g.Get(name)
	return slices.Clone(items), ok
}

func (t *Prices) Lookup(key string) (any, bool) {
	return t.Escave(key)
}

func (t *Prices) At(i int) (any, bool) {
	return groupAt(t.g, i)
}

func (t *Prices) Records() any {
	return groupRecords(t.g)
}

// ParsePrices reads title-delimited price groups.
func ParsePrices(c *prm.Cursor) (*Prices, error) {
	g, err := prm.Groups(c, "price", parsePrice)
	if err != nil {
		return nil, err
	}
	return &Prices{g: g}, nil
}

func parsePrice(l prm.Line) (Price, error) {
	var p Price
	var err error
	f := prm.NewFields(l)
	if p.Name, err = f.String("name"); err != nil {
		return p, prm.Record("price", l, err)
	}
	if p.Buy, err = f.Uint32("buy"); err != nil {
		return p, prm.Record("price", l, err)
	}
	if p.Sell, err = f.Uint32("sell"); err != nil {
		return p, prm.Record("price", l, err)
	}
	return p, prm.Record("price", l, f.End("price", "3"))
}

func groupAt[T any](g *prm.Grouped[T], i int) (any, bool) {
	keys := g.Keys()
	if i < 0 || i >= len(keys) {
		return nil, false
	}
	items, _ := g.Get(keys[i])
	return groupEntry[T]{Title: keys[i], Items: slices.Clone(items)}, true
}

func groupRecords[T any](g *prm.Grouped[T]) []groupEntry[T] {
	out := make([]groupEntry[T], 0, g.Len())
	for title, items := range g.All() {
		out = append(out, groupEntry[T]{Title: title, Items: slices.Clone(items)})
	}
	return out
}

func init() {
	Register(&Descriptor{Name: "price", File: "price.prm", Parse: parser(ParsePrices)})
}
