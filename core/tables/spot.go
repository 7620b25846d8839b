package tables

import (
	"github.com/Fenex/vangers-tool/core/prm"
)

// Goods is a product made at a spot and where it is shipped.
type Goods struct {
	Goods       string `json:"goods" yaml:"goods"`
	Destination string `json:"destination" yaml:"destination"`
}

// Spot is a location with its personal item and produced goods.
type Spot struct {
	Name         string  `json:"name" yaml:"name"`
	World        string  `json:"world" yaml:"world"`
	X            int32   `json:"x" yaml:"x"`
	Y            int32   `json:"y" yaml:"y"`
	PersonalItem string  `json:"personal_item,omitempty" yaml:"personal_item,omitempty"` // Empty when the file says none
	Goods        []Goods `json:"goods" yaml:"goods"`
}

// HasPersonalItem reports whether the spot's header named a personal item.
func (s Spot) HasPersonalItem() bool {
	return s.PersonalItem != ""
}

// Spots is the spot.prm table.
type Spots struct {
	list[Spot]
}

// All returns the spots in file order.
func (t *Spots) All() []Spot {
	return t.all()
}

// ParseSpots reads header-plus-goods blocks until input is exhausted.
func ParseSpots(c *prm.Cursor) (*Spots, error) {
	spots, err := parseSpotBlocks(c, "spot")
	if err != nil {
		return nil, err
	}
	return &Spots{spots}, nil
}

func parseSpotBlocks(c *prm.Cursor, what string) (list[Spot], error) {
	spots, err := prm.Blocks(c, what, func(c *prm.Cursor) (Spot, error) {
		return parseSpot(c, what)
	})
	if err != nil {
		return list[Spot]{}, err
	}
	return newList(spots, func(s Spot) string { return s.Name }), nil
}

func parseSpot(c *prm.Cursor, what string) (Spot, error) {
	var s Spot
	head, err := c.Require(what + " header")
	if err != nil {
		return s, err
	}
	if s, err = parseSpotHeader(head); err != nil {
		return s, prm.Record(what+" header", head, err)
	}
	s.Goods, err = prm.SentinelList(c, what+" goods", parseGoods)
	if err != nil {
		return s, err
	}
	if s.Goods == nil {
		s.Goods = []Goods{}
	}
	return s, nil
}

func parseSpotHeader(l prm.Line) (Spot, error) {
	var s Spot
	var err error
	f := prm.NewFields(l)
	if s.Name, err = f.String("name"); err != nil {
		return s, err
	}
	if s.World, err = f.String("world"); err != nil {
		return s, err
	}
	if s.X, err = f.Int32("x"); err != nil {
		return s, err
	}
	if s.Y, err = f.Int32("y"); err != nil {
		return s, err
	}
	if item, ok := f.Next(); ok && item != prm.Sentinel {
		s.PersonalItem = item
	}
	return s, f.End("header", "4 or 5")
}

func parseGoods(l prm.Line) (Goods, error) {
	f := prm.NewFields(l)
	if err := f.Expect("goods line", 2); err != nil {
		return Goods{}, prm.Record("goods", l, err)
	}
	goods, _ := f.Next()
	dest, _ := f.Next()
	return Goods{Goods: goods, Destination: dest}, nil
}

func init() {
	Register(&Descriptor{Name: "spot", File: "spot.prm", Parse: parser(ParseSpots)})
}
