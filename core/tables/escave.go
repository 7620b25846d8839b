package tables

import "github.com/Fenex/vangers-tool/core/prm"

// Escaves is the escaves.prm table. Escave blocks share the spot layout.
type Escaves struct {
	list[Spot]
}

// All returns the escaves in file order.
func (t *Escaves) All() []Spot {
	return t.all()
}

// ParseEscaves reads header-plus-goods blocks until input is exhausted.
func ParseEscaves(c *prm.Cursor) (*Escaves, error) {
	escaves, err := parseSpotBlocks(c, "escave")
	if err != nil {
		return nil, err
	}
	return &Escaves{escaves}, nil
}

func init() {
	Register(&Descriptor{Name: "escave", File: "escaves.prm", Parse: parser(ParseEscaves)})
}
