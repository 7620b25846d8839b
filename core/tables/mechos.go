package tables

import (
	"fmt"
	"strconv"

	"github.com/Fenex/vangers-tool/core/prm"
)

// MechosType is the vehicle class.
type MechosType uint8

const (
	Raffa MechosType = iota
	Light
	Microbus
	Atw
	Track
	Special
)

var mechosTypeNames = [...]string{"Raffa", "Light", "Microbus", "Atw", "Track", "Special"}

func (t MechosType) String() string {
	if int(t) < len(mechosTypeNames) {
		return mechosTypeNames[t]
	}
	return "MechosType(" + strconv.Itoa(int(t)) + ")"
}

func (t MechosType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func mechosTypeFromIndex(s string) (MechosType, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if int(v) >= len(mechosTypeNames) {
		return 0, fmt.Errorf("mechos type %d out of range", v)
	}
	return MechosType(v), nil
}

// Mechos is one vehicle row of car.prm.
type Mechos struct {
	Name        string     `json:"name" yaml:"name"`
	Type        MechosType `json:"type" yaml:"type"`
	Buy         uint32     `json:"buy" yaml:"buy"`
	Sell        uint32     `json:"sell" yaml:"sell"`
	Box         [4]uint8   `json:"box" yaml:"box"` // Slots per cargo size
	Speed       uint32     `json:"speed" yaml:"speed"`
	Armor       uint32     `json:"armor" yaml:"armor"`
	Energy      uint32     `json:"energy" yaml:"energy"`
	EnergyDelta uint32     `json:"energy_delta" yaml:"energy_delta"`
	EnergyDrop  uint32     `json:"energy_drop" yaml:"energy_drop"`
	DropTime    uint32     `json:"drop_time" yaml:"drop_time"`
	Fire        uint32     `json:"fire" yaml:"fire"`
	Water       uint32     `json:"water" yaml:"water"`
	Oxygen      uint32     `json:"oxygen" yaml:"oxygen"`
	Fly         uint32     `json:"fly" yaml:"fly"`
	Damage      uint32     `json:"damage" yaml:"damage"`
	Teleport    uint32     `json:"teleport" yaml:"teleport"`
}

// Mechoses is the car.prm table.
type Mechoses struct {
	list[Mechos]
	Counts [3]int // Per-section counts from the file head; they sum to Len
}

// All returns the mechoses in file order.
func (t *Mechoses) All() []Mechos {
	return t.all()
}

// ParseMechoses reads three count lines and then exactly their sum of rows.
func ParseMechoses(c *prm.Cursor) (*Mechoses, error) {
	t := &Mechoses{}
	total := 0
	for i := range t.Counts {
		n, err := countLine(c, "mechos count")
		if err != nil {
			return nil, err
		}
		t.Counts[i] = n
		total += n
	}

	rows, err := declared(c, "mechos", total, parseMechos)
	if err != nil {
		return nil, err
	}
	t.list = newList(rows, func(m Mechos) string { return m.Name })
	return t, nil
}

func parseMechos(l prm.Line) (Mechos, error) {
	var m Mechos
	var err error
	f := prm.NewFields(l)
	if m.Name, err = f.String("name"); err != nil {
		return m, prm.Record("mechos", l, err)
	}
	if m.Type, err = prm.TakeField(f, "type", mechosTypeFromIndex); err != nil {
		return m, prm.Record("mechos", l, err)
	}
	if m.Buy, err = f.Uint32("buy"); err != nil {
		return m, prm.Record("mechos", l, err)
	}
	if m.Sell, err = f.Uint32("sell"); err != nil {
		return m, prm.Record("mechos", l, err)
	}
	for i := range m.Box {
		if m.Box[i], err = f.Uint8(fmt.Sprintf("box #%d", i)); err != nil {
			return m, prm.Record("mechos", l, err)
		}
	}
	for _, field := range []struct {
		name string
		dst  *uint32
	}{
		{"speed", &m.Speed},
		{"armor", &m.Armor},
		{"energy", &m.Energy},
		{"energy_delta", &m.EnergyDelta},
		{"energy_drop", &m.EnergyDrop},
		{"drop_time", &m.DropTime},
		{"fire", &m.Fire},
		{"water", &m.Water},
		{"oxygen", &m.Oxygen},
		{"fly", &m.Fly},
		{"damage", &m.Damage},
		{"teleport", &m.Teleport},
	} {
		if *field.dst, err = f.Uint32(field.name); err != nil {
			return m, prm.Record("mechos", l, err)
		}
	}
	return m, prm.Record("mechos", l, f.End("mechos", "20"))
}

func init() {
	Register(&Descriptor{Name: "mechos", File: "car.prm", Parse: parser(ParseMechoses)})
}
