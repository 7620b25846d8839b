package tables

import (
	"fmt"
	"strconv"
	"strings"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/prm"
)

// Bios is one of the closed set of life-forms a bunch belongs to.
type Bios uint8

const (
	Eleepods Bios = iota
	Beeboorats
	Zeexes
)

// AllBios lists every Bios in index order. bunches.prm holds exactly one
// bunch per member.
var AllBios = []Bios{Eleepods, Beeboorats, Zeexes}

func (b Bios) String() string {
	switch b {
	case Eleepods:
		return "Eleepods"
	case Beeboorats:
		return "Beeboorats"
	case Zeexes:
		return "Zeexes"
	default:
		return "Bios(" + strconv.Itoa(int(b)) + ")"
	}
}

// ParseBios maps a Bios name back to its value.
func ParseBios(s string) (Bios, error) {
	for _, b := range AllBios {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown bios %q", s)
}

func (b Bios) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func biosFromIndex(s string) (Bios, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if int(v) >= len(AllBios) {
		return 0, fmt.Errorf("bios index %d out of range", v)
	}
	return Bios(v), nil
}

// GameKind tags the variant of a cult game.
type GameKind uint8

const (
	GameRace GameKind = iota
	GameHarvest
)

func (k GameKind) String() string {
	switch k {
	case GameRace:
		return "RACE"
	case GameHarvest:
		return "HARVEST"
	default:
		return "GameKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k GameKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Game is a cult game. The only implementations are HarvestGame and RaceGame.
type Game interface {
	Kind() GameKind
	game()
}

// HarvestGame asks for goods to be delivered to a destination.
type HarvestGame struct {
	Goods       string `json:"goods" yaml:"goods"`
	Count       uint32 `json:"count" yaml:"count"`
	Destination string `json:"destination" yaml:"destination"`
	Rotten      string `json:"rotten" yaml:"rotten"`
}

func (HarvestGame) Kind() GameKind { return GameHarvest }
func (HarvestGame) game()          {}

// RaceGame carries goods from a source to a destination.
type RaceGame struct {
	Source      string `json:"source" yaml:"source"`
	GoodsBegin  string `json:"goods_begin" yaml:"goods_begin"`
	CountBegin  uint32 `json:"count_begin" yaml:"count_begin"`
	Destination string `json:"destination" yaml:"destination"`
	GoodsEnd    string `json:"goods_end" yaml:"goods_end"`
	CountEnd    uint32 `json:"count_end" yaml:"count_end"`
	Rotten      string `json:"rotten" yaml:"rotten"`
}

func (RaceGame) Kind() GameKind { return GameRace }
func (RaceGame) game()          {}

// CultStage describes one period of a bunch cycle.
type CultStage struct {
	Name    string `json:"name" yaml:"name"`
	Cirt    uint32 `json:"cirt" yaml:"cirt"`   // Cirt needed to finish the period
	Time    uint32 `json:"time" yaml:"time"`   // Half-life, minutes
	Price   uint32 `json:"price" yaml:"price"` // Price coefficient
	Palette string `json:"palette" yaml:"palette"`
}

// Cult is a stage and its optional game. Game is nil when the file says none.
type Cult struct {
	Stage CultStage `json:"stage" yaml:"stage"`
	Game  Game      `json:"game,omitempty" yaml:"game,omitempty"`
}

// Bunch is the cycle definition of one escave for one Bios.
type Bunch struct {
	Escave string `json:"escave" yaml:"escave"`
	Bios   Bios   `json:"bios" yaml:"bios"`
	Cults  []Cult `json:"cults" yaml:"cults"`
}

// Cycles returns the number of periods in the bunch cycle.
func (b Bunch) Cycles() int {
	return len(b.Cults)
}

// Bunches is the bunches.prm table.
type Bunches struct {
	list[Bunch]
}

// All returns the bunches in file order.
func (t *Bunches) All() []Bunch {
	return t.all()
}

// ForBios returns the bunch of the given Bios.
func (t *Bunches) ForBios(b Bios) (Bunch, bool) {
	for _, it := range t.items {
		if it.Bios == b {
			return it, true
		}
	}
	return Bunch{}, false
}

// ParseBunches reads one bunch per Bios. Lines after the last bunch are not
// read.
func ParseBunches(c *prm.Cursor) (*Bunches, error) {
	bunches, err := prm.Counted(c, len(AllBios), func(c *prm.Cursor, i int) (Bunch, error) {
		first, _ := c.Peek()
		b, err := parseBunch(c)
		if err != nil {
			return b, &prmerr.BlockError{Block: "bunch", Index: i, Line: first.No, Err: err}
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return &Bunches{newList(bunches, func(b Bunch) string { return b.Escave })}, nil
}

func parseBunch(c *prm.Cursor) (Bunch, error) {
	var b Bunch
	title, err := c.Require("bunch title")
	if err != nil {
		return b, err
	}

	f := prm.NewFields(title)
	var cycles int
	if b.Escave, err = f.String("escave"); err != nil {
		return b, prm.Record("bunch title", title, err)
	}
	if b.Bios, err = prm.TakeField(f, "bios", biosFromIndex); err != nil {
		return b, prm.Record("bunch title", title, err)
	}
	if cycles, err = f.Count("cycles"); err != nil {
		return b, prm.Record("bunch title", title, err)
	}
	if err = f.End("bunch title", "3"); err != nil {
		return b, prm.Record("bunch title", title, err)
	}

	b.Cults, err = prm.Counted(c, cycles, func(c *prm.Cursor, _ int) (Cult, error) {
		return parseCult(c)
	})
	return b, err
}

func parseCult(c *prm.Cursor) (Cult, error) {
	var cult Cult
	l, err := c.Require("cult stage")
	if err != nil {
		return cult, err
	}
	if cult.Stage, err = parseStage(l); err != nil {
		return cult, prm.Record("cult stage", l, err)
	}

	l, err = c.Require("cult game")
	if err != nil {
		return cult, err
	}
	if cult.Game, err = parseGame(l); err != nil {
		return cult, prm.Record("cult game", l, err)
	}
	return cult, nil
}

func parseStage(l prm.Line) (CultStage, error) {
	var s CultStage
	var err error
	f := prm.NewFields(l)
	if s.Name, err = f.String("name"); err != nil {
		return s, err
	}
	s.Name = strings.Trim(s.Name, `"`)
	if s.Cirt, err = f.Uint32("cirt"); err != nil {
		return s, err
	}
	if s.Time, err = f.Uint32("time"); err != nil {
		return s, err
	}
	if s.Price, err = f.Uint32("price"); err != nil {
		return s, err
	}
	if s.Palette, err = f.String("palette"); err != nil {
		return s, err
	}
	return s, f.End("cult stage", "5")
}

func parseGame(l prm.Line) (Game, error) {
	f := prm.NewFields(l)
	tag, _ := f.Next()

	switch tag {
	case prm.Sentinel:
		if err := f.Expect("none game", 1); err != nil {
			return nil, err
		}
		return nil, nil

	case GameHarvest.String():
		if err := f.Expect("HARVEST game", 5); err != nil {
			return nil, err
		}
		var g HarvestGame
		var err error
		if g.Goods, err = f.String("goods"); err != nil {
			return nil, err
		}
		if g.Count, err = f.Uint32("count"); err != nil {
			return nil, err
		}
		if g.Destination, err = f.String("destination"); err != nil {
			return nil, err
		}
		if g.Rotten, err = f.String("rotten"); err != nil {
			return nil, err
		}
		return g, nil

	case GameRace.String():
		if err := f.Expect("RACE game", 8); err != nil {
			return nil, err
		}
		var g RaceGame
		var err error
		if g.Source, err = f.String("source"); err != nil {
			return nil, err
		}
		if g.GoodsBegin, err = f.String("goods_begin"); err != nil {
			return nil, err
		}
		if g.CountBegin, err = f.Uint32("count_begin"); err != nil {
			return nil, err
		}
		if g.Destination, err = f.String("destination"); err != nil {
			return nil, err
		}
		if g.GoodsEnd, err = f.String("goods_end"); err != nil {
			return nil, err
		}
		if g.CountEnd, err = f.Uint32("count_end"); err != nil {
			return nil, err
		}
		if g.Rotten, err = f.String("rotten"); err != nil {
			return nil, err
		}
		return g, nil

	default:
		return nil, prmerr.NewStructural(prmerr.ErrUnknownVariant, "cult game %q", tag)
	}
}

func init() {
	Register(&Descriptor{
		Name: "bunches",
		File: "bunches.prm",
		Parse: parser(ParseBunches),
	})
}
