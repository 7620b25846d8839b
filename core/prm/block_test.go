package prm

import (
	"errors"
	"reflect"
	"testing"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
)

type pair struct {
	Name string
	A, B uint32
}

func parsePair(l Line) (pair, error) {
	f := NewFields(l)
	var p pair
	var err error
	if p.Name, err = f.String("name"); err != nil {
		return p, Record("pair", l, err)
	}
	if p.A, err = f.Uint32("a"); err != nil {
		return p, Record("pair", l, err)
	}
	if p.B, err = f.Uint32("b"); err != nil {
		return p, Record("pair", l, err)
	}
	return p, Record("pair", l, f.End("pair", "3"))
}

func cursorOf(raw ...string) *Cursor {
	return NewCursor(StripLines(raw))
}

func TestGroups(t *testing.T) {
	c := cursorOf("EscaveA", "Item1 10 20", "Item2 5 6", "EscaveB", "Item3 1 2")
	g, err := Groups(c, "price", parsePair)
	if err != nil {
		t.Fatalf("Groups() error: %v", err)
	}
	if !reflect.DeepEqual(g.Keys(), []string{"EscaveA", "EscaveB"}) {
		t.Errorf("Keys() = %q", g.Keys())
	}
	a, _ := g.Get("EscaveA")
	want := []pair{{"Item1", 10, 20}, {"Item2", 5, 6}}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("EscaveA = %+v, want %+v", a, want)
	}
	b, _ := g.Get("EscaveB")
	if !reflect.DeepEqual(b, []pair{{"Item3", 1, 2}}) {
		t.Errorf("EscaveB = %+v", b)
	}
}

func TestGroupsEdgeCases(t *testing.T) {
	t.Run("item before title", func(t *testing.T) {
		_, err := Groups(cursorOf("Item1 10 20", "EscaveA"), "price", parsePair)
		if !errors.Is(err, prmerr.ErrStructural) || !errors.Is(err, prmerr.ErrExpectedTitle) {
			t.Errorf("error = %v, want ErrExpectedTitle", err)
		}
	})

	t.Run("empty group and empty input", func(t *testing.T) {
		g, err := Groups(cursorOf("Lonely"), "price", parsePair)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		items, ok := g.Get("Lonely")
		if !ok || items == nil || len(items) != 0 {
			t.Errorf("Get(Lonely) = %v, %v", items, ok)
		}

		g, err = Groups(cursorOf(), "price", parsePair)
		if err != nil || g.Len() != 0 {
			t.Errorf("Groups(empty) = %d groups, %v", g.Len(), err)
		}
	})

	t.Run("repeated title replaces earlier group", func(t *testing.T) {
		g, err := Groups(cursorOf("A", "x 1 1", "B", "y 2 2", "A", "z 3 3"), "price", parsePair)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if !reflect.DeepEqual(g.Keys(), []string{"A", "B"}) {
			t.Errorf("Keys() = %q", g.Keys())
		}
		a, _ := g.Get("A")
		if !reflect.DeepEqual(a, []pair{{"z", 3, 3}}) {
			t.Errorf("A = %+v", a)
		}
	})

	t.Run("item error names the group", func(t *testing.T) {
		_, err := Groups(cursorOf("A", "x 1 1", "B", "y two 2"), "price", parsePair)
		var be *prmerr.BlockError
		if !errors.As(err, &be) || be.Block != "price B" || be.Index != 1 || be.Line != 3 {
			t.Fatalf("error = %v", err)
		}
		var fe *prmerr.FieldError
		if !errors.As(err, &fe) || fe.Field != "a" || fe.Token != "two" {
			t.Errorf("field error = %v", err)
		}
	})
}

func TestSentinelList(t *testing.T) {
	c := cursorOf("x 1 2", "y 3 4", "none", "after 0 0")
	got, err := SentinelList(c, "goods", parsePair)
	if err != nil {
		t.Fatalf("SentinelList() error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "y" {
		t.Errorf("SentinelList() = %+v", got)
	}
	if l, _ := c.Peek(); l.Text != "after 0 0" {
		t.Errorf("cursor after sentinel at %q", l.Text)
	}

	got, err = SentinelList(cursorOf("none"), "goods", parsePair)
	if err != nil || len(got) != 0 {
		t.Errorf("SentinelList(none) = %+v, %v", got, err)
	}

	_, err = SentinelList(cursorOf("x 1 2"), "goods", parsePair)
	if !errors.Is(err, prmerr.ErrUnterminated) {
		t.Errorf("unterminated error = %v", err)
	}
}

func pairUnit(c *Cursor, i int) (pair, error) {
	l, err := c.Require("pair")
	if err != nil {
		return pair{}, err
	}
	return parsePair(l)
}

func TestCounted(t *testing.T) {
	got, err := Counted(cursorOf("a 1 2", "b 3 4", "c 5 6"), 2, pairUnit)
	if err != nil || len(got) != 2 {
		t.Fatalf("Counted() = %+v, %v", got, err)
	}

	t.Run("short block differs from malformed pair", func(t *testing.T) {
		_, short := Counted(cursorOf("a 1 2"), 2, pairUnit)
		if !errors.Is(short, prmerr.ErrShortBlock) {
			t.Errorf("short error = %v, want ErrShortBlock", short)
		}
		if errors.Is(short, prmerr.ErrField) {
			t.Errorf("short block must not be a field error")
		}

		_, bad := Counted(cursorOf("a 1 2", "b x 4"), 2, pairUnit)
		if !errors.Is(bad, prmerr.ErrField) {
			t.Errorf("malformed error = %v, want ErrField", bad)
		}
		if errors.Is(bad, prmerr.ErrStructural) {
			t.Errorf("malformed pair must not be structural")
		}
	})

	t.Run("zero count", func(t *testing.T) {
		_, err := Counted(cursorOf("a 1 2"), 0, pairUnit)
		if !errors.Is(err, prmerr.ErrZeroCount) {
			t.Errorf("error = %v, want ErrZeroCount", err)
		}
	})

	t.Run("count larger than the file", func(t *testing.T) {
		_, err := Counted(cursorOf("a 1 2"), 2000000000, pairUnit)
		if !errors.Is(err, prmerr.ErrShortBlock) {
			t.Errorf("error = %v, want ErrShortBlock", err)
		}
	})

	t.Run("surplus tokens", func(t *testing.T) {
		_, err := Counted(cursorOf("a 1 2 3"), 1, pairUnit)
		if !errors.Is(err, prmerr.ErrShape) {
			t.Errorf("error = %v, want ErrShape", err)
		}
	})
}

func TestBlocks(t *testing.T) {
	block := func(c *Cursor) ([]pair, error) {
		head, err := c.Require("header")
		if err != nil {
			return nil, err
		}
		n, err := NewFields(head).Count("count")
		if err != nil {
			return nil, Record("header", head, err)
		}
		return Counted(c, n, pairUnit)
	}

	got, err := Blocks(cursorOf("1", "a 1 1", "2", "b 2 2", "c 3 3"), "group", block)
	if err != nil {
		t.Fatalf("Blocks() error: %v", err)
	}
	if len(got) != 2 || len(got[1]) != 2 {
		t.Errorf("Blocks() = %+v", got)
	}

	_, err = Blocks(cursorOf("1", "a 1 1", "3", "b 2 2"), "group", block)
	var be *prmerr.BlockError
	if !errors.As(err, &be) || be.Index != 1 || be.Line != 3 {
		t.Fatalf("error = %v", err)
	}
	if !errors.Is(err, prmerr.ErrShortBlock) {
		t.Errorf("error = %v, want ErrShortBlock", err)
	}
}

func TestGroupedAll(t *testing.T) {
	g, err := Groups(cursorOf("B", "x 1 1", "A"), "price", parsePair)
	if err != nil {
		t.Fatalf("Groups() error: %v", err)
	}
	var keys []string
	total := 0
	for k, items := range g.All() {
		keys = append(keys, k)
		total += len(items)
	}
	if !reflect.DeepEqual(keys, []string{"B", "A"}) || total != 1 {
		t.Errorf("All() keys = %q, items = %d", keys, total)
	}
}
