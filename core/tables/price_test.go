package tables

import (
	"errors"
	"reflect"
	"testing"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
)

func TestParsePrices(t *testing.T) {
	p, err := ParsePrices(cursorFor(t,
		"EscaveA",
		"Item1 10 20",
		"Item2 5 6 // discounted",
		"EscaveB",
		"Item3 1 2",
	))
	if err != nil {
		t.Fatalf("ParsePrices() error: %v", err)
	}
	if !reflect.DeepEqual(p.Keys(), []string{"EscaveA", "EscaveB"}) {
		t.Errorf("Keys() = %q", p.Keys())
	}
	a, _ := p.Escave("EscaveA")
	if !reflect.DeepEqual(a, []Price{{"Item1", 10, 20}, {"Item2", 5, 6}}) {
		t.Errorf("EscaveA = %+v", a)
	}
	b, _ := p.Escave("EscaveB")
	if !reflect.DeepEqual(b, []Price{{"Item3", 1, 2}}) {
		t.Errorf("EscaveB = %+v", b)
	}

	a[0].Buy = 999
	again, _ := p.Escave("EscaveA")
	if again[0].Buy != 10 {
		t.Error("Escave() exposed the table's backing slice")
	}

	entry, ok := p.At(1)
	if g, _ := entry.(groupEntry[Price]); !ok || g.Title != "EscaveB" {
		t.Errorf("At(1) = %+v", entry)
	}

	first, _ := p.At(0)
	first.(groupEntry[Price]).Items[0].Sell = 999
	for _, g := range p.Records().([]groupEntry[Price]) {
		g.Items[0].Buy = 999
	}
	again, _ = p.Escave("EscaveA")
	if again[0] != (Price{"Item1", 10, 20}) {
		t.Errorf("EscaveA = %+v after editing At() and Records() results", again)
	}
}

func TestParsePricesErrors(t *testing.T) {
	_, err := ParsePrices(cursorFor(t, "Item1 10 20", "EscaveA"))
	if !errors.Is(err, prmerr.ErrExpectedTitle) {
		t.Errorf("item first error = %v, want ErrExpectedTitle", err)
	}

	_, err = ParsePrices(cursorFor(t, "EscaveA", "Item1 10 20 30"))
	if !errors.Is(err, prmerr.ErrShape) {
		t.Errorf("surplus token error = %v, want ErrShape", err)
	}

	_, err = ParsePrices(cursorFor(t, "EscaveA", "Item1 ten 20"))
	var fe *prmerr.FieldError
	if !errors.As(err, &fe) || fe.Field != "buy" || fe.Token != "ten" {
		t.Errorf("malformed buy error = %v", err)
	}
}

func TestParseTabutasks(t *testing.T) {
	tt, err := ParseTabutasks(cursorFor(t, "Podish", "Incubator"))
	if err != nil {
		t.Fatalf("titles only: %v", err)
	}
	if tt.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tt.Len())
	}

	_, err = ParseTabutasks(cursorFor(t, "Podish", "1000 3 0 Incubator 1 Toxick 1"))
	if !errors.Is(err, prmerr.ErrUnimplemented) {
		t.Errorf("task line error = %v, want ErrUnimplemented", err)
	}
}
