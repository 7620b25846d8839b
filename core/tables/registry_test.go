package tables

import (
	"errors"
	"testing"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/source"
)

func TestRegistry(t *testing.T) {
	want := map[string]string{
		"bunches":  "bunches.prm",
		"price":    "price.prm",
		"tabutask": "tabutask.prm",
		"spot":     "spot.prm",
		"escave":   "escaves.prm",
		"vangers":  "vangers.prm",
		"mechos":   "car.prm",
		"item":     "item.prm",
		"worlds":   "worlds.prm",
		"passages": "passages.prm",
	}
	if got := len(Names()); got != len(want) {
		t.Errorf("Names() = %v", Names())
	}
	for name, file := range want {
		d := Get(name)
		if d == nil {
			t.Errorf("Get(%q) = nil", name)
			continue
		}
		if d.File != file {
			t.Errorf("Get(%q).File = %q, want %q", name, d.File, file)
		}
	}
	if Get("nope") != nil {
		t.Error("Get(nope) returned a descriptor")
	}
}

func TestLoad(t *testing.T) {
	src := source.Memory("test", map[string][]byte{
		"worlds.prm":   prmFile("Fostral 2048 16384"),
		"passages.prm": prmFile("Gate1 Fostral Glorx 1"),
		"price.prm":    []byte("not a prm file\n"),
	})

	w, err := LoadAs[*Worlds](src, "worlds")
	if err != nil || w.Len() != 1 {
		t.Fatalf("LoadAs(worlds) = %v, %v", w, err)
	}

	if _, err := LoadAs[*Items](src, "worlds"); err == nil {
		t.Error("LoadAs with the wrong type succeeded")
	}

	_, err = Load(src, "passages")
	var te *prmerr.TableError
	if !errors.As(err, &te) || te.Table != "passages" || te.Path != "passages.prm" {
		t.Errorf("parse failure = %v, want a passages TableError", err)
	}
	if !errors.Is(err, prmerr.ErrField) {
		t.Errorf("parse failure = %v, want ErrField in chain", err)
	}

	_, err = Load(src, "price")
	if !errors.As(err, &te) || !errors.Is(err, prmerr.ErrSignature) {
		t.Errorf("signature failure = %v", err)
	}

	_, err = Load(src, "item")
	if !errors.Is(err, prmerr.ErrOpen) {
		t.Errorf("missing file error = %v, want ErrOpen", err)
	}

	if _, err := Load(src, "nope"); err == nil {
		t.Error("Load(nope) succeeded")
	}
}
