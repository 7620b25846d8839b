package catalog

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Fenex/vangers-tool/core/cache"
	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/prm"
	"github.com/Fenex/vangers-tool/core/source"
	"github.com/Fenex/vangers-tool/internal/logging"
)

func body(lines ...string) []byte {
	out := prm.Signature + "\n"
	for _, l := range lines {
		out += l + "\n"
	}
	return []byte(out)
}

func testSource() source.Source {
	return source.Memory("fixture", map[string][]byte{
		"worlds.prm":   body("Fostral 2048 16384", "Glorx 2048 16384"),
		"passages.prm": body("Gate1 Fostral Glorx 10 20"),
		"price.prm":    body("Podish", "Nymbos 10 20"),
	})
}

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), testSource(), "worlds", "passages", "price")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := uuid.Parse(c.LoadID); err != nil {
		t.Errorf("LoadID %q is not a uuid", c.LoadID)
	}
	if !reflect.DeepEqual(c.Names(), []string{"worlds", "passages", "price"}) {
		t.Errorf("Names() = %q", c.Names())
	}
	w, ok := c.Table("worlds")
	if !ok || w.Len() != 2 {
		t.Errorf("worlds = %v, %v", w, ok)
	}
	e, ok := c.Entry("price")
	if !ok || e.File != "price.prm" || len(e.Fingerprint) != 64 || e.Cached {
		t.Errorf("Entry(price) = %+v", e)
	}
	if len(c.Entries()) != 3 {
		t.Errorf("Entries() = %d", len(c.Entries()))
	}
	if _, ok := c.Table("item"); ok {
		t.Error("Table(item) found in catalog that did not load it")
	}
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, testSource(), "worlds", "item")
	var te *prmerr.TableError
	if !errors.As(err, &te) || te.Table != "item" || !errors.Is(err, prmerr.ErrOpen) {
		t.Errorf("missing file error = %v", err)
	}

	bad := source.Memory("bad", map[string][]byte{"worlds.prm": body("Fostral wide 16384")})
	_, err = Load(ctx, bad, "worlds")
	if !errors.Is(err, prmerr.ErrField) {
		t.Errorf("parse error = %v, want ErrField", err)
	}

	if _, err := Load(ctx, testSource(), "nope"); err == nil {
		t.Error("unknown table loaded")
	}
	if _, err := Load(ctx, testSource(), "worlds", "worlds"); err == nil {
		t.Error("duplicate table name accepted")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Load(cancelled, testSource(), "worlds"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled load error = %v", err)
	}
}

func TestLoaderCache(t *testing.T) {
	l := &Loader{Cache: cache.NewTableCache(8), Limit: 1}
	src := testSource()

	first, err := l.Load(context.Background(), src, "worlds", "price")
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Load(context.Background(), src, "worlds", "price")
	if err != nil {
		t.Fatal(err)
	}
	if first.LoadID == second.LoadID {
		t.Error("two loads share a load id")
	}

	e, _ := second.Entry("worlds")
	if !e.Cached {
		t.Error("second load of unchanged file missed the cache")
	}
	a, _ := first.Table("worlds")
	b, _ := second.Table("worlds")
	if a != b {
		t.Error("cached load returned a different table")
	}

	changed := source.Memory("changed", map[string][]byte{"worlds.prm": body("Necross 1 1")})
	third, err := l.Load(context.Background(), changed, "worlds")
	if err != nil {
		t.Fatal(err)
	}
	if e, _ := third.Entry("worlds"); e.Cached {
		t.Error("changed file was served from cache")
	}
	if s := l.Cache.Stats(); s.Hits != 2 {
		t.Errorf("cache hits = %d, want 2", s.Hits)
	}
}

func TestLoadEmptyTableWarns(t *testing.T) {
	var buf bytes.Buffer
	logging.InitLoggerWriter(&buf, logging.LevelWarn, logging.FormatJSON)
	defer logging.InitLogger(logging.LevelInfo, logging.FormatText)

	src := source.Memory("fixture", map[string][]byte{"item.prm": body("0")})
	c, err := Load(context.Background(), src, "item")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tbl, _ := c.Table("item"); tbl.Len() != 0 {
		t.Errorf("item Len() = %d", tbl.Len())
	}
	out := buf.String()
	if !strings.Contains(out, `"msg":"table is empty"`) || !strings.Contains(out, `"load_id":"`+c.LoadID+`"`) {
		t.Errorf("log output = %q, want an empty-table warning for this load", out)
	}
}
