// Command prm reads Vangers parameter files (.prm).
// It checks, prints and indexes the tables of a game data folder or archive.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/Fenex/vangers-tool/core/catalog"
	"github.com/Fenex/vangers-tool/core/prm"
	"github.com/Fenex/vangers-tool/core/ref"
	"github.com/Fenex/vangers-tool/core/source"
	"github.com/Fenex/vangers-tool/core/store"
	"github.com/Fenex/vangers-tool/core/tables"
	"github.com/Fenex/vangers-tool/internal/config"
	"github.com/Fenex/vangers-tool/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for prm.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Config file (default: ./prm.hcl when present)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`

	Check   CheckCmd   `cmd:"" help:"Load tables and report their sizes"`
	Show    ShowCmd    `cmd:"" help:"Print a table or entry selected by a reference"`
	Strip   StripCmd   `cmd:"" help:"Print a file with comments removed"`
	Index   IndexCmd   `cmd:"" help:"Load tables into a SQLite database"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// app is bound into every command's Run.
type app struct {
	ctx context.Context
	cfg config.Config
	out io.Writer
}

// source opens the data source named on the command line, or the configured
// one when arg is empty.
func (a *app) source(arg string) (source.Source, error) {
	path := arg
	if path == "" {
		path = a.cfg.Source
	}
	if path == "" {
		return nil, fmt.Errorf("no source given and none configured")
	}
	return openSource(path)
}

func (a *app) load(src source.Source) (*catalog.Catalog, error) {
	l := &catalog.Loader{Cache: a.cfg.TableCache(), Limit: a.cfg.Parallel}
	return l.Load(a.ctx, src, a.cfg.Tables...)
}

// openSource picks a folder or archive source by what path is.
func openSource(path string) (source.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	if info.IsDir() {
		return source.Dir(path)
	}
	return source.OpenArchive(path)
}

// CheckCmd loads tables and reports their sizes.
type CheckCmd struct {
	Source string   `arg:"" optional:"" help:"Data folder or .tar/.tar.gz/.tar.xz archive"`
	Tables []string `name:"table" short:"t" help:"Table to load (repeatable; default: all)"`
}

func (c *CheckCmd) Run(a *app) error {
	if len(c.Tables) > 0 {
		a.cfg.Apply(config.Overrides{Tables: c.Tables})
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	src, err := a.source(c.Source)
	if err != nil {
		return err
	}
	cat, err := a.load(src)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tFILE\tENTRIES\tFINGERPRINT")
	for _, e := range cat.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Name, e.File, e.Table.Len(), e.Fingerprint[:16])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "OK: %d tables from %s\n", len(cat.Names()), cat.Source)
	return nil
}

// ShowCmd prints the value a reference selects.
type ShowCmd struct {
	Source string `arg:"" help:"Data folder or archive"`
	Ref    string `arg:"" help:"Reference: table[:key][#index], e.g. price:Podish"`
	Format string `name:"format" short:"f" default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)"`
}

func (c *ShowCmd) Run(a *app) error {
	r, err := ref.Parse(c.Ref)
	if err != nil {
		return err
	}
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if tables.Get(r.Table) == nil {
		return &ref.NotFoundError{What: "table", Name: r.Table, Suggestions: ref.Suggest(r.Table, tables.Names())}
	}

	// Only the referenced table is parsed.
	a.cfg.Tables = []string{r.Table}
	cat, err := a.load(src)
	if err != nil {
		return err
	}

	v, err := ref.Resolve(cat, r)
	if err != nil {
		return err
	}
	return writeValue(a.out, c.Format, v)
}

// StripCmd prints the cleaned lines of a file with their line numbers.
type StripCmd struct {
	Path string `arg:"" help:"File to strip" type:"existingfile"`
}

func (c *StripCmd) Run(a *app) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	lines, err := prm.ReadLines(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(c.Path), err)
	}
	for _, l := range lines {
		fmt.Fprintf(a.out, "%5d  %s\n", l.No, l.Text)
	}
	return nil
}

// IndexCmd loads tables into SQLite.
type IndexCmd struct {
	Source string `arg:"" optional:"" help:"Data folder or archive"`
	DB     string `name:"db" help:"SQLite database path (default: from config)" type:"path"`
}

func (c *IndexCmd) Run(a *app) error {
	a.cfg.Apply(config.Overrides{Database: c.DB})
	src, err := a.source(c.Source)
	if err != nil {
		return err
	}
	cat, err := a.load(src)
	if err != nil {
		return err
	}

	s, err := store.Open(a.cfg.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Index(a.ctx, cat); err != nil {
		return err
	}
	logging.InfoContext(logging.WithLoadID(a.ctx, cat.LoadID), "index written",
		"database", a.cfg.Database, "driver", store.DriverType())
	fmt.Fprintf(a.out, "Indexed %d tables into %s\n", len(cat.Names()), a.cfg.Database)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "prm version %s\n", version)
	fmt.Fprintf(a.out, "  prm signature: %s\n", prm.Signature)
	fmt.Fprintf(a.out, "  sqlite driver: %s (%s)\n", store.DriverName(), store.DriverType())
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("prm"),
		kong.Description("Vangers parameter file tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)
	return kong.New(cli, options...)
}

// setup resolves the config for the parsed flags and initializes logging.
func setup(ctx context.Context, cli *CLI, out io.Writer) (*app, error) {
	cfg, err := config.LoadOrDefault(cli.Config)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{LogLevel: cli.LogLevel, LogFormat: cli.LogFormat})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.InitLogging(); err != nil {
		return nil, err
	}
	return &app{ctx: ctx, cfg: cfg, out: out}, nil
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	a, err := setup(context.Background(), &cli, os.Stdout)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(a)
	kctx.FatalIfErrorf(err)
}
