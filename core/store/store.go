// Package store indexes loaded tables into SQLite.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (-tags cgo_sqlite): mattn/go-sqlite3
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Fenex/vangers-tool/core/catalog"
	prmerr "github.com/Fenex/vangers-tool/core/errors"
	"github.com/Fenex/vangers-tool/core/tables"
)

// DriverName returns the SQL driver name in use.
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" for mattn/go-sqlite3, "purego" for modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// Store is an SQLite index of PRM tables.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, prmerr.Wrapf(err, "open %s", path)
	}
	// One connection keeps an in-memory database alive between calls and
	// serializes writers on a file database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, prmerr.Wrap(err, "create schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying handle for ad-hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Index writes every table of c in one transaction. Rows previously indexed
// for the same tables are replaced.
func (s *Store) Index(ctx context.Context, c *catalog.Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return prmerr.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, e := range c.Entries() {
		for _, stmt := range clearStatements[e.Name] {
			if _, err = tx.ExecContext(ctx, stmt); err != nil {
				return prmerr.Wrapf(err, "clear %s", e.Name)
			}
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO sources (table_name, file, fingerprint, load_id, source) VALUES (?, ?, ?, ?, ?)`,
			e.Name, e.File, e.Fingerprint, c.LoadID, c.Source); err != nil {
			return prmerr.Wrapf(err, "index source %s", e.Name)
		}
		if err = indexTable(ctx, tx, e.Table); err != nil {
			return prmerr.Wrapf(err, "index %s", e.Name)
		}
	}

	if err = tx.Commit(); err != nil {
		return prmerr.Wrap(err, "commit")
	}
	return nil
}

// Count returns the number of rows in one schema table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !schemaTables[table] {
		return 0, fmt.Errorf("unknown index table %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, prmerr.Wrapf(err, "count %s", table)
	}
	return n, nil
}

func indexTable(ctx context.Context, tx *sql.Tx, t tables.Table) error {
	switch t := t.(type) {
	case *tables.Worlds:
		for i, w := range t.All() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO worlds (ord, name, width, height) VALUES (?, ?, ?, ?)`,
				i, w.Name, w.Width, w.Height); err != nil {
				return err
			}
		}
	case *tables.Passages:
		for i, p := range t.All() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO passages (ord, name, source, destination, x, y) VALUES (?, ?, ?, ?, ?, ?)`,
				i, p.Name, p.Source, p.Destination, p.X, p.Y); err != nil {
				return err
			}
		}
	case *tables.Items:
		for i, it := range t.All() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (ord, name, type, steeler_full, steeler_empty, size, count, param1, param2)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				i, it.Name, it.Type, it.SteelerFull, it.SteelerEmpty, it.Size, it.Count, it.Param1, it.Param2); err != nil {
				return err
			}
		}
	case *tables.Mechoses:
		for i, m := range t.All() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO mechoses (ord, name, type, buy, sell, box0, box1, box2, box3,
				 speed, armor, energy, energy_delta, energy_drop, drop_time, fire, water, oxygen, fly, damage, teleport)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				i, m.Name, m.Type.String(), m.Buy, m.Sell, m.Box[0], m.Box[1], m.Box[2], m.Box[3],
				m.Speed, m.Armor, m.Energy, m.EnergyDelta, m.EnergyDrop, m.DropTime,
				m.Fire, m.Water, m.Oxygen, m.Fly, m.Damage, m.Teleport); err != nil {
				return err
			}
		}
	case *tables.Prices:
		ord := 0
		for _, escave := range t.Keys() {
			prices, _ := t.Escave(escave)
			for _, p := range prices {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO prices (ord, escave, name, buy, sell) VALUES (?, ?, ?, ?, ?)`,
					ord, escave, p.Name, p.Buy, p.Sell); err != nil {
					return err
				}
				ord++
			}
		}
	case *tables.Spots:
		return indexSpots(ctx, tx, "spot", t.All())
	case *tables.Escaves:
		return indexSpots(ctx, tx, "escave", t.All())
	case *tables.Bunches:
		return indexBunches(ctx, tx, t.All())
	case *tables.VangersWeights:
		for i, w := range t.All() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO vangers_weights (ord, world, weight, total) VALUES (?, ?, ?, ?)`,
				i, w.World, w.Weight, t.Total); err != nil {
				return err
			}
		}
	case *tables.Tabutasks:
		// Only the sources row is recorded; task lines have no layout.
	default:
		return fmt.Errorf("no index layout for %T", t)
	}
	return nil
}

func indexSpots(ctx context.Context, tx *sql.Tx, kind string, spots []tables.Spot) error {
	for i, s := range spots {
		var personal sql.NullString
		if s.HasPersonalItem() {
			personal = sql.NullString{String: s.PersonalItem, Valid: true}
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO spots (kind, ord, name, world, x, y, personal_item) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			kind, i, s.Name, s.World, s.X, s.Y, personal)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, g := range s.Goods {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO spot_goods (spot_id, ord, goods, destination) VALUES (?, ?, ?, ?)`,
				id, j, g.Goods, g.Destination); err != nil {
				return err
			}
		}
	}
	return nil
}

func indexBunches(ctx context.Context, tx *sql.Tx, bunches []tables.Bunch) error {
	for i, b := range bunches {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO bunches (ord, escave, bios) VALUES (?, ?, ?)`,
			i, b.Escave, b.Bios.String())
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for j, c := range b.Cults {
			var kind, game sql.NullString
			if c.Game != nil {
				data, err := json.Marshal(c.Game)
				if err != nil {
					return err
				}
				kind = sql.NullString{String: c.Game.Kind().String(), Valid: true}
				game = sql.NullString{String: string(data), Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cults (bunch_id, ord, name, cirt, time, price, palette, game_kind, game)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, j, c.Stage.Name, c.Stage.Cirt, c.Stage.Time, c.Stage.Price, c.Stage.Palette, kind, game); err != nil {
				return err
			}
		}
	}
	return nil
}
