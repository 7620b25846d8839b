package store

// schema creates every index table. Rows carry an ord column holding their
// position in the source file.
const schema = `
CREATE TABLE IF NOT EXISTS sources (
	table_name  TEXT PRIMARY KEY,
	file        TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	load_id     TEXT NOT NULL,
	source      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS worlds (
	ord    INTEGER NOT NULL,
	name   TEXT NOT NULL,
	width  INTEGER NOT NULL,
	height INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS passages (
	ord         INTEGER NOT NULL,
	name        TEXT NOT NULL,
	source      TEXT NOT NULL,
	destination TEXT NOT NULL,
	x           INTEGER NOT NULL,
	y           INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
	ord           INTEGER NOT NULL,
	name          TEXT NOT NULL,
	type          INTEGER NOT NULL,
	steeler_full  INTEGER NOT NULL,
	steeler_empty INTEGER NOT NULL,
	size          INTEGER NOT NULL,
	count         INTEGER NOT NULL,
	param1        INTEGER NOT NULL,
	param2        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS mechoses (
	ord          INTEGER NOT NULL,
	name         TEXT NOT NULL,
	type         TEXT NOT NULL,
	buy          INTEGER NOT NULL,
	sell         INTEGER NOT NULL,
	box0         INTEGER NOT NULL,
	box1         INTEGER NOT NULL,
	box2         INTEGER NOT NULL,
	box3         INTEGER NOT NULL,
	speed        INTEGER NOT NULL,
	armor        INTEGER NOT NULL,
	energy       INTEGER NOT NULL,
	energy_delta INTEGER NOT NULL,
	energy_drop  INTEGER NOT NULL,
	drop_time    INTEGER NOT NULL,
	fire         INTEGER NOT NULL,
	water        INTEGER NOT NULL,
	oxygen       INTEGER NOT NULL,
	fly          INTEGER NOT NULL,
	damage       INTEGER NOT NULL,
	teleport     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS prices (
	ord    INTEGER NOT NULL,
	escave TEXT NOT NULL,
	name   TEXT NOT NULL,
	buy    INTEGER NOT NULL,
	sell   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS spots (
	id            INTEGER PRIMARY KEY,
	kind          TEXT NOT NULL,
	ord           INTEGER NOT NULL,
	name          TEXT NOT NULL,
	world         TEXT NOT NULL,
	x             INTEGER NOT NULL,
	y             INTEGER NOT NULL,
	personal_item TEXT
);
CREATE TABLE IF NOT EXISTS spot_goods (
	spot_id     INTEGER NOT NULL REFERENCES spots(id),
	ord         INTEGER NOT NULL,
	goods       TEXT NOT NULL,
	destination TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bunches (
	id     INTEGER PRIMARY KEY,
	ord    INTEGER NOT NULL,
	escave TEXT NOT NULL,
	bios   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cults (
	bunch_id  INTEGER NOT NULL REFERENCES bunches(id),
	ord       INTEGER NOT NULL,
	name      TEXT NOT NULL,
	cirt      INTEGER NOT NULL,
	time      INTEGER NOT NULL,
	price     INTEGER NOT NULL,
	palette   TEXT NOT NULL,
	game_kind TEXT,
	game      TEXT
);
CREATE TABLE IF NOT EXISTS vangers_weights (
	ord    INTEGER NOT NULL,
	world  TEXT NOT NULL,
	weight INTEGER NOT NULL,
	total  INTEGER NOT NULL
);
`

// schemaTables lists the tables Count accepts.
var schemaTables = map[string]bool{
	"sources":         true,
	"worlds":          true,
	"passages":        true,
	"items":           true,
	"mechoses":        true,
	"prices":          true,
	"spots":           true,
	"spot_goods":      true,
	"bunches":         true,
	"cults":           true,
	"vangers_weights": true,
}

// clearStatements empties the rows a table name owns before reindexing it.
var clearStatements = map[string][]string{
	"worlds":   {"DELETE FROM worlds"},
	"passages": {"DELETE FROM passages"},
	"item":     {"DELETE FROM items"},
	"mechos":   {"DELETE FROM mechoses"},
	"price":    {"DELETE FROM prices"},
	"vangers":  {"DELETE FROM vangers_weights"},
	"spot": {
		"DELETE FROM spot_goods WHERE spot_id IN (SELECT id FROM spots WHERE kind = 'spot')",
		"DELETE FROM spots WHERE kind = 'spot'",
	},
	"escave": {
		"DELETE FROM spot_goods WHERE spot_id IN (SELECT id FROM spots WHERE kind = 'escave')",
		"DELETE FROM spots WHERE kind = 'escave'",
	},
	"bunches": {
		"DELETE FROM cults",
		"DELETE FROM bunches",
	},
}
