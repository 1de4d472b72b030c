package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS lists (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		closed  INTEGER NOT NULL DEFAULT 0,
		pos     REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS cards (
		id             TEXT PRIMARY KEY,
		seq            INTEGER NOT NULL,
		list_id        TEXT NOT NULL,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		pos            REAL NOT NULL DEFAULT 0,
		due            TEXT,
		due_complete   INTEGER NOT NULL DEFAULT 0,
		labels         TEXT NOT NULL DEFAULT '[]',
		last_activity  TEXT NOT NULL,
		url            TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_cards_seq ON cards(seq);

	CREATE TABLE IF NOT EXISTS card_assignments (
		card_id       TEXT PRIMARY KEY,
		construction  TEXT,
		system        TEXT,
		sales         TEXT,
		meeting       TEXT,
		system_type   TEXT,
		link          TEXT,
		memo1         TEXT,
		memo2         TEXT,
		memo3         TEXT,
		is_pinned     INTEGER NOT NULL DEFAULT 0,
		updated_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS progression (
		id           INTEGER PRIMARY KEY CHECK (id = 1),
		xp           REAL NOT NULL DEFAULT 0,
		total_xp     REAL NOT NULL DEFAULT 0,
		currency     INTEGER NOT NULL DEFAULT 0,
		click_power  INTEGER NOT NULL DEFAULT 1,
		auto_rate    REAL NOT NULL DEFAULT 0,
		updated_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS owned_upgrades (
		upgrade_id  TEXT PRIMARY KEY,
		count       INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS operation_logs (
		id          TEXT PRIMARY KEY,
		card_id     TEXT NOT NULL DEFAULT '',
		action      TEXT NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_oplogs_card ON operation_logs(card_id, created_at);

	CREATE TABLE IF NOT EXISTS xp_daily (
		day     TEXT NOT NULL,
		source  TEXT NOT NULL,
		xp      REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (day, source)
	);

	CREATE TABLE IF NOT EXISTS gacha_history (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		prize_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		rarity      TEXT NOT NULL,
		kind        TEXT NOT NULL,
		amount      INTEGER NOT NULL,
		cost        INTEGER NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS race_bets (
		id          TEXT PRIMARY KEY,
		race_id     TEXT NOT NULL,
		bet_type    TEXT NOT NULL,
		picks       TEXT NOT NULL,
		stake       INTEGER NOT NULL,
		payout      INTEGER,
		finish      TEXT NOT NULL DEFAULT '',
		placed_at   TEXT NOT NULL,
		settled_at  TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_bets_race ON race_bets(race_id);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('starting_currency',  '1000'),
		('base_click_power',   '1'),
		('price_growth',       '1.15'),
		('idle_currency_rate', '0.1'),
		('gacha_cost',         '100'),
		('default_sort',       'original');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
