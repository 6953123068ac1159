package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// schemaVersion is the single supported schema version. On mismatch the
// items table is dropped and recreated empty. Destructive by policy: this
// store has no migration path between versions.
const schemaVersion = 1

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when a second invocation overlaps.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := s.migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			description TEXT NOT NULL,
			image BLOB,
			purchased INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}

	var raw string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, "schema_version").Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// Fresh database: stamp the current version.
		_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`,
			"schema_version", strconv.Itoa(schemaVersion))
		return err
	case err != nil:
		return err
	}

	got, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("corrupt schema_version %q: %w", raw, err)
	}
	if got == schemaVersion {
		return nil
	}

	// Version mismatch: drop and recreate. AUTOINCREMENT bookkeeping in
	// sqlite_sequence goes with the table, so ids restart at 1.
	reset := []string{
		`DROP TABLE IF EXISTS items;`,
		`CREATE TABLE items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			description TEXT NOT NULL,
			image BLOB,
			purchased INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, st := range reset {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`,
		"schema_version", strconv.Itoa(schemaVersion))
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
