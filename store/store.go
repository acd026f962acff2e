// CLAUDE:SUMMARY SQLite opener with production pragmas plus the Store wrapper and in-memory test helper.
// Package store persists basket-price and minimum-wage observations.
//
// The backing database is SQLite via the pure-Go modernc.org/sqlite driver;
// callers blank-import it before opening:
//
//	import _ "modernc.org/sqlite"
//	db, err := store.Open("cesta.db", store.WithMkdirAll())
//	st := store.New(db)
//
// In tests:
//
//	st := store.New(store.OpenMemory(t))
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type openConfig struct {
	busyTimeout int
	mkdirAll    bool
	ping        bool
}

// Option customises Open behaviour.
type Option func(*openConfig)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) Option { return func(c *openConfig) { c.busyTimeout = ms } }

// WithMkdirAll creates parent directories of the database path before opening.
func WithMkdirAll() Option { return func(c *openConfig) { c.mkdirAll = true } }

// WithoutPing skips the db.Ping() verification after opening.
func WithoutPing() Option { return func(c *openConfig) { c.ping = false } }

// Open opens the SQLite database at path, applies the production pragmas
// (WAL journal, busy timeout, foreign keys, synchronous NORMAL) and the
// schema.
func Open(path string, opts ...Option) (*sql.DB, error) {
	cfg := openConfig{busyTimeout: 10_000, ping: true}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	if err := ApplySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}

	if cfg.ping {
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: ping: %w", err)
		}
	}
	return db, nil
}

// OpenMemory opens an in-memory database for testing. MaxOpenConns is
// pinned to 1 so every query hits the same in-memory database, and the
// handle is closed via t.Cleanup.
func OpenMemory(t testing.TB, opts ...Option) *sql.DB {
	t.Helper()
	db, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("store.OpenMemory: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// Store wraps the prices database.
type Store struct {
	DB *sql.DB
}

// New creates a Store from an already-opened database connection.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}
