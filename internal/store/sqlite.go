package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nickandperla.net/mimp/internal/symbol"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Create tables if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			valid INTEGER NOT NULL,
			code TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_symbols (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			value TEXT NOT NULL,
			symbol_id TEXT NOT NULL,
			PRIMARY KEY (run_id, position),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}

	// Check/set schema version (unlocked since we're in init)
	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// SaveRun persists a run, overwriting an existing one with the same ID.
func (s *SQLite) SaveRun(run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	valid := 0
	if run.Valid {
		valid = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, source, valid, code, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			valid = excluded.valid,
			code = excluded.code,
			message = excluded.message,
			created_at = excluded.created_at
	`, run.ID, run.Source, valid, run.Code, run.Message, run.CreatedAt.UnixNano())
	if err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM run_symbols WHERE run_id = ?", run.ID); err != nil {
		return err
	}
	for i, sym := range run.Symbols {
		_, err := s.db.Exec(`
			INSERT INTO run_symbols (run_id, position, name, type, value, symbol_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, sym.Name, sym.Type.String(), sym.Value, sym.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// Run retrieves a run by ID.
func (s *SQLite) Run(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		run   Run
		valid int
		nanos int64
	)
	err := s.db.QueryRow(
		"SELECT id, source, valid, code, message, created_at FROM runs WHERE id = ?", id,
	).Scan(&run.ID, &run.Source, &valid, &run.Code, &run.Message, &nanos)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.Valid = valid != 0
	run.CreatedAt = time.Unix(0, nanos).UTC()

	rows, err := s.db.Query(
		"SELECT name, type, value, symbol_id FROM run_symbols WHERE run_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			sym     symbol.Symbol
			typName string
		)
		if err := rows.Scan(&sym.Name, &typName, &sym.Value, &sym.ID); err != nil {
			return nil, err
		}
		sym.Type, _ = symbol.ParseType(typName)
		run.Symbols = append(run.Symbols, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

// Runs lists runs newest first, symbol snapshots excluded.
func (s *SQLite) Runs(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = -1 // no limit
	}
	rows, err := s.db.Query(`
		SELECT id, source, valid, code, message, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run   Run
			valid int
			nanos int64
		)
		if err := rows.Scan(&run.ID, &run.Source, &valid, &run.Code, &run.Message, &nanos); err != nil {
			return nil, err
		}
		run.Valid = valid != 0
		run.CreatedAt = time.Unix(0, nanos).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
