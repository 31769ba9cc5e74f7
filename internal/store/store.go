// Package store provides persistence for analysis runs.
package store

import (
	"time"

	"nickandperla.net/mimp/internal/symbol"
)

// Run is one persisted analysis outcome: the source that was checked,
// the verdict, and the symbol table snapshot at the point analysis
// stopped.
type Run struct {
	ID        string
	Source    string
	Valid     bool
	Code      string // diagnostic taxonomy code, empty when valid
	Message   string // diagnostic text, empty when valid
	Symbols   []symbol.Symbol
	CreatedAt time.Time
}

// Store is the interface for run persistence.
type Store interface {
	// SaveRun persists a run. A blank ID is assigned before writing;
	// a zero CreatedAt is stamped with the current time.
	SaveRun(run *Run) error
	// Run retrieves a run by ID, symbol snapshot included. Returns
	// nil if not found.
	Run(id string) (*Run, error)
	// Runs lists runs newest first, without symbol snapshots. A
	// non-positive limit lists everything.
	Runs(limit int) ([]Run, error)
	// Close releases resources.
	Close() error
}
