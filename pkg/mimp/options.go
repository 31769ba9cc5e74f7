// Package mimp provides the public API for the mimp static analyzer.
package mimp

import (
	"io"

	"nickandperla.net/mimp/internal/analysis"
	"nickandperla.net/mimp/internal/store"
	"nickandperla.net/mimp/internal/symbol"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSQLiteStore configures SQLite run persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(a *Analyzer) {
		s, err := store.NewSQLite(path)
		if err == nil {
			a.store = s
		}
	}
}

// WithMemoryStore configures an in-memory run store (for testing).
func WithMemoryStore() Option {
	return func(a *Analyzer) {
		a.store = store.NewMemory()
	}
}

// WithStore sets a custom run store.
func WithStore(s store.Store) Option {
	return func(a *Analyzer) {
		a.store = s
	}
}

// WithOutputWriter sets the writer for statement reports.
func WithOutputWriter(writer func(text string) error) Option {
	return func(a *Analyzer) {
		a.outputWriter = writer
	}
}

// WithOutput sets the io.Writer for statement reports.
func WithOutput(w io.Writer) Option {
	return func(a *Analyzer) {
		a.outputWriter = func(text string) error {
			_, err := w.Write([]byte(text))
			return err
		}
	}
}

// Result is the outcome of one analysis.
type Result = analysis.Result

// Code classifies a diagnostic.
type Code = analysis.Code

// Store interface for custom run stores.
type Store = store.Store

// Run is one persisted analysis outcome.
type Run = store.Run

// Symbol is one declared variable.
type Symbol = symbol.Symbol
