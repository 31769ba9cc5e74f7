package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"nickandperla.net/mimp/internal/symbol"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu    sync.RWMutex
	runs  []Run
	index map[string]int
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{index: make(map[string]int)}
}

// SaveRun persists a run, overwriting an existing one with the same ID.
func (m *Memory) SaveRun(run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	stored := *run
	stored.Symbols = make([]symbol.Symbol, len(run.Symbols))
	copy(stored.Symbols, run.Symbols)

	if i, ok := m.index[run.ID]; ok {
		m.runs[i] = stored
		return nil
	}
	m.index[run.ID] = len(m.runs)
	m.runs = append(m.runs, stored)
	return nil
}

// Run retrieves a run by ID.
func (m *Memory) Run(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return nil, nil
	}
	run := m.runs[i]
	run.Symbols = make([]symbol.Symbol, len(m.runs[i].Symbols))
	copy(run.Symbols, m.runs[i].Symbols)
	return &run, nil
}

// Runs lists runs newest first, symbol snapshots excluded.
func (m *Memory) Runs(limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var runs []Run
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(runs) == limit {
			break
		}
		run := m.runs[i]
		run.Symbols = nil
		runs = append(runs, run)
	}
	return runs, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
