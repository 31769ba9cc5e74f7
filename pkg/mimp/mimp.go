package mimp

import (
	"errors"
	"os"
	"strings"

	"nickandperla.net/mimp/internal/analysis"
	"nickandperla.net/mimp/internal/store"
	"nickandperla.net/mimp/internal/symbol"
)

// ErrMissingSource reports a source file with no statements.
var ErrMissingSource = errors.New("source contains no statements")

// ErrNoStore reports a history query on an analyzer without persistence.
var ErrNoStore = errors.New("no run store configured")

// Analyzer is the mimp static analyzer.
type Analyzer struct {
	checker      *analysis.Checker
	store        store.Store
	outputWriter func(text string) error
}

// New creates a new analyzer with the given options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}

	for _, opt := range opts {
		opt(a)
	}

	// Build checker options
	checkOpts := []analysis.Option{}
	if a.outputWriter != nil {
		checkOpts = append(checkOpts, analysis.WithOutputWriter(a.outputWriter))
	}

	a.checker = analysis.New(checkOpts...)

	return a
}

// Check analyzes a source string. The verdict lives in the Result; the
// error return reports persistence failures only. Declared symbols
// survive into later Check calls.
func (a *Analyzer) Check(src string) (*Result, error) {
	res := a.checker.Check(src)

	if a.store != nil {
		run := &store.Run{
			Source:  src,
			Valid:   res.Valid,
			Symbols: res.Symbols,
		}
		if res.Err != nil {
			run.Code = string(res.Code())
			run.Message = res.Err.Error()
		}
		if err := a.store.SaveRun(run); err != nil {
			return res, err
		}
	}

	return res, nil
}

// CheckFile analyzes a source file. Empty lines are dropped and the
// rest joined into a single statement stream, so statements may span
// lines.
func (a *Analyzer) CheckFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrMissingSource
	}

	return a.Check(strings.Join(lines, " "))
}

// Symbols returns the variables declared so far, in declaration order.
func (a *Analyzer) Symbols() []symbol.Symbol {
	return a.checker.Symbols()
}

// History lists persisted runs newest first. A non-positive limit
// lists everything.
func (a *Analyzer) History(limit int) ([]Run, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.Runs(limit)
}

// Run retrieves a persisted run by ID. Returns nil if not found.
func (a *Analyzer) Run(id string) (*Run, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.Run(id)
}

// Reset discards all declared symbols.
func (a *Analyzer) Reset() {
	a.checker.Reset()
}

// Close releases resources.
func (a *Analyzer) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
