// Package analysis implements the mimp statement recognizers and the
// driver that runs them over a token stream.
//
// A Checker carries the whole analysis context: the symbol table, the
// expression type stack, and the report writer. The driver tries the
// statement recognizers in a fixed order at each cursor position and
// stops at the first failure; the outcome of a run is a single verdict
// plus whatever symbol-table and report side effects happened before
// the failure point.
package analysis

import (
	"errors"
	"fmt"

	"nickandperla.net/mimp/internal/expr"
	"nickandperla.net/mimp/internal/scanner"
	"nickandperla.net/mimp/internal/symbol"
	"nickandperla.net/mimp/internal/token"
)

// OutputWriter receives the console-visible statement reports, one line
// per call.
type OutputWriter func(text string) error

// Checker is the explicit analysis context threaded through every
// recognizer and the expression builder.
type Checker struct {
	symbols *symbol.Table
	types   *expr.TypeStack
	output  OutputWriter
}

// Option configures a Checker.
type Option func(*Checker)

// WithOutputWriter sets the report writer.
func WithOutputWriter(w OutputWriter) Option {
	return func(c *Checker) { c.output = w }
}

// WithSymbols seeds the checker with an existing symbol table.
func WithSymbols(tab *symbol.Table) Option {
	return func(c *Checker) { c.symbols = tab }
}

// New creates a Checker. Reports default to stdout.
func New(opts ...Option) *Checker {
	c := &Checker{
		symbols: symbol.NewTable(),
		types:   &expr.TypeStack{},
		output: func(text string) error {
			fmt.Print(text)
			return nil
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset discards all declared symbols. The next Check starts from an
// empty table.
func (c *Checker) Reset() {
	c.symbols = symbol.NewTable()
}

// Symbols returns the current table contents in declaration order.
func (c *Checker) Symbols() []symbol.Symbol {
	return c.symbols.Symbols()
}

// report sends one line through the output writer.
func (c *Checker) report(format string, args ...any) {
	if c.output == nil {
		return
	}
	_ = c.output(fmt.Sprintf(format+"\n", args...))
}

// Result is the outcome of one Check call.
type Result struct {
	Valid   bool
	Err     error // first fatal diagnostic, nil when valid
	Tokens  []token.Token
	Symbols []symbol.Symbol // table snapshot after analysis
}

// Code returns the taxonomy code of the first diagnostic, or CodeNone.
func (r *Result) Code() Code {
	return CodeOf(r.Err)
}

// The driver is a two-state machine: it keeps scanning while statements
// recognize, and becomes invalid at the first that does not.
type state int

const (
	scanning state = iota
	invalid
)

// Check tokenizes src and drives the recognizers over the result. The
// symbol table persists across calls; the type stack is reset before
// every top-level statement attempt.
func (c *Checker) Check(src string) *Result {
	toks := scanner.Tokenize(src)
	res := &Result{Tokens: toks}

	st := scanning
	pos := 0
	for pos < len(toks) && st == scanning {
		c.types.Reset()
		if err := c.statement(toks, &pos); err != nil {
			res.Err = err
			st = invalid
		}
	}

	res.Valid = st == scanning
	res.Symbols = c.symbols.Symbols()
	return res
}

// statement tries the six statement recognizers in fixed order at the
// cursor. A recognizer that does not match hands over to the next; the
// first diagnostic wins, and no recognizer matching is itself a
// diagnostic.
func (c *Checker) statement(toks []token.Token, pos *int) error {
	recognizers := []func([]token.Token, *int) error{
		c.declaration,
		c.write,
		c.read,
		c.ifStmt,
		c.whileStmt,
		c.assignment,
	}
	for _, recognize := range recognizers {
		err := recognize(toks, pos)
		if err == nil {
			return nil
		}
		if errors.Is(err, errNoMatch) {
			continue
		}
		return err
	}
	return &SyntaxError{Msg: fmt.Sprintf("unrecognized statement at %s", toks[*pos])}
}
