// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr builds, types, and evaluates mimp arithmetic expressions.
//
// Expressions are flat: every operator has the same precedence and
// association is strictly left to right, so a + b * c is (a + b) * c.
// Type inference runs in lockstep with parsing through a TypeStack owned
// by the caller; evaluation is a separate pass that re-derives types
// from the live symbol table.
package expr

import (
	"errors"
	"fmt"
	"strconv"

	"nickandperla.net/mimp/internal/symbol"
	"nickandperla.net/mimp/internal/token"
)

// Node is one form of a mimp expression. The set is closed: Literal,
// VarRef, and Binary are the only implementations.
type Node interface {
	String() string
	node()
}

// Literal is a numeric leaf. Type is fixed at parse time by the
// presence of a decimal point in the text.
type Literal struct {
	Text string
	Type symbol.Type
}

// VarRef is a reference to a declared name, resolved against the symbol
// table at every use.
type VarRef struct {
	Name string
}

// Binary applies one arithmetic operator to two sub-expressions. A
// parent exclusively owns its children.
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

func (Literal) node() {}
func (VarRef) node()  {}
func (Binary) node()  {}

func (l Literal) String() string { return l.Text }

func (v VarRef) String() string { return v.Name }

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// TypeStack is the auxiliary stack used to infer an expression's type
// in lockstep with its structural parsing. The driver resets it before
// each top-level statement; each leaf parsed pushes one entry and each
// operator combines the top two, so a well-typed expression leaves
// exactly one entry at the moment the caller inspects it.
type TypeStack struct {
	types []symbol.Type
}

// Reset discards all entries.
func (s *TypeStack) Reset() {
	s.types = s.types[:0]
}

// Push adds a type.
func (s *TypeStack) Push(t symbol.Type) {
	s.types = append(s.types, t)
}

// Pop removes and returns the most recent type.
func (s *TypeStack) Pop() (symbol.Type, bool) {
	if len(s.types) == 0 {
		return symbol.Unknown, false
	}
	t := s.types[len(s.types)-1]
	s.types = s.types[:len(s.types)-1]
	return t, true
}

// Depth returns the number of entries.
func (s *TypeStack) Depth() int {
	return len(s.types)
}

// SyntaxError reports a malformed expression shape.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

// NotFoundError reports an identifier with no symbol, during either
// parse-time typing or evaluation.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variable not found: %s", e.Name)
}

// ErrStringOperation rejects string operands at evaluation time. String
// expressions are parse-legal under "+", but no string operation is
// evaluable.
var ErrStringOperation = errors.New("arithmetic on string values is not supported")

// Parse builds one expression starting at *pos and advances the cursor
// past the consumed tokens. Leaf types are pushed on ts as they are
// parsed and every operator combines the top two entries, so a
// successful parse adds exactly one entry overall.
func Parse(toks []token.Token, pos *int, tab *symbol.Table, ts *TypeStack) (Node, error) {
	left, err := parseTerm(toks, pos, tab, ts, true)
	if err != nil {
		return nil, err
	}

	for *pos < len(toks) && toks[*pos].Kind == token.Arithmetic {
		op := toks[*pos].Text
		*pos++

		right, err := parseTerm(toks, pos, tab, ts, false)
		if err != nil {
			return nil, err
		}

		rt, _ := ts.Pop()
		lt, _ := ts.Pop()
		combined, err := symbol.Combine(lt, rt, op)
		if err != nil {
			return nil, err
		}
		ts.Push(combined)

		left = Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parseTerm parses a parenthesized sub-expression, a numeric literal,
// or an identifier reference. A parenthesized term pushes no entry of
// its own: its inner leaves and operators leave exactly one combined
// entry behind. The first flag only selects the failure message.
func parseTerm(toks []token.Token, pos *int, tab *symbol.Table, ts *TypeStack, first bool) (Node, error) {
	if *pos >= len(toks) {
		return nil, &SyntaxError{Msg: "unexpected end of expression"}
	}

	tok := toks[*pos]
	switch tok.Kind {
	case token.ParenOpen:
		*pos++
		inner, err := Parse(toks, pos, tab, ts)
		if err != nil {
			return nil, err
		}
		if *pos >= len(toks) || toks[*pos].Kind != token.ParenClose {
			return nil, &SyntaxError{Msg: `expected ")"`}
		}
		*pos++
		return inner, nil

	case token.Number:
		lit := Literal{Text: tok.Text, Type: symbol.NumberType(tok.Text)}
		ts.Push(lit.Type)
		*pos++
		return lit, nil

	case token.Identifier:
		sym, ok := tab.Lookup(tok.Text)
		if !ok {
			return nil, &NotFoundError{Name: tok.Text}
		}
		ts.Push(sym.Type)
		*pos++
		return VarRef{Name: tok.Text}, nil
	}

	if first {
		return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected factor %q", tok.Text)}
	}
	return nil, &SyntaxError{Msg: fmt.Sprintf("invalid right operand %q", tok.Text)}
}

// TypeOf derives a node's type from the live symbol table. Binary nodes
// apply the promotion rule to their children; the type stack used
// during parsing plays no part here.
func TypeOf(n Node, tab *symbol.Table) (symbol.Type, error) {
	switch n := n.(type) {
	case Literal:
		return n.Type, nil
	case VarRef:
		sym, ok := tab.Lookup(n.Name)
		if !ok {
			return symbol.Unknown, &NotFoundError{Name: n.Name}
		}
		return sym.Type, nil
	case Binary:
		lt, err := TypeOf(n.Left, tab)
		if err != nil {
			return symbol.Unknown, err
		}
		rt, err := TypeOf(n.Right, tab)
		if err != nil {
			return symbol.Unknown, err
		}
		return symbol.Combine(lt, rt, n.Op)
	}
	return symbol.Unknown, fmt.Errorf("unknown expression node %T", n)
}

// Eval computes a node's numeric value. Binary nodes derive their type
// first and refuse String results, so string expressions that parsed
// cleanly still fail here.
func Eval(n Node, tab *symbol.Table) (float64, error) {
	switch n := n.(type) {
	case Literal:
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", n.Text, err)
		}
		return v, nil

	case VarRef:
		sym, ok := tab.Lookup(n.Name)
		if !ok {
			return 0, &NotFoundError{Name: n.Name}
		}
		v, err := strconv.ParseFloat(sym.Value, 64)
		if err != nil {
			// Only string-typed symbols hold non-numeric text.
			return 0, ErrStringOperation
		}
		return v, nil

	case Binary:
		typ, err := TypeOf(n, tab)
		if err != nil {
			return 0, err
		}
		if typ == symbol.String {
			return 0, ErrStringOperation
		}
		lv, err := Eval(n.Left, tab)
		if err != nil {
			return 0, err
		}
		rv, err := Eval(n.Right, tab)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case "+":
			return lv + rv, nil
		case "-":
			return lv - rv, nil
		case "*":
			return lv * rv, nil
		case "/":
			return lv / rv, nil
		}
		return 0, &SyntaxError{Msg: fmt.Sprintf("unknown operator %q", n.Op)}
	}
	return 0, fmt.Errorf("unknown expression node %T", n)
}

// Annotated renders a node with per-node types resolved against the
// table, in the report form "(x[int] + y[int])[int]". Types that fail
// to resolve render as "unknown".
func Annotated(n Node, tab *symbol.Table) string {
	switch n := n.(type) {
	case Literal:
		return fmt.Sprintf("%s[%s]", n.Text, n.Type)
	case VarRef:
		typ := symbol.Unknown
		if sym, ok := tab.Lookup(n.Name); ok {
			typ = sym.Type
		}
		return fmt.Sprintf("%s[%s]", n.Name, typ)
	case Binary:
		typ, err := TypeOf(n, tab)
		if err != nil {
			typ = symbol.Unknown
		}
		return fmt.Sprintf("(%s %s %s)[%s]",
			Annotated(n.Left, tab), n.Op, Annotated(n.Right, tab), typ)
	}
	return ""
}
