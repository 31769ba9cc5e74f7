// Package symbol implements the flat symbol table and the type rules
// shared by the expression builder and the statement recognizers.
package symbol

import (
	"fmt"
	"regexp"
	"strings"
)

// Type is a mimp data type.
type Type int

const (
	Unknown Type = iota
	Int
	Float
	String
)

// String returns the lowercase type name as it appears in source.
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "unknown"
}

// ParseType maps a type keyword to its Type.
func ParseType(keyword string) (Type, bool) {
	switch keyword {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "string":
		return String, true
	}
	return Unknown, false
}

// NumberType classifies a numeric literal by the presence of a decimal
// point.
func NumberType(text string) Type {
	if strings.Contains(text, ".") {
		return Float
	}
	return Int
}

var (
	intValue   = regexp.MustCompile(`^-?\d+$`)
	floatValue = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// ValueCompatible reports whether a textual value satisfies a type.
// Plain integers are valid float values; any text is a valid string.
func ValueCompatible(value string, typ Type) bool {
	switch typ {
	case Int:
		return intValue.MatchString(value)
	case Float:
		return floatValue.MatchString(value)
	case String:
		return true
	}
	return false
}

// CombineError reports an illegal operand pairing.
type CombineError struct {
	Left, Right Type
	Op          string
}

func (e *CombineError) Error() string {
	if e.Left == String && e.Right == String {
		return fmt.Sprintf("string operands support only %q, not %q", "+", e.Op)
	}
	return fmt.Sprintf("incompatible types: %s and %s", e.Left, e.Right)
}

// Combine applies the promotion rule to an operand pair: Int with Float
// promotes to Float, equal types keep their type, and String pairs are
// legal only under "+". Every other pairing is an error.
func Combine(a, b Type, op string) (Type, error) {
	if (a == Int && b == Float) || (a == Float && b == Int) {
		return Float, nil
	}
	if a == b {
		if a == String && op != "+" {
			return Unknown, &CombineError{Left: a, Right: b, Op: op}
		}
		return a, nil
	}
	return Unknown, &CombineError{Left: a, Right: b, Op: op}
}

// DuplicateError reports a second declaration of an existing name.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("variable %q already declared", e.Name)
}

// Symbol is one declared variable. Value is textual and reparsed per
// use; string values keep their surrounding quotes exactly as written.
type Symbol struct {
	Name  string
	Type  Type
	Value string
	ID    string
}

// Table is the flat, insertion-ordered symbol table. Symbols are created
// by declarations, overwritten by assignments, and never removed.
type Table struct {
	syms   []Symbol
	index  map[string]int
	nextID int
}

// NewTable creates an empty table. IDs count from "id1".
func NewTable() *Table {
	return &Table{index: make(map[string]int), nextID: 1}
}

// Declare adds a new symbol. A name already present is a DuplicateError
// and leaves the table untouched.
func (t *Table) Declare(name string, typ Type, value string) error {
	if _, ok := t.index[name]; ok {
		return &DuplicateError{Name: name}
	}
	t.index[name] = len(t.syms)
	t.syms = append(t.syms, Symbol{
		Name:  name,
		Type:  typ,
		Value: value,
		ID:    fmt.Sprintf("id%d", t.nextID),
	})
	t.nextID++
	return nil
}

// Lookup returns the symbol for a name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	i, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}
	return t.syms[i], true
}

// Assign overwrites the value of an existing symbol. It reports false
// for an undeclared name.
func (t *Table) Assign(name, value string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.syms[i].Value = value
	return true
}

// Symbols returns the table contents in declaration order. The slice is
// a copy.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.syms))
	copy(out, t.syms)
	return out
}

// Len returns the number of declared symbols.
func (t *Table) Len() int {
	return len(t.syms)
}
