package analysis

import (
	"errors"
	"fmt"

	"nickandperla.net/mimp/internal/expr"
	"nickandperla.net/mimp/internal/symbol"
)

// errNoMatch signals that a recognizer's form does not begin at the
// cursor. The driver treats it as "try the next recognizer", never as a
// diagnostic.
var errNoMatch = errors.New("statement form does not match")

// UndeclaredError reports a statement referencing a name with no
// declaration.
type UndeclaredError struct {
	Name string
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("variable %q not declared", e.Name)
}

// AssignError reports a source type that does not exactly match the
// destination's declared type. Promotion applies inside expressions,
// never at the top level of a declaration or assignment.
type AssignError struct {
	From, To symbol.Type
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("cannot assign %s to variable of type %s", e.From, e.To)
}

// ValueError reports a declaration initializer whose text does not
// satisfy the declared type.
type ValueError struct {
	Value string
	Type  symbol.Type
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("value %q is not compatible with type %s", e.Value, e.Type)
}

// SyntaxError reports a malformed statement shape.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

// Code names one diagnostic family.
type Code string

const (
	CodeNone             Code = ""
	CodeDuplicateName    Code = "DuplicateName"
	CodeUndeclared       Code = "UndeclaredVariable"
	CodeTypeMismatch     Code = "TypeMismatch"
	CodeSyntax           Code = "SyntaxError"
	CodeStringOperation  Code = "UnsupportedStringOperation"
	CodeVariableNotFound Code = "VariableNotFound"
	CodeUnknown          Code = "Unknown"
)

// CodeOf classifies a diagnostic into its family. A nil error is
// CodeNone.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	var (
		dup *symbol.DuplicateError
		und *UndeclaredError
		cmb *symbol.CombineError
		asn *AssignError
		val *ValueError
		nf  *expr.NotFoundError
		ese *expr.SyntaxError
		sse *SyntaxError
	)
	switch {
	case errors.As(err, &dup):
		return CodeDuplicateName
	case errors.As(err, &und):
		return CodeUndeclared
	case errors.As(err, &cmb), errors.As(err, &asn), errors.As(err, &val):
		return CodeTypeMismatch
	case errors.Is(err, expr.ErrStringOperation):
		return CodeStringOperation
	case errors.As(err, &nf):
		return CodeVariableNotFound
	case errors.As(err, &ese), errors.As(err, &sse):
		return CodeSyntax
	}
	return CodeUnknown
}
