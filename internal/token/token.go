// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the lexical categories of mimp source text.
package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	Variable     Kind = iota // type keywords: int, float, string
	Cycle                    // while
	Write                    // write
	Read                     // read
	Comparison               // >= <= == != > <
	Arithmetic               // + - * /
	Operator                 // = ;
	String                   // double-quoted literal
	ParenOpen                // (
	ParenClose               // )
	BraceOpen                // {
	BraceClose               // }
	BracketOpen              // [
	BracketClose             // ]
	Number                   // unsigned integer or decimal literal
	Condition                // if, else
	Identifier               // names
)

// String returns the name of a kind.
func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case Cycle:
		return "Cycle"
	case Write:
		return "Write"
	case Read:
		return "Read"
	case Comparison:
		return "Comparison"
	case Arithmetic:
		return "Arithmetic"
	case Operator:
		return "Operator"
	case String:
		return "String"
	case ParenOpen:
		return "ParenOpen"
	case ParenClose:
		return "ParenClose"
	case BraceOpen:
		return "BraceOpen"
	case BraceClose:
		return "BraceClose"
	case BracketOpen:
		return "BracketOpen"
	case BracketClose:
		return "BracketClose"
	case Number:
		return "Number"
	case Condition:
		return "Condition"
	case Identifier:
		return "Identifier"
	}
	return "Unknown"
}

// Token is a classified fragment of source text. It carries no position:
// a token knows only its category and literal text.
type Token struct {
	Kind Kind
	Text string
}

// String renders a token as Kind("text").
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Is reports whether the token has the given kind and exact text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}
