// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides the ordered-priority lexer for mimp source text.
package scanner

import (
	"regexp"

	"nickandperla.net/mimp/internal/token"
)

// rule pairs a lexical category with its pattern. Rules are tried in
// order at every cursor position; the first whose match starts exactly
// at the cursor wins.
type rule struct {
	kind token.Kind
	re   *regexp.Regexp
}

// The rule order is a contract: keyword categories come before the
// generic identifier category, and comparison before operator so "=="
// never lexes as two "=". Word boundaries keep "integer" a single
// identifier.
var rules = []rule{
	{token.Variable, regexp.MustCompile(`\b(int|float|string)\b`)},
	{token.Cycle, regexp.MustCompile(`\bwhile\b`)},
	{token.Write, regexp.MustCompile(`\bwrite\b`)},
	{token.Read, regexp.MustCompile(`\bread\b`)},
	{token.Comparison, regexp.MustCompile(`>=|<=|==|!=|>|<`)},
	{token.Arithmetic, regexp.MustCompile(`[+*/-]`)},
	{token.Operator, regexp.MustCompile(`=|;`)},
	{token.String, regexp.MustCompile(`"[^"]*"`)},
	{token.ParenClose, regexp.MustCompile(`\)`)},
	{token.ParenOpen, regexp.MustCompile(`\(`)},
	{token.BracketClose, regexp.MustCompile(`\]`)},
	{token.BracketOpen, regexp.MustCompile(`\[`)},
	{token.BraceClose, regexp.MustCompile(`\}`)},
	{token.BraceOpen, regexp.MustCompile(`\{`)},
	{token.Number, regexp.MustCompile(`\d+(\.\d+)?`)},
	{token.Condition, regexp.MustCompile(`\b(if|else)\b`)},
	{token.Identifier, regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)},
}

// Scanner walks source text producing one token per Next call.
type Scanner struct {
	src string
	pos int
}

// New creates a Scanner over the given source text.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Next returns the next token, or false when the input is exhausted.
// A position where no rule matches is skipped one character at a time
// without error; whitespace is handled by that same fallback, since no
// rule matches it.
func (s *Scanner) Next() (token.Token, bool) {
	for s.pos < len(s.src) {
		rest := s.src[s.pos:]
		for _, r := range rules {
			loc := r.re.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			tok := token.Token{Kind: r.kind, Text: rest[:loc[1]]}
			s.pos += loc[1]
			return tok, true
		}
		s.pos++
	}
	return token.Token{}, false
}

// Tokenize scans the whole source in one call.
func Tokenize(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for {
		tok, ok := s.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}
