package analysis

import (
	"fmt"
	"strconv"

	"nickandperla.net/mimp/internal/expr"
	"nickandperla.net/mimp/internal/symbol"
	"nickandperla.net/mimp/internal/token"
)

// attempt runs a recognizer body and restores the cursor to its entry
// position when the body fails. Successful bodies leave the cursor past
// the statement they consumed.
func attempt(pos *int, body func() error) error {
	start := *pos
	if err := body(); err != nil {
		*pos = start
		return err
	}
	return nil
}

// declaration recognizes `<type> <name> = <value> ;`. The value must be
// a literal or a declared variable of the exact same type, and the
// terminator is required. The table is only touched once the whole
// statement has validated.
func (c *Checker) declaration(toks []token.Token, pos *int) error {
	if toks[*pos].Kind != token.Variable {
		return errNoMatch
	}
	return attempt(pos, func() error {
		typ, _ := symbol.ParseType(toks[*pos].Text)
		if *pos+1 >= len(toks) || toks[*pos+1].Kind != token.Identifier {
			return &SyntaxError{Msg: fmt.Sprintf("expected identifier after %q", toks[*pos].Text)}
		}
		name := toks[*pos+1].Text
		if *pos+2 >= len(toks) || !toks[*pos+2].Is(token.Operator, "=") {
			return &SyntaxError{Msg: `expected "=" in declaration`}
		}
		if *pos+3 >= len(toks) {
			return &SyntaxError{Msg: "incomplete declaration"}
		}
		if _, ok := c.symbols.Lookup(name); ok {
			return &symbol.DuplicateError{Name: name}
		}

		var value string
		switch val := toks[*pos+3]; val.Kind {
		case token.Number, token.String:
			value = val.Text
		case token.Identifier:
			src, ok := c.symbols.Lookup(val.Text)
			if !ok {
				return &UndeclaredError{Name: val.Text}
			}
			if src.Type != typ {
				return &AssignError{From: src.Type, To: typ}
			}
			value = src.Value
		default:
			return &SyntaxError{Msg: fmt.Sprintf("invalid value %q in declaration", val.Text)}
		}
		if !symbol.ValueCompatible(value, typ) {
			return &ValueError{Value: value, Type: typ}
		}

		*pos += 4
		if *pos >= len(toks) || !toks[*pos].Is(token.Operator, ";") {
			return &SyntaxError{Msg: `expected ";" after declaration`}
		}
		*pos++
		return c.symbols.Declare(name, typ, value)
	})
}

// write recognizes `write ( <arg> )` with an optional terminator. The
// argument may be a literal or a declared variable, and the report
// echoes the argument text as written.
func (c *Checker) write(toks []token.Token, pos *int) error {
	if toks[*pos].Kind != token.Write {
		return errNoMatch
	}
	return attempt(pos, func() error {
		if *pos+1 >= len(toks) || toks[*pos+1].Kind != token.ParenOpen {
			return &SyntaxError{Msg: `expected "(" after write`}
		}
		if *pos+2 >= len(toks) {
			return &SyntaxError{Msg: "incomplete write statement"}
		}
		arg := toks[*pos+2]
		switch arg.Kind {
		case token.Identifier:
			if _, ok := c.symbols.Lookup(arg.Text); !ok {
				return &UndeclaredError{Name: arg.Text}
			}
		case token.Number, token.String:
		default:
			return &SyntaxError{Msg: fmt.Sprintf("invalid write argument %q", arg.Text)}
		}
		if *pos+3 >= len(toks) || toks[*pos+3].Kind != token.ParenClose {
			return &SyntaxError{Msg: `expected ")" to close write`}
		}
		*pos += 4
		if *pos < len(toks) && toks[*pos].Is(token.Operator, ";") {
			*pos++
		}
		c.report("write: %s", arg.Text)
		return nil
	})
}

// read recognizes `read ( <name> )` with an optional terminator. The
// name must be declared; the report shows its current value. No input
// is consumed.
func (c *Checker) read(toks []token.Token, pos *int) error {
	if toks[*pos].Kind != token.Read {
		return errNoMatch
	}
	return attempt(pos, func() error {
		if *pos+1 >= len(toks) || toks[*pos+1].Kind != token.ParenOpen {
			return &SyntaxError{Msg: `expected "(" after read`}
		}
		if *pos+2 >= len(toks) || toks[*pos+2].Kind != token.Identifier {
			return &SyntaxError{Msg: "expected identifier in read"}
		}
		name := toks[*pos+2].Text
		sym, ok := c.symbols.Lookup(name)
		if !ok {
			return &UndeclaredError{Name: name}
		}
		if *pos+3 >= len(toks) || toks[*pos+3].Kind != token.ParenClose {
			return &SyntaxError{Msg: `expected ")" to close read`}
		}
		*pos += 4
		if *pos < len(toks) && toks[*pos].Is(token.Operator, ";") {
			*pos++
		}
		c.report("content of %s: %s", name, sym.Value)
		return nil
	})
}

// operand validates one side of a condition. Numbers pass as written;
// identifiers must be declared.
func (c *Checker) operand(t token.Token) error {
	switch t.Kind {
	case token.Number:
		return nil
	case token.Identifier:
		if _, ok := c.symbols.Lookup(t.Text); !ok {
			return &UndeclaredError{Name: t.Text}
		}
		return nil
	}
	return &SyntaxError{Msg: fmt.Sprintf("invalid condition operand %q", t.Text)}
}

// condition validates the `( <operand> <cmp> <operand> )` head shared by
// if and while, leaving the cursor on the token after ")".
func (c *Checker) condition(toks []token.Token, pos *int, form string) error {
	if *pos+1 >= len(toks) || toks[*pos+1].Kind != token.ParenOpen {
		return &SyntaxError{Msg: fmt.Sprintf("expected %q after %s", "(", form)}
	}
	if *pos+5 >= len(toks) {
		return &SyntaxError{Msg: fmt.Sprintf("incomplete %s condition", form)}
	}
	if err := c.operand(toks[*pos+2]); err != nil {
		return err
	}
	if toks[*pos+3].Kind != token.Comparison {
		return &SyntaxError{Msg: fmt.Sprintf("expected comparison operator, found %q", toks[*pos+3].Text)}
	}
	if err := c.operand(toks[*pos+4]); err != nil {
		return err
	}
	if toks[*pos+5].Kind != token.ParenClose {
		return &SyntaxError{Msg: fmt.Sprintf("expected %q to close %s condition", ")", form)}
	}
	*pos += 6
	return nil
}

// ifStmt recognizes `if (..) { .. }` with an optional else block. The
// branches are validated, never executed.
func (c *Checker) ifStmt(toks []token.Token, pos *int) error {
	if !toks[*pos].Is(token.Condition, "if") {
		return errNoMatch
	}
	return attempt(pos, func() error {
		if err := c.condition(toks, pos, "if"); err != nil {
			return err
		}
		if *pos >= len(toks) || toks[*pos].Kind != token.BraceOpen {
			return &SyntaxError{Msg: `expected "{" after condition`}
		}
		*pos++
		if err := c.block(toks, pos); err != nil {
			return err
		}
		*pos++ // closing brace

		if *pos < len(toks) && toks[*pos].Is(token.Condition, "else") {
			*pos++
			if *pos >= len(toks) || toks[*pos].Kind != token.BraceOpen {
				return &SyntaxError{Msg: `expected "{" after else`}
			}
			*pos++
			if err := c.block(toks, pos); err != nil {
				return err
			}
			*pos++
		}
		return nil
	})
}

// whileStmt recognizes `while (..) { .. }`. Same validate-only handling
// as if, without an else branch.
func (c *Checker) whileStmt(toks []token.Token, pos *int) error {
	if toks[*pos].Kind != token.Cycle {
		return errNoMatch
	}
	return attempt(pos, func() error {
		if err := c.condition(toks, pos, "while"); err != nil {
			return err
		}
		if *pos >= len(toks) || toks[*pos].Kind != token.BraceOpen {
			return &SyntaxError{Msg: `expected "{" after condition`}
		}
		*pos++
		if err := c.block(toks, pos); err != nil {
			return err
		}
		*pos++
		return nil
	})
}

// block dispatches statements until the closing brace, which is left
// for the caller to consume. The type stack is not reset here; nested
// statements run under the driver-set stack.
func (c *Checker) block(toks []token.Token, pos *int) error {
	for {
		if *pos >= len(toks) {
			return &SyntaxError{Msg: `expected "}"`}
		}
		if toks[*pos].Kind == token.BraceClose {
			return nil
		}
		if err := c.statement(toks, pos); err != nil {
			return err
		}
	}
}

// assignment recognizes `<name> = <expression> ;`. The target must be
// declared, the inferred expression type must equal the target type
// exactly, and the terminator is checked before evaluation. On success
// the evaluated value is stored and the annotated expression reported.
func (c *Checker) assignment(toks []token.Token, pos *int) error {
	if toks[*pos].Kind != token.Identifier {
		return errNoMatch
	}
	return attempt(pos, func() error {
		dest, ok := c.symbols.Lookup(toks[*pos].Text)
		if !ok {
			return &UndeclaredError{Name: toks[*pos].Text}
		}
		if *pos+1 >= len(toks) || !toks[*pos+1].Is(token.Operator, "=") {
			return &SyntaxError{Msg: `expected "=" in assignment`}
		}
		*pos += 2

		node, err := expr.Parse(toks, pos, c.symbols, c.types)
		if err != nil {
			c.report("assignment error: %v", err)
			return err
		}
		infType, _ := c.types.Pop() // successful parse always leaves one entry
		if infType != dest.Type {
			err := &AssignError{From: infType, To: dest.Type}
			c.report("assignment error: %v", err)
			return err
		}
		if *pos >= len(toks) || !toks[*pos].Is(token.Operator, ";") {
			err := &SyntaxError{Msg: `expected ";" after assignment`}
			c.report("assignment error: %v", err)
			return err
		}
		*pos++

		result, err := expr.Eval(node, c.symbols)
		if err != nil {
			c.report("assignment error: %v", err)
			return err
		}

		var value string
		if dest.Type == symbol.Int {
			value = strconv.Itoa(int(result))
		} else {
			value = strconv.FormatFloat(result, 'f', -1, 64)
		}
		c.symbols.Assign(dest.Name, value)

		c.report("expr: %s", expr.Annotated(node, c.symbols))
		c.report("result: %s", strconv.FormatFloat(result, 'g', -1, 64))
		return nil
	})
}
