package scanner

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"nickandperla.net/mimp/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	got := Tokenize(`int x = 5;`)
	want := []token.Token{
		{Kind: token.Variable, Text: "int"},
		{Kind: token.Identifier, Text: "x"},
		{Kind: token.Operator, Text: "="},
		{Kind: token.Number, Text: "5"},
		{Kind: token.Operator, Text: ";"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestRulePriority(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		// Comparison wins over Operator, so == is one token.
		{"x == y", []token.Kind{token.Identifier, token.Comparison, token.Identifier}},
		{"x = y", []token.Kind{token.Identifier, token.Operator, token.Identifier}},
		{"x >= 10", []token.Kind{token.Identifier, token.Comparison, token.Number}},
		// Numbers win over identifiers at the cursor.
		{"123abc", []token.Kind{token.Number, token.Identifier}},
		{"123if", []token.Kind{token.Number, token.Condition}},
		// Word boundaries keep keyword-prefixed words whole.
		{"integer", []token.Kind{token.Identifier}},
		{"whilex", []token.Kind{token.Identifier}},
		{"if", []token.Kind{token.Condition}},
		{"else", []token.Kind{token.Condition}},
		{"while", []token.Kind{token.Cycle}},
		{"write read", []token.Kind{token.Write, token.Read}},
		// A leading minus is an Arithmetic token, never part of a number.
		{"-5", []token.Kind{token.Arithmetic, token.Number}},
		{"2.5", []token.Kind{token.Number}},
		{`"hola mundo"`, []token.Kind{token.String}},
		{"( ) [ ] { }", []token.Kind{token.ParenOpen, token.ParenClose,
			token.BracketOpen, token.BracketClose, token.BraceOpen, token.BraceClose}},
	}
	for _, tt := range tests {
		got := kinds(Tokenize(tt.src))
		if diff := deep.Equal(got, tt.want); diff != nil {
			t.Errorf("Tokenize(%q): %v", tt.src, diff)
		}
	}
}

func TestUnrecognizedCharactersSkipped(t *testing.T) {
	// Characters no rule matches are dropped silently, whitespace included.
	got := Tokenize("int @ x # = $ 5 ;")
	want := Tokenize("int x = 5;")
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}

	if toks := Tokenize("@#$ \t\n"); len(toks) != 0 {
		t.Errorf("expected no tokens, got %v", toks)
	}
}

func TestEmptyInput(t *testing.T) {
	if toks := Tokenize(""); len(toks) != 0 {
		t.Errorf("expected no tokens, got %v", toks)
	}
}

func TestScannerNext(t *testing.T) {
	s := New("x = 1;")
	var got []token.Token
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, tok)
	}
	if len(got) != 4 {
		t.Fatalf("Next produced %d tokens, want 4: %v", len(got), got)
	}
	if _, ok := s.Next(); ok {
		t.Error("Next after exhaustion should report false")
	}
}

func TestRoundTrip(t *testing.T) {
	src := `int x = 5;
float f = 2.5;
string s = "hola";
write(x);
read(f);
if (x > 3) { x = x + 1; } else { write("no"); }
while (x < 10) { x = x * 2; }`

	first := Tokenize(src)
	if len(first) == 0 {
		t.Fatal("no tokens from source")
	}

	texts := make([]string, len(first))
	for i, tok := range first {
		texts[i] = tok.Text
	}
	second := Tokenize(strings.Join(texts, " "))

	if diff := deep.Equal(first, second); diff != nil {
		t.Error(diff)
	}
}
