package symbol

import (
	"errors"
	"testing"
)

func TestDeclareAndLookup(t *testing.T) {
	tab := NewTable()
	if err := tab.Declare("x", Int, "5"); err != nil {
		t.Fatalf("Declare(x) error: %v", err)
	}
	if err := tab.Declare("f", Float, "2.5"); err != nil {
		t.Fatalf("Declare(f) error: %v", err)
	}

	x, ok := tab.Lookup("x")
	if !ok {
		t.Fatal("Lookup(x) not found")
	}
	if x.Type != Int || x.Value != "5" || x.ID != "id1" {
		t.Errorf("Lookup(x) = %+v, want Int/5/id1", x)
	}

	f, ok := tab.Lookup("f")
	if !ok {
		t.Fatal("Lookup(f) not found")
	}
	if f.Type != Float || f.Value != "2.5" || f.ID != "id2" {
		t.Errorf("Lookup(f) = %+v, want Float/2.5/id2", f)
	}

	if _, ok := tab.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not be found")
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	tab := NewTable()
	if err := tab.Declare("x", Int, "1"); err != nil {
		t.Fatalf("first Declare error: %v", err)
	}

	err := tab.Declare("x", Float, "9.9")
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("second Declare = %v, want DuplicateError", err)
	}
	if dup.Name != "x" {
		t.Errorf("DuplicateError.Name = %q, want %q", dup.Name, "x")
	}

	// The failed declaration must leave no trace.
	if tab.Len() != 1 {
		t.Errorf("Len = %d, want 1", tab.Len())
	}
	x, _ := tab.Lookup("x")
	if x.Type != Int || x.Value != "1" {
		t.Errorf("Lookup(x) = %+v, want original Int/1", x)
	}
}

func TestAssign(t *testing.T) {
	tab := NewTable()
	tab.Declare("x", Int, "1")

	if !tab.Assign("x", "42") {
		t.Fatal("Assign(x) reported failure")
	}
	x, _ := tab.Lookup("x")
	if x.Value != "42" {
		t.Errorf("value after Assign = %q, want %q", x.Value, "42")
	}
	if x.ID != "id1" {
		t.Errorf("ID changed on Assign: %q", x.ID)
	}

	if tab.Assign("missing", "1") {
		t.Error("Assign(missing) should report failure")
	}
}

func TestSymbolsOrder(t *testing.T) {
	tab := NewTable()
	tab.Declare("a", Int, "1")
	tab.Declare("b", Float, "2.0")
	tab.Declare("c", String, `"x"`)

	syms := tab.Symbols()
	if len(syms) != 3 {
		t.Fatalf("Symbols len = %d, want 3", len(syms))
	}
	for i, want := range []string{"a", "b", "c"} {
		if syms[i].Name != want {
			t.Errorf("Symbols[%d].Name = %q, want %q", i, syms[i].Name, want)
		}
	}

	// Mutating the copy must not touch the table.
	syms[0].Value = "mutated"
	a, _ := tab.Lookup("a")
	if a.Value != "1" {
		t.Errorf("table value changed through copy: %q", a.Value)
	}
}

func TestValueCompatible(t *testing.T) {
	tests := []struct {
		value string
		typ   Type
		want  bool
	}{
		{"5", Int, true},
		{"-5", Int, true},
		{"2.5", Int, false},
		{"abc", Int, false},
		{`"5"`, Int, false},
		{"5", Float, true},
		{"-5", Float, true},
		{"2.5", Float, true},
		{"-2.5", Float, true},
		{"2.", Float, false},
		{"abc", Float, false},
		{`"anything"`, String, true},
		{"123", String, true},
		{"", String, true},
		{"5", Unknown, false},
	}
	for _, tt := range tests {
		if got := ValueCompatible(tt.value, tt.typ); got != tt.want {
			t.Errorf("ValueCompatible(%q, %s) = %v, want %v", tt.value, tt.typ, got, tt.want)
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		a, b    Type
		op      string
		want    Type
		wantErr bool
	}{
		{Int, Int, "+", Int, false},
		{Int, Int, "/", Int, false},
		{Float, Float, "*", Float, false},
		{Int, Float, "+", Float, false},
		{Float, Int, "-", Float, false},
		{String, String, "+", String, false},
		{String, String, "*", Unknown, true},
		{Int, String, "+", Unknown, true},
		{String, Float, "+", Unknown, true},
	}
	for _, tt := range tests {
		got, err := Combine(tt.a, tt.b, tt.op)
		if tt.wantErr {
			var ce *CombineError
			if !errors.As(err, &ce) {
				t.Errorf("Combine(%s, %s, %q) err = %v, want CombineError", tt.a, tt.b, tt.op, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Combine(%s, %s, %q) error: %v", tt.a, tt.b, tt.op, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Combine(%s, %s, %q) = %s, want %s", tt.a, tt.b, tt.op, got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	for keyword, want := range map[string]Type{"int": Int, "float": Float, "string": String} {
		got, ok := ParseType(keyword)
		if !ok || got != want {
			t.Errorf("ParseType(%q) = %s, %v", keyword, got, ok)
		}
	}
	if _, ok := ParseType("double"); ok {
		t.Error("ParseType(double) should fail")
	}
}

func TestNumberType(t *testing.T) {
	if got := NumberType("5"); got != Int {
		t.Errorf("NumberType(5) = %s, want int", got)
	}
	if got := NumberType("2.5"); got != Float {
		t.Errorf("NumberType(2.5) = %s, want float", got)
	}
}
