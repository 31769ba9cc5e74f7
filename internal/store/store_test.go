package store

import (
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"

	"nickandperla.net/mimp/internal/symbol"
)

func sampleRun() *Run {
	return &Run{
		Source: "int x = 5; x = x + 1;",
		Valid:  true,
		Symbols: []symbol.Symbol{
			{Name: "x", Type: symbol.Int, Value: "6", ID: "id1"},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	run := sampleRun()
	if err := s.SaveRun(run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("SaveRun left ID blank")
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("SaveRun left CreatedAt zero")
	}

	got, err := s.Run(run.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got == nil {
		t.Fatal("Run returned nil for saved ID")
	}
	if got.Source != run.Source || !got.Valid {
		t.Errorf("got %+v, want %+v", got, run)
	}
	if diff := deep.Equal(got.Symbols, run.Symbols); diff != nil {
		t.Error(diff)
	}

	// Mutating the returned run must not touch the stored copy.
	got.Symbols[0].Value = "changed"
	again, _ := s.Run(run.ID)
	if again.Symbols[0].Value != "6" {
		t.Errorf("stored symbol mutated: %q", again.Symbols[0].Value)
	}

	missing, err := s.Run("nope")
	if err != nil {
		t.Fatalf("Run for missing ID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing ID, got %+v", missing)
	}
}

func TestMemoryRunsNewestFirst(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	for _, src := range []string{"first", "second", "third"} {
		if err := s.SaveRun(&Run{Source: src, Valid: true}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := s.Runs(0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	var got []string
	for _, r := range runs {
		got = append(got, r.Source)
	}
	if diff := deep.Equal(got, []string{"third", "second", "first"}); diff != nil {
		t.Error(diff)
	}

	runs, err = s.Runs(2)
	if err != nil {
		t.Fatalf("Runs with limit failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Source != "third" {
		t.Errorf("limited runs = %+v, want third and second", runs)
	}
}

func TestSQLiteStore(t *testing.T) {
	f, err := os.CreateTemp("", "mimp-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}

	run := &Run{
		Source:  `int x = 5; write(z);`,
		Valid:   false,
		Code:    "UndeclaredVariable",
		Message: `variable "z" not declared`,
		Symbols: []symbol.Symbol{
			{Name: "x", Type: symbol.Int, Value: "5", ID: "id1"},
		},
	}
	if err := s.SaveRun(run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, err := s2.Run(run.ID)
	if err != nil {
		t.Fatalf("Run after reopen failed: %v", err)
	}
	if got == nil {
		t.Fatal("Run returned nil after reopen")
	}
	if got.Valid || got.Code != run.Code || got.Message != run.Message {
		t.Errorf("got %+v, want %+v", got, run)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if diff := deep.Equal(got.Symbols, run.Symbols); diff != nil {
		t.Error(diff)
	}
}

func TestSQLiteSymbolOrder(t *testing.T) {
	f, err := os.CreateTemp("", "mimp-order-test-*.db")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()

	run := &Run{
		Source: "many",
		Valid:  true,
		Symbols: []symbol.Symbol{
			{Name: "z", Type: symbol.Int, Value: "1", ID: "id1"},
			{Name: "a", Type: symbol.Float, Value: "2.5", ID: "id2"},
			{Name: "m", Type: symbol.String, Value: `"hi"`, ID: "id3"},
		},
	}
	if err := s.SaveRun(run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.Run(run.ID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Declaration order survives the round trip, not alphabetical order.
	if diff := deep.Equal(got.Symbols, run.Symbols); diff != nil {
		t.Error(diff)
	}
}

func TestSQLiteRunsNewestFirst(t *testing.T) {
	f, err := os.CreateTemp("", "mimp-list-test-*.db")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()

	base := time.Now().UTC()
	for i, src := range []string{"first", "second", "third"} {
		run := &Run{Source: src, Valid: true, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := s.SaveRun(run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := s.Runs(2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Source != "third" || runs[1].Source != "second" {
		t.Errorf("runs = %+v, want third then second", runs)
	}
	if runs[0].Symbols != nil {
		t.Error("listing should not carry symbol snapshots")
	}
}

func TestSQLiteSchemaGuard(t *testing.T) {
	f, err := os.CreateTemp("", "mimp-schema-test-*.db")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	// Create a database stamped with a future schema version
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO metadata (key, value) VALUES ('schema_version', '99');
	`)
	if err != nil {
		t.Fatalf("seed schema: %v", err)
	}
	db.Close()

	if _, err := NewSQLite(path); err == nil {
		t.Fatal("expected error for unsupported schema version")
	} else if !strings.Contains(err.Error(), "unsupported schema version") {
		t.Errorf("err = %v, want unsupported schema version", err)
	}
}
