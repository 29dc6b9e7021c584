package journal

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func sampleEntries() []Entry {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC)

	return []Entry{
		{Session: "s1", Name: "b_to_a", Delim: "paren", Depth: 1, Args: `"b" "q"`, Result: `"a"`, Time: ts},
		{Session: "s1", Name: "a_to_end", Delim: "paren", Args: `"a" "z"`, Result: `"z"`, Time: ts},
		{Session: "s2", Name: "nonlit_out", Delim: "bracket", Args: `"q"`, Err: "not a literal", Time: ts},
	}
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	ctx := t.Context()

	for i, e := range sampleEntries() {
		e.Digest = Digest(e.Name + e.Args)

		got, err := s.Append(ctx, e)
		if err != nil {
			t.Fatalf("Append: %v", err)
		}

		if got.Seq != int64(i+1) {
			t.Errorf("entry %d assigned seq %d", i, got.Seq)
		}
	}

	all, err := s.Entries(ctx, "", 0)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}

	first := all[0]
	if first.Name != "b_to_a" || first.Depth != 1 || first.Result != `"a"` {
		t.Errorf("first entry = %+v", first)
	}

	if !first.Time.Equal(sampleEntries()[0].Time) {
		t.Errorf("time = %v", first.Time)
	}

	if !all[2].Failed() || all[1].Failed() {
		t.Error("Failed() does not reflect Err")
	}

	s1, err := s.Entries(ctx, "s1", 0)
	if err != nil || len(s1) != 2 {
		t.Fatalf("Entries(s1) = %d entries, %v", len(s1), err)
	}

	last, err := s.Entries(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}

	names := []string{last[0].Name, last[1].Name}
	if !slices.Equal(names, []string{"a_to_end", "nonlit_out"}) {
		t.Errorf("limited entries = %v, want the newest two in order", names)
	}

	sessions, err := s.Sessions(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(sessions, []string{"s1", "s2"}) {
		t.Errorf("Sessions() = %v", sessions)
	}
}

// exerciseClosed closes s and checks that every operation then fails with
// ErrClosed.
func exerciseClosed(t *testing.T, s Store) {
	t.Helper()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if _, err := s.Append(t.Context(), Entry{Session: "s1"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Append after Close: %v, want ErrClosed", err)
	}

	if _, err := s.Entries(t.Context(), "", 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Entries after Close: %v, want ErrClosed", err)
	}

	if _, err := s.Sessions(t.Context()); !errors.Is(err, ErrClosed) {
		t.Errorf("Sessions after Close: %v, want ErrClosed", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exerciseStore(t, m)
	exerciseClosed(t, m)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := OpenSQLite(t.Context(), path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	exerciseStore(t, s)

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening keeps entries and accepts the stored schema version.
	s, err = OpenSQLite(t.Context(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	all, err := s.Entries(t.Context(), "", 0)
	if err != nil || len(all) != 3 {
		t.Errorf("after reopen: %d entries, %v", len(all), err)
	}

	exerciseClosed(t, s)
}

func TestSQLite_SchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := OpenSQLite(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.setMetadata(t.Context(), "schema_version", "99"); err != nil {
		t.Fatal(err)
	}

	s.Close()

	if _, err := OpenSQLite(t.Context(), path); !errors.Is(err, ErrSchemaVersion) {
		t.Errorf("error = %v, want ErrSchemaVersion", err)
	}
}

func TestDigest(t *testing.T) {
	if Digest("concat!(1)") != Digest("concat!(1)") {
		t.Error("Digest is not stable")
	}

	if Digest("a") == Digest("b") {
		t.Error("Digest collides on distinct input")
	}

	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	if got := NewSession(ts, "x"); got != "20240506T070809-"+Digest("x") {
		t.Errorf("NewSession = %q", got)
	}
}
