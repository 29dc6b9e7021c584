package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/inox/journal"
)

// recordGreeting runs expand with a journal and returns the journal path.
func recordGreeting(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.db")

	e := Expand{Engine: engine(t), Source: []string{"testdata/greet.txt"}}
	e.Journal = path

	var out bytes.Buffer
	if err := e.Run(WithOutput(t.Context(), &out)); err != nil {
		t.Fatalf("Expand.Run() error = %v", err)
	}

	return path
}

func TestJournal(t *testing.T) {
	path := recordGreeting(t)

	tests := []struct {
		name  string
		cmd   Journal
		want  []string
		lines int
	}{
		{
			name: "entries",
			cmd:  Journal{File: path},
			want: []string{
				`greet!("bob") => concat!("hello, ", "bob")`,
				`concat!("hello, ", "bob") => "hello, bob"`,
			},
			lines: 2,
		},
		{
			name:  "limit",
			cmd:   Journal{File: path, Limit: 1},
			want:  []string{`concat!("hello, ", "bob") => "hello, bob"`},
			lines: 1,
		},
		{
			name:  "failed only",
			cmd:   Journal{File: path, Failed: true},
			lines: 0,
		},
		{
			name:  "sessions",
			cmd:   Journal{File: path, Sessions: true},
			lines: 1,
		},
		{
			name:  "last session",
			cmd:   Journal{File: path, Last: true},
			lines: 2,
		},
		{
			name:  "unknown session",
			cmd:   Journal{File: path, Session: "nope"},
			lines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := tt.cmd.Run(WithOutput(t.Context(), &out)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			text := strings.TrimSpace(out.String())

			lines := 0
			if text != "" {
				lines = len(strings.Split(text, "\n"))
			}

			if lines != tt.lines {
				t.Errorf("Run() printed %d lines, want %d:\n%s", lines, tt.lines, text)
			}

			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("output missing %q:\n%s", w, text)
				}
			}
		})
	}
}

func TestJournal_YAML(t *testing.T) {
	path := recordGreeting(t)

	var out bytes.Buffer
	if err := (&Journal{File: path, YAML: true}).Run(WithOutput(t.Context(), &out)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var records []journalRecord
	if err := yaml.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out.String())
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].Name != "greet" || records[1].Name != "concat" {
		t.Errorf("names = %q, %q, want greet, concat", records[0].Name, records[1].Name)
	}

	if records[0].Session != records[1].Session || records[0].Session == "" {
		t.Errorf("sessions = %q, %q, want one shared session", records[0].Session, records[1].Session)
	}
}

func TestJournal_FailedBeforeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	store, err := journal.OpenSQLite(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range []journal.Entry{
		{Name: "a", Delim: "paren", Err: "no definition"},
		{Name: "b", Delim: "paren", Err: "no definition"},
		{Name: "c", Delim: "paren", Result: "1"},
		{Name: "d", Delim: "paren", Result: "2"},
		{Name: "e", Delim: "paren", Result: "3"},
	} {
		e.Session = "s"
		if _, err := store.Append(t.Context(), e); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cmd  Journal
		want []string
	}{
		{
			name: "last failures",
			cmd:  Journal{File: path, Failed: true, Limit: 2},
			want: []string{"1\t0\ta!() !! no definition", "2\t0\tb!() !! no definition"},
		},
		{
			name: "most recent failure",
			cmd:  Journal{File: path, Failed: true, Limit: 1},
			want: []string{"2\t0\tb!() !! no definition"},
		},
		{
			name: "limit without filter",
			cmd:  Journal{File: path, Limit: 1},
			want: []string{"5\t0\te!() => 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := tt.cmd.Run(WithOutput(t.Context(), &out)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got := strings.Split(strings.TrimSpace(out.String()), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJournal_NoFile(t *testing.T) {
	err := (&Journal{}).Run(t.Context())
	if err == nil {
		t.Fatal("Run() expected error without a journal file")
	}
}

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry journal.Entry
		want  string
	}{
		{
			name:  "resolved",
			entry: journal.Entry{Seq: 3, Depth: 1, Name: "a::b", Delim: "bracket", Args: "1, 2", Result: "3"},
			want:  "3\t1\ta::b![1, 2] => 3",
		},
		{
			name:  "failed",
			entry: journal.Entry{Seq: 4, Name: "x", Delim: "paren", Args: "", Err: "no definition"},
			want:  "4\t0\tx!() !! no definition",
		},
		{
			name:  "unknown delimiter",
			entry: journal.Entry{Seq: 5, Name: "y", Delim: "none", Args: "z", Result: "z", Time: time.Unix(0, 0)},
			want:  "5\t0\ty!(z) => z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatEntry(tt.entry); got != tt.want {
				t.Errorf("formatEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}
