package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestHistory_Add(t *testing.T) {
	tests := []struct {
		name string
		add  []HistoryEntry
		want []HistoryEntry
	}{
		{
			name: "in order",
			add:  []HistoryEntry{{"a!(1)", modeEval}, {"list", modeCtrl}},
			want: []HistoryEntry{{"a!(1)", modeEval}, {"list", modeCtrl}},
		},
		{
			name: "repeat of last skipped",
			add:  []HistoryEntry{{"x", modeEval}, {"x", modeEval}},
			want: []HistoryEntry{{"x", modeEval}},
		},
		{
			name: "earlier duplicate moves to end",
			add:  []HistoryEntry{{"x", modeEval}, {"y", modeEval}, {"x", modeEval}},
			want: []HistoryEntry{{"y", modeEval}, {"x", modeEval}},
		},
		{
			name: "same line other mode kept",
			add:  []HistoryEntry{{"help", modeEval}, {"help", modeCtrl}},
			want: []HistoryEntry{{"help", modeEval}, {"help", modeCtrl}},
		},
		{
			name: "blank ignored",
			add:  []HistoryEntry{{"  ", modeEval}, {" z ", modeEval}},
			want: []HistoryEntry{{"z", modeEval}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), baseHistory)

			h := NewHistory(path)
			for _, e := range tt.add {
				if err := h.Add(e.Line, e.Mode); err != nil {
					t.Fatalf("Add(%q) error = %v", e.Line, err)
				}
			}

			if diff := cmp.Diff(tt.want, h.Entries()); diff != "" {
				t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
			}

			// The file must agree with memory after reloading.
			reloaded := NewHistory(path)
			if err := reloaded.Load(); err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if diff := cmp.Diff(h.Entries(), reloaded.Entries(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("reloaded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHistory_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	content := "E:a!(1)\n\nC:step\nlegacy\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []HistoryEntry{{"a!(1)", modeEval}, {"step", modeCtrl}, {"legacy", modeEval}}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	missing := NewHistory(filepath.Join(t.TempDir(), "none"))
	if err := missing.Load(); err != nil || missing.Len() != 0 {
		t.Errorf("Load(missing) = %v with %d entries, want empty history", err, missing.Len())
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := h.Add("x", modeEval); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	e, err := h.Entry(0)
	if err != nil || e.Line != "x" {
		t.Errorf("Entry(0) = %+v, %v", e, err)
	}

	if _, err := h.Entry(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(1) error = %v, want %v", err, ErrOutOfBounds)
	}

	if _, err := h.Entry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(-1) error = %v, want %v", err, ErrOutOfBounds)
	}
}
