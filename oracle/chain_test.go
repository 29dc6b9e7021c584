package oracle

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/journal"
	"github.com/ardnew/inox/lang"
)

func TestChain(t *testing.T) {
	c := Chain{loadRegistry(t), NewBuiltins()}

	got, err := c.Resolve(t.Context(), invocation(t, `concat!("x", 1)`))
	if err != nil || got.String() != `"x1"` {
		t.Errorf("builtin through chain = %q, %v", got.String(), err)
	}

	got, err = c.Resolve(t.Context(), invocation(t, `b_to_a!("b" 1)`))
	if err != nil || got.String() != `"a"` {
		t.Errorf("rule through chain = %q, %v", got.String(), err)
	}

	// A definition that exists but does not match stops the search.
	if _, err := c.Resolve(t.Context(), invocation(t, `b_to_a!(1)`)); !errors.Is(err, ErrNoMatch) {
		t.Errorf("error = %v, want ErrNoMatch", err)
	}

	if _, err := c.Resolve(t.Context(), invocation(t, `zzz!()`)); !errors.Is(err, ErrUnknownName) {
		t.Errorf("error = %v, want ErrUnknownName", err)
	}
}

func TestChain_ShadowsLaterOracles(t *testing.T) {
	r := NewRegistry()

	err := r.Define(t.Context(), Definition{
		Name:  "concat",
		Rules: []Rule{{Match: "$a*", Expand: `"shadowed"`}},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := Chain{r, NewBuiltins()}.Resolve(t.Context(), invocation(t, `concat!(1)`))
	if err != nil || got.String() != `"shadowed"` {
		t.Errorf("Resolve = %q, %v", got.String(), err)
	}
}

func TestRecorder(t *testing.T) {
	store := journal.NewMemory()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rec := &Recorder{
		Oracle:  loadRegistry(t),
		Store:   store,
		Session: "s",
		Now:     func() time.Time { return ts },
	}

	input, err := lang.Parse(t.Context(), `a_to_end!(b_to_a!("b" "q") "z") missing!()`)
	if err != nil {
		t.Fatal(err)
	}

	out, err := expand.New(rec, expand.WithMode(expand.Permissive)).Expand(t.Context(), input)
	if err != nil {
		t.Fatal(err)
	}

	if out.String() != `"z" missing!()` {
		t.Errorf("out = %q", out.String())
	}

	entries, err := store.Entries(t.Context(), "s", 0)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}

	// The unresolved invocation is attempted again on the confirming pass.
	want := []string{"b_to_a", "a_to_end", "missing", "missing"}
	if !slices.Equal(names, want) {
		t.Fatalf("recorded %v", names)
	}

	if e := entries[0]; e.Depth != 1 || e.Result != `"a"` || e.Args != `"b" "q"` || !e.Time.Equal(ts) {
		t.Errorf("first entry = %+v", e)
	}

	if e := entries[2]; !e.Failed() || e.Result != "" {
		t.Errorf("failed entry = %+v", e)
	}
}

func TestRecorder_JournalFailureIgnored(t *testing.T) {
	store := journal.NewMemory()
	store.Close()

	rec := &Recorder{
		Oracle: expand.OracleFunc(func(context.Context, expand.Invocation) (lang.Stream, error) {
			return lang.Stream{lang.Literal("1")}, nil
		}),
		Store: store,
	}

	got, err := rec.Resolve(t.Context(), invocation(t, `x!()`))
	if err != nil || got.String() != "1" {
		t.Errorf("Resolve = %q, %v", got.String(), err)
	}
}
