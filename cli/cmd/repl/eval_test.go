package repl

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
)

var errUnknown = errors.New("unknown name")

// newExpander returns a strict expander whose oracle knows two names:
// twice!(x) becomes once!(x), once!(x) becomes x, and forever!(x) never
// stops changing.
func newExpander() *expand.Expander {
	return expand.New(expand.OracleFunc(
		func(ctx context.Context, inv expand.Invocation) (lang.Stream, error) {
			switch inv.Name() {
			case "twice":
				return lang.Parse(ctx, "once!("+inv.Args.String()+")")
			case "once":
				return inv.Args, nil
			case "forever":
				return lang.Parse(ctx, "forever!("+inv.Args.String()+")")
			default:
				return nil, errUnknown
			}
		},
	))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"fixpoint", "twice!(x)", "x", nil},
		{"nested", "once!(twice!(a) + b)", "a+b", nil},
		{"plain", "a b", "a b", nil},
		{"unknown", "nope!(1)", "", expand.ErrOracle},
		{"parse error", "once!(x", "", lang.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluate(t.Context(), newExpander(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("evaluate() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("evaluate() error = %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("evaluate() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestSteps(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{"two passes", "twice!(x)", []string{"once!(x)", "x"}, nil},
		{"no invocations", "x", []string{}, nil},
		{"failure keeps earlier passes", "twice!(nope!(1))", []string{}, expand.ErrOracle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passes, err := steps(t.Context(), newExpander(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("steps() error = %v, want %v", err, tt.wantErr)
			}

			got := make([]string, 0, len(passes))
			for _, s := range passes {
				got = append(got, s.String())
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("steps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSteps_Limit(t *testing.T) {
	passes, err := steps(t.Context(), newExpander(), "forever!(x)")
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("steps() error = %v, want %v", err, ErrStepLimit)
	}

	if len(passes) != maxSteps {
		t.Errorf("steps() returned %d passes, want %d", len(passes), maxSteps)
	}

	// A finite expansion is not truncated.
	if _, err := steps(t.Context(), newExpander(), "twice!(x)"); err != nil {
		t.Errorf("steps() error = %v for a finite expansion", err)
	}
}

func TestStepView(t *testing.T) {
	m := newModel(t.Context(), newExpander(), nil, NewHistory(""), log.Make(io.Discard))

	view := stripANSI(m.stepView("twice!(x)"))
	lines := strings.Split(view, "\n")

	if len(lines) != 2 || !strings.HasSuffix(lines[0], "once!(x)") || !strings.HasSuffix(lines[1], "x") {
		t.Errorf("stepView() = %q, want one line per pass", view)
	}

	if got := stripANSI(m.stepView("")); got != "nothing to step" {
		t.Errorf("stepView(\"\") = %q", got)
	}

	if got := stripANSI(m.stepView("plain")); got != "no invocations" {
		t.Errorf("stepView(plain) = %q", got)
	}

	view = stripANSI(m.stepView("forever!(x)"))
	if !strings.Contains(view, ErrStepLimit.Error()) {
		t.Errorf("stepView(forever) does not report truncation:\n%s", view)
	}
}
