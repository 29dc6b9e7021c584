package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Rules
		want  []string
	}{
		{
			name: "all",
			want: []string{
				"greet\tGreets someone.",
				"wrap\tWraps its argument in brackets.",
				"concat\t(builtin)",
				"count\t(builtin)",
				"env\t(builtin)",
				"stringify\t(builtin)",
			},
		},
		{
			name: "without builtins",
			cmd:  Rules{RuleSource: RuleSource{NoBuiltins: true}},
			want: []string{
				"greet\tGreets someone.",
				"wrap\tWraps its argument in brackets.",
			},
		},
		{
			name: "fuzzy query",
			cmd:  Rules{Query: "grt"},
			want: []string{"greet\tGreets someone."},
		},
		{
			name: "verbose",
			cmd:  Rules{Query: "wrap", Verbose: true},
			want: []string{
				"wrap\tWraps its argument in brackets.",
				"  ($x) => [$x]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.cmd
			r.RuleSource.Rules = engine(t).Rules

			var out bytes.Buffer
			if err := r.Run(WithOutput(t.Context(), &out)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRules_NoMatch(t *testing.T) {
	r := Rules{RuleSource: engine(t).RuleSource, Query: "zzz"}

	var out bytes.Buffer

	err := r.Run(WithOutput(t.Context(), &out))
	if !errors.Is(err, ErrNoDefinition) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoDefinition)
	}

	if out.Len() != 0 {
		t.Errorf("Run() wrote %q, want nothing", out.String())
	}
}

func TestFilterNames(t *testing.T) {
	names := []string{"greet", "wrap", "concat"}

	if got := filterNames("", names); !cmp.Equal(got, names) {
		t.Errorf("filterNames(\"\") = %q, want %q", got, names)
	}

	if got := filterNames("cat", names); !cmp.Equal(got, []string{"concat"}) {
		t.Errorf("filterNames(cat) = %q, want [concat]", got)
	}
}
