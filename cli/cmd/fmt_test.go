package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/pkg"
)

func TestFmt(t *testing.T) {
	dir := writeFiles(t, map[string]string{"in.txt": `a + greet!( "bob" )`})
	src := []string{filepath.Join(dir, "in.txt")}

	tests := []struct {
		name string
		want []string
	}{
		{
			name: "native",
			want: []string{`a+greet!("bob")`},
		},
		{
			name: "json",
			want: []string{`"kind": "group"`, `"delim": "paren"`, `"text": "greet"`},
		},
		{
			name: "yaml",
			want: []string{"kind: group", "delim: paren", "text: greet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithOutput(t.Context(), &out)

			var err error

			switch tt.name {
			case "native":
				err = (&Native{Source: src}).Run(ctx)
			case "json":
				err = (&JSON{Source: src, Indent: 2}).Run(ctx)
			case "yaml":
				err = (&YAML{Source: src, Indent: 2}).Run(ctx)
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestFmt_Errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.txt": `f!(x]`})

	err := (&Native{Source: []string{filepath.Join(dir, "bad.txt")}}).Run(t.Context())
	if !errors.Is(err, lang.ErrParse) {
		t.Errorf("Run() error = %v, want %v", err, lang.ErrParse)
	}

	if !errors.Is(err, lang.ErrMismatchedCloser) {
		t.Errorf("Run() error = %v, want %v", err, lang.ErrMismatchedCloser)
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name  string
		short bool
		want  string
	}{
		{"full", false, pkg.Name + " " + pkg.Version() + "\n"},
		{"short", true, pkg.Version() + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := (&Version{Short: tt.short}).Run(WithOutput(t.Context(), &out)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("Run() output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
