package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignorePos compares token trees structurally, as [Stream.Equal] does.
var ignorePos = cmp.Options{
	cmpopts.IgnoreFields(Token{}, "Pos"),
	cmpopts.EquateEmpty(),
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Stream
	}{
		{
			name:  "empty",
			input: "",
			want:  Stream{},
		},
		{
			name:  "comments only",
			input: "// line\n/* block /* nested */ */",
			want:  Stream{},
		},
		{
			name:  "invocation",
			input: `m!("a" "q")`,
			want: Stream{
				Ident("m"), Punct('!'),
				Group(Paren, Literal(`"a"`), Literal(`"q"`)),
			},
		},
		{
			name:  "qualified path",
			input: "a::b!{}",
			want: Stream{
				Ident("a"), Punct(':'), Punct(':'), Ident("b"), Punct('!'),
				Group(Brace),
			},
		},
		{
			name:  "nested groups",
			input: "[x (y {z})]",
			want: Stream{
				Group(Bracket,
					Ident("x"),
					Group(Paren, Ident("y"), Group(Brace, Ident("z"))),
				),
			},
		},
		{
			name:  "numbers",
			input: "42 2.5e3 0x1f 1_000 x.0",
			want: Stream{
				Literal("42"), Literal("2.5e3"), Literal("0x1f"), Literal("1_000"),
				Ident("x"), Punct('.'), Literal("0"),
			},
		},
		{
			name:  "string kinds",
			input: "\"a\\\"b\" 'c' `raw\\`",
			want: Stream{
				Literal(`"a\"b"`), Literal(`'c'`), Literal("`raw\\`"),
			},
		},
		{
			name:  "punctuation",
			input: "$x* -> #;",
			want: Stream{
				Punct('$'), Ident("x"), Punct('*'), Punct('-'), Punct('>'),
				Punct('#'), Punct(';'),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			if diff := cmp.Diff(tt.want, got, ignorePos); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_Positions(t *testing.T) {
	got, err := Parse(t.Context(), "a\n  b!(c)")
	if err != nil {
		t.Fatal(err)
	}

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 4, Line: 2, Column: 3},
		{Offset: 5, Line: 2, Column: 4},
		{Offset: 6, Line: 2, Column: 5},
	}

	for i, tok := range got {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%s) at %+v, want %+v", i, tok, tok.Pos, want[i])
		}
	}

	if inner := got[3].Inner[0].Pos; inner.Column != 6 {
		t.Errorf("inner token column = %d, want 6", inner.Column)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated string", `m!("abc)`, ErrUnterminatedString},
		{"unclosed group", "m!(a [b]", ErrUnclosedGroup},
		{"unexpected closer", "a)", ErrUnexpectedCloser},
		{"mismatched closer", "(a]", ErrMismatchedCloser},
		{"unterminated comment", "a /* b", ErrUnterminatedComment},
		{"control character", "a \x01", ErrInvalidCharacter},
		{"invalid utf-8", "a \xff b", ErrInvalidCharacter},
		{"invalid utf-8 after identifier", "ab\xc3", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(t.Context(), tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.input)
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v is not ErrParse", err)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("error %v is not %v", err, tt.want)
			}
		})
	}
}

func TestParse_SourceName(t *testing.T) {
	_, err := Parse(t.Context(), "(", WithSourceName("input.rs"))

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *Error", err)
	}

	found := false

	for _, a := range perr.Attrs() {
		if a.Key == "source" && a.Value.String() == "input.rs" {
			found = true
		}
	}

	if !found {
		t.Errorf("source attribute missing from %v", perr.Attrs())
	}
}

func TestParseReader(t *testing.T) {
	got, err := ParseReader(t.Context(), strings.NewReader(`outer!(inner!(1))`))
	if err != nil {
		t.Fatal(err)
	}

	if s := got.String(); s != "outer!(inner!(1))" {
		t.Errorf("String() = %q", s)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		`OUTER!("a" INNER!("b" "q") "z")`,
		`a::b::c![1, 2; 3]`,
		`f(x) + g[y] - {z}`,
		`$a / / $b`,
		`x.0 'c' ::leading`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(t.Context(), input)
			if err != nil {
				t.Fatal(err)
			}

			second, err := Parse(t.Context(), first.String())
			if err != nil {
				t.Fatalf("reparse of %q: %v", first.String(), err)
			}

			if diff := cmp.Diff(first, second, ignorePos); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}
