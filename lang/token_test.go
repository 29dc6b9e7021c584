package lang

import "testing"

func TestStream_String(t *testing.T) {
	tests := []struct {
		name   string
		stream Stream
		want   string
	}{
		{"empty", nil, ""},
		{
			"invocation",
			Stream{Ident("m"), Punct('!'), Group(Paren, Literal(`"a"`), Literal(`"q"`))},
			`m!("a" "q")`,
		},
		{
			"path",
			Stream{Ident("a"), Punct(':'), Punct(':'), Ident("b")},
			"a::b",
		},
		{
			"separators",
			Stream{Literal("1"), Punct(','), Literal("2"), Punct(';'), Ident("x")},
			"1, 2; x",
		},
		{
			"delimiters",
			Stream{Group(Bracket, Group(Brace), Group(Paren))},
			"[{} ()]",
		},
		{
			"comment lookalike",
			Stream{Punct('/'), Punct('*'), Punct('/'), Punct('/')},
			"/ */ /",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stream.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToken_Equal_IgnoresPosition(t *testing.T) {
	a := Group(Paren, Ident("x"))
	b := Group(Paren, Ident("x"))
	b.Pos = Position{Offset: 3, Line: 1, Column: 4}
	b.Inner[0].Pos = Position{Offset: 4, Line: 1, Column: 5}

	if !a.Equal(b) {
		t.Error("tokens differing only by position should be equal")
	}

	if a.Equal(Group(Bracket, Ident("x"))) {
		t.Error("groups with different delimiters should differ")
	}

	if Ident("x").Equal(Literal("x")) {
		t.Error("tokens of different kinds should differ")
	}
}

func TestStream_Clone_IsDeep(t *testing.T) {
	orig := Stream{Group(Brace, Ident("a"))}
	dup := orig.Clone()
	dup[0].Inner[0] = Ident("b")

	if orig[0].Inner[0].Text != "a" {
		t.Error("Clone shares group contents with the original")
	}
}

func TestToken_Unquote(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
		ok   bool
	}{
		{Literal(`"a\nb"`), "a\nb", true},
		{Literal("`raw\\n`"), `raw\n`, true},
		{Literal(`'c'`), "c", true},
		{Literal(`'"'`), `"`, true},
		{Literal("42"), "", false},
		{Ident("x"), "", false},
		{Quoted("hi \"there\""), `hi "there"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			got, ok := tt.tok.Unquote()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Unquote() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	for _, d := range Delimiters {
		got, ok := ParseDelimiter(d.String())
		if !ok || got != d {
			t.Errorf("ParseDelimiter(%q) = %v, %v", d.String(), got, ok)
		}

		got, ok = ParseDelimiter(string(d.Open()))
		if !ok || got != d {
			t.Errorf("ParseDelimiter(%q) = %v, %v", string(d.Open()), got, ok)
		}
	}

	if _, ok := ParseDelimiter("angle"); ok {
		t.Error("unknown delimiter accepted")
	}
}
