package lang

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a [Token].
type Kind int

const (
	KindIdent   Kind = iota // ident
	KindPunct               // punct
	KindLiteral             // literal
	KindGroup               // group
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindPunct:
		return "punct"
	case KindLiteral:
		return "literal"
	case KindGroup:
		return "group"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Delimiter identifies the bracket pair enclosing a group.
type Delimiter int

const (
	DelimNone Delimiter = iota // none
	Paren                      // paren
	Bracket                    // bracket
	Brace                      // brace
)

// Delimiters lists the valid group delimiters.
var Delimiters = []Delimiter{Paren, Bracket, Brace}

// String returns the lowercase name of the delimiter.
func (d Delimiter) String() string {
	switch d {
	case Paren:
		return "paren"
	case Bracket:
		return "bracket"
	case Brace:
		return "brace"
	default:
		return "none"
	}
}

// Open returns the opening character, or 0 for [DelimNone].
func (d Delimiter) Open() rune {
	switch d {
	case Paren:
		return '('
	case Bracket:
		return '['
	case Brace:
		return '{'
	default:
		return 0
	}
}

// Close returns the closing character, or 0 for [DelimNone].
func (d Delimiter) Close() rune {
	switch d {
	case Paren:
		return ')'
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return 0
	}
}

// ParseDelimiter returns the delimiter named by s. It accepts the names
// returned by [Delimiter.String] as well as the bracket characters.
func ParseDelimiter(s string) (Delimiter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paren", "(", ")", "()":
		return Paren, true
	case "bracket", "[", "]", "[]":
		return Bracket, true
	case "brace", "{", "}", "{}":
		return Brace, true
	default:
		return DelimNone, false
	}
}

func openDelimiter(r rune) Delimiter {
	switch r {
	case '(':
		return Paren
	case '[':
		return Bracket
	case '{':
		return Brace
	default:
		return DelimNone
	}
}

func closeDelimiter(r rune) Delimiter {
	switch r {
	case ')':
		return Paren
	case ']':
		return Bracket
	case '}':
		return Brace
	default:
		return DelimNone
	}
}

// Position is a location in source text. Line and Column are 1-based.
// The zero value means the token was not read from source.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether p refers to a source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line:column", or "-" for an invalid position.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}

	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a single element of a token tree.
//
// Text holds the identifier, punctuation character, or raw literal text.
// Delim and Inner are only meaningful for groups. Pos never participates in
// token equality.
type Token struct {
	Inner Stream
	Text  string
	Pos   Position
	Kind  Kind
	Delim Delimiter
}

// Ident returns an identifier token.
func Ident(name string) Token {
	return Token{Kind: KindIdent, Text: name}
}

// Punct returns a punctuation token holding the single character r.
func Punct(r rune) Token {
	return Token{Kind: KindPunct, Text: string(r)}
}

// Literal returns a literal token with the given raw text.
func Literal(text string) Token {
	return Token{Kind: KindLiteral, Text: text}
}

// Quoted returns a string literal token for the unquoted value s.
func Quoted(s string) Token {
	return Literal(strconv.Quote(s))
}

// Group returns a group token with delimiter d enclosing inner.
func Group(d Delimiter, inner ...Token) Token {
	return Token{Kind: KindGroup, Delim: d, Inner: Stream(inner)}
}

// IsIdent reports whether t is an identifier.
func (t Token) IsIdent() bool { return t.Kind == KindIdent }

// IsLiteral reports whether t is a literal.
func (t Token) IsLiteral() bool { return t.Kind == KindLiteral }

// IsGroup reports whether t is a group.
func (t Token) IsGroup() bool { return t.Kind == KindGroup }

// IsPunct reports whether t is the punctuation character r.
func (t Token) IsPunct(r rune) bool {
	return t.Kind == KindPunct && t.Text == string(r)
}

// Unquote returns the value of a string or character literal.
// ok is false if t is not a quoted literal.
func (t Token) Unquote() (string, bool) {
	if t.Kind != KindLiteral || len(t.Text) < 2 {
		return "", false
	}

	switch t.Text[0] {
	case '"', '`':
		s, err := strconv.Unquote(t.Text)
		if err != nil {
			return "", false
		}

		return s, true

	case '\'':
		body := t.Text[1 : len(t.Text)-1]

		s, err := strconv.Unquote(`"` + strings.ReplaceAll(body, `"`, `\"`) + `"`)
		if err != nil {
			return "", false
		}

		return s, true
	}

	return "", false
}

// Equal reports whether t and u are the same token, ignoring positions.
func (t Token) Equal(u Token) bool {
	if t.Kind != u.Kind {
		return false
	}

	if t.Kind == KindGroup {
		return t.Delim == u.Delim && t.Inner.Equal(u.Inner)
	}

	return t.Text == u.Text
}

// Clone returns a deep copy of t.
func (t Token) Clone() Token {
	if t.Kind == KindGroup {
		t.Inner = t.Inner.Clone()
	}

	return t
}

// String renders t in native syntax.
func (t Token) String() string {
	var sb strings.Builder

	t.writeTo(&sb)

	return sb.String()
}

func (t Token) writeTo(sb *strings.Builder) {
	if t.Kind != KindGroup {
		sb.WriteString(t.Text)

		return
	}

	if r := t.Delim.Open(); r != 0 {
		sb.WriteRune(r)
	}

	t.Inner.writeTo(sb)

	if r := t.Delim.Close(); r != 0 {
		sb.WriteRune(r)
	}
}

// Stream is an ordered sequence of tokens.
type Stream []Token

// Equal reports whether s and o hold equal tokens in the same order.
func (s Stream) Equal(o Stream) bool {
	if len(s) != len(o) {
		return false
	}

	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of s.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}

	c := make(Stream, len(s))
	for i, t := range s {
		c[i] = t.Clone()
	}

	return c
}

// String renders s in compact native syntax. Tokens are separated by a
// single space only where lexing the output requires it, or after ',' and
// ';'.
func (s Stream) String() string {
	var sb strings.Builder

	s.writeTo(&sb)

	return sb.String()
}

func (s Stream) writeTo(sb *strings.Builder) {
	for i, t := range s {
		if i > 0 && spaced(s[i-1], t) {
			sb.WriteByte(' ')
		}

		t.writeTo(sb)
	}
}

// spaced reports whether a space separates prev and next.
func spaced(prev, next Token) bool {
	if prev.Kind == KindPunct {
		return prev.Text == "," || prev.Text == ";" ||
			// "/" followed by "/" or "*" would lex as a comment.
			(prev.Text == "/" && (next.IsPunct('/') || next.IsPunct('*')))
	}

	return next.Kind != KindPunct
}
