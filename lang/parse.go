package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/klauspost/readahead"

	"github.com/ardnew/inox/log"
)

// Option configures a call to [Parse] or [ParseReader].
type Option func(*parser)

// WithLogger sets the logger used to trace lexing.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) { p.logger = logger }
}

// WithSourceName names the input in error attributes, for example a file path.
func WithSourceName(name string) Option {
	return func(p *parser) { p.name = name }
}

// ParseReader reads all of r and parses it into a token stream.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Stream, error) {
	// Read-ahead prefetches the next chunk while the previous one is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// Parse lexes s into a token stream. Groups are matched by delimiter; an
// unterminated string, unclosed group, or stray closing delimiter is an
// [ErrParse] carrying the line and column where it occurred.
func Parse(ctx context.Context, s string, opts ...Option) (Stream, error) {
	p := &parser{
		input: []byte(s),
		line:  1,
		col:   1,
	}

	for _, opt := range opts {
		opt(p)
	}

	stream, err := p.parseStream(DelimNone, Position{})
	if err != nil {
		if p.name != "" {
			err = WrapError(err).With(slog.String("source", p.name))
		}

		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("tokens", len(stream)),
		slog.Int("bytes", len(p.input)))

	return stream, nil
}

// parser holds the lexer state.
type parser struct {
	err    error
	input  []byte
	name   string
	pos    int
	line   int
	col    int
	logger log.Logger
}

// parseStream reads tokens until the closer of delim, or EOF when delim is
// [DelimNone]. open is the position of the opening delimiter.
func (p *parser) parseStream(delim Delimiter, open Position) (Stream, error) {
	stream := Stream{}

	for {
		p.skipWhitespaceAndComments()

		if p.err != nil {
			return nil, p.err
		}

		pos := p.position()

		if p.eof() {
			if delim != DelimNone {
				return nil, ErrParse.WithPosition(open).Wrap(
					ErrUnclosedGroup.With(slog.String("expected", string(delim.Close()))),
				)
			}

			return stream, nil
		}

		ch := p.peek()

		switch {
		case p.invalidUTF8():
			return nil, ErrParse.WithPosition(pos).Wrap(
				ErrInvalidCharacter.With(slog.String("found", fmt.Sprintf("%#x", p.input[p.pos]))),
			)

		case closeDelimiter(ch) != DelimNone:
			if delim == DelimNone {
				return nil, ErrParse.WithPosition(pos).Wrap(
					ErrUnexpectedCloser.With(slog.String("found", string(ch))),
				)
			}

			if closeDelimiter(ch) != delim {
				return nil, ErrParse.WithPosition(pos).Wrap(
					ErrMismatchedCloser.With(
						slog.String("expected", string(delim.Close())),
						slog.String("found", string(ch)),
					),
				)
			}

			p.advance()

			return stream, nil

		case openDelimiter(ch) != DelimNone:
			d := openDelimiter(ch)

			p.advance()

			inner, err := p.parseStream(d, pos)
			if err != nil {
				return nil, err
			}

			tok := Group(d, inner...)
			tok.Pos = pos
			stream = append(stream, tok)

		case ch == '"' || ch == '\'' || ch == '`':
			text, err := p.scanString(ch)
			if err != nil {
				return nil, err
			}

			stream = append(stream, Token{Kind: KindLiteral, Text: text, Pos: pos})

		case isDigit(ch):
			stream = append(stream, Token{
				Kind: KindLiteral, Text: p.scanNumber(), Pos: pos,
			})

		case isIdentifierStart(ch):
			stream = append(stream, Token{
				Kind: KindIdent, Text: p.scanIdentifier(), Pos: pos,
			})

		case unicode.IsPrint(ch):
			p.advance()
			stream = append(stream, Token{Kind: KindPunct, Text: string(ch), Pos: pos})

		default:
			return nil, ErrParse.WithPosition(pos).Wrap(
				ErrInvalidCharacter.With(slog.String("found", string(ch))),
			)
		}
	}
}

// scanString scans a quoted literal and returns it with its quotes.
func (p *parser) scanString(quote rune) (string, error) {
	start := p.pos
	pos := p.position()

	p.advance() // skip opening quote

	for !p.eof() {
		ch := p.peek()

		// Raw strings have no escapes.
		if ch == '\\' && quote != '`' {
			p.advance()

			if !p.eof() {
				p.advance()
			}

			continue
		}

		p.advance()

		if ch == quote {
			return string(p.input[start:p.pos]), nil
		}
	}

	return "", ErrParse.WithPosition(pos).Wrap(
		ErrUnterminatedString.With(slog.String("quote", string(quote))),
	)
}

// scanNumber scans a numeric literal such as 42, 0x1f, 1_000, or 2.5e3.
func (p *parser) scanNumber() string {
	start := p.pos

	for !p.eof() {
		ch := p.peek()

		switch {
		case isIdentifierContinue(ch):
			p.advance()

		case ch == '.' && p.pos+1 < len(p.input) && isDigit(rune(p.input[p.pos+1])):
			p.advance()

		default:
			return string(p.input[start:p.pos])
		}
	}

	return string(p.input[start:p.pos])
}

func (p *parser) scanIdentifier() string {
	start := p.pos

	p.advance()

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos])
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

// invalidUTF8 reports whether the input at the cursor is not a valid UTF-8
// encoding.
func (p *parser) invalidUTF8() bool {
	if p.eof() {
		return false
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	return r == utf8.RuneError && size == 1
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

func (p *parser) skipWhitespaceAndComments() {
	for !p.eof() {
		switch {
		case unicode.IsSpace(p.peek()):
			p.advance()

		case p.peekN(2) == "//":
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}

		case p.peekN(2) == "/*":
			if !p.skipBlockComment() {
				return
			}

		default:
			return
		}
	}
}

// skipBlockComment skips a /* */ comment. Block comments nest.
// It records an error and returns false if the comment never closes.
func (p *parser) skipBlockComment() bool {
	pos := p.position()
	depth := 0

	for !p.eof() {
		switch p.peekN(2) {
		case "/*":
			depth++

			p.advance()
			p.advance()

		case "*/":
			depth--

			p.advance()
			p.advance()

			if depth == 0 {
				return true
			}

		default:
			p.advance()
		}
	}

	p.err = ErrParse.WithPosition(pos).Wrap(ErrUnterminatedComment)

	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentifierStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentifierContinue(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
