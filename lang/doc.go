// Package lang defines the token tree that inox rewrites, along with a lexer
// that builds it from text and formatters that render it back out.
//
// A token is one of four kinds:
//
//   - Ident: a name such as concat or my_macro
//   - Punct: a single punctuation character; "::" is two Punct tokens
//   - Literal: a string, character, or numeric literal kept as raw text
//   - Group: a delimited sequence of tokens: ( ), [ ], or { }
//
// Streams are ordered slices of tokens. A Group owns its inner Stream.
//
// # Syntax
//
// The lexer skips whitespace along with // line comments and /* */ block
// comments. String literals may be quoted with ", ', or ` and keep their
// quotes in [Token.Text]. Numbers begin with a digit and extend over
// letters, digits, underscores, and a '.' that is followed by a digit.
// Every other printable character is a Punct token.
//
// # Example
//
//	stream, err := lang.Parse(ctx, `concat!("a" stringify!(b c))`)
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(stream) // concat!("a" stringify!(b c))
package lang
