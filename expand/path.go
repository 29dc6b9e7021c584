package expand

import (
	"log/slog"
	"slices"

	"github.com/ardnew/inox/lang"
)

// ExtractPath removes the invocation name that ends at the top of acc and
// returns it in source order.
//
// The top token must be an identifier. While the two tokens beneath it are
// ':' ':' and the token beneath those is another identifier, the qualifier
// and identifier are taken too, so "a::b::c" yields all five tokens. A "::"
// with no identifier before it stays in acc.
func ExtractPath(acc *Accumulator) (lang.Stream, error) {
	top, ok := acc.Peek(0)
	if !ok {
		return nil, ErrMissingPath.With(slog.String("found", "start of input"))
	}

	if !top.IsIdent() {
		return nil, ErrMissingPath.With(
			slog.String("found", top.String()),
			slog.String("position", top.Pos.String()),
		)
	}

	acc.Pop()

	// Built top-down, reversed before returning.
	path := lang.Stream{top}

	for {
		second, ok1 := acc.Peek(0)
		first, ok2 := acc.Peek(1)
		ident, ok3 := acc.Peek(2)

		if !ok1 || !ok2 || !ok3 ||
			!second.IsPunct(':') || !first.IsPunct(':') || !ident.IsIdent() {
			break
		}

		acc.Pop()
		acc.Pop()
		acc.Pop()

		path = append(path, second, first, ident)
	}

	slices.Reverse(path)

	return path, nil
}
