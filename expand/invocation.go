package expand

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/inox/lang"
)

// Invocation is a self-contained invocation reassembled from the stream,
// with every invocation inside its arguments already resolved.
type Invocation struct {
	// Path is the possibly-qualified name, in source order.
	Path lang.Stream
	// Args holds the contents of the argument group.
	Args lang.Stream
	// Marker is the token separating the name from its arguments.
	Marker lang.Token
	// Delim is the delimiter of the argument group as written.
	Delim lang.Delimiter
	// Depth is the group nesting depth the invocation was found at.
	Depth int
}

// Name returns the path as written, for example "a::b::c".
func (inv Invocation) Name() string {
	var sb strings.Builder
	for _, t := range inv.Path {
		sb.WriteString(t.Text)
	}

	return sb.String()
}

// Segments returns the identifiers of the path.
func (inv Invocation) Segments() []string {
	segs := make([]string, 0, (len(inv.Path)+2)/3)

	for _, t := range inv.Path {
		if t.IsIdent() {
			segs = append(segs, t.Text)
		}
	}

	return segs
}

// Tokens returns the invocation as a token stream: path, marker, and the
// argument group with its original delimiter.
func (inv Invocation) Tokens() lang.Stream {
	s := make(lang.Stream, 0, len(inv.Path)+2)
	s = append(s, inv.Path...)
	s = append(s, inv.Marker)

	return append(s, lang.Group(inv.Delim, inv.Args...))
}

// String renders the invocation in native syntax.
func (inv Invocation) String() string { return inv.Tokens().String() }

// LogValue implements slog.LogValuer.
func (inv Invocation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", inv.Name()),
		slog.String("delim", inv.Delim.String()),
		slog.Int("argc", len(inv.Args)),
		slog.Int("depth", inv.Depth),
	)
}

// Oracle resolves a single invocation into replacement tokens.
//
// The returned stream replaces the invocation in the output. An error means
// the invocation could not be resolved; how that is handled depends on the
// [Mode] of the [Expander].
type Oracle interface {
	Resolve(ctx context.Context, inv Invocation) (lang.Stream, error)
}

// OracleFunc adapts an ordinary function to the [Oracle] interface.
type OracleFunc func(ctx context.Context, inv Invocation) (lang.Stream, error)

// Resolve calls f(ctx, inv).
func (f OracleFunc) Resolve(
	ctx context.Context,
	inv Invocation,
) (lang.Stream, error) {
	return f(ctx, inv)
}
