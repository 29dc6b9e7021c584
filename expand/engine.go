package expand

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
)

// Expander resolves invocations in a token stream inside-out.
// An Expander holds no per-call state and may be reused.
type Expander struct {
	oracle    Oracle
	logger    log.Logger
	mode      Mode
	maxPasses int
	maxDepth  int
	marker    rune
}

// New returns an [Expander] that resolves invocations with oracle.
// The defaults are [Strict] mode, [DefaultMaxPasses], [DefaultMaxDepth], and
// [DefaultMarker].
func New(oracle Oracle, opts ...Option) *Expander {
	e := &Expander{
		oracle:    oracle,
		mode:      Strict,
		maxPasses: DefaultMaxPasses,
		maxDepth:  DefaultMaxDepth,
		marker:    DefaultMarker,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Mode returns the oracle failure mode.
func (e *Expander) Mode() Mode { return e.mode }

// Marker returns the invocation marker character.
func (e *Expander) Marker() rune { return e.marker }

// ValidMarker reports whether r can serve as an invocation marker. A marker
// must be a single punctuation character that the lexer produces as a Punct
// token and that cannot be part of a qualified path.
func ValidMarker(r rune) bool {
	switch {
	case r == ':' || r == '_' || r == '"' || r == '\'' || r == '`':
		return false
	case strings.ContainsRune("()[]{}", r):
		return false
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
		return false
	default:
		return unicode.IsPrint(r)
	}
}

// Expand runs passes over tokens until one resolves nothing and returns the
// result. The input stream is not modified.
//
// It fails with [ErrPassLimit] if the loop does not reach a fixpoint within
// the configured number of passes, and with [ErrDepthLimit] if invocation
// arguments nest too deeply. See [Expander.Pass] for the other failures.
func (e *Expander) Expand(ctx context.Context, tokens lang.Stream) (lang.Stream, error) {
	return e.expand(ctx, tokens, 0)
}

// Pass performs a single left-to-right pass over tokens at the top level.
// It reports whether any invocation was resolved.
//
// Arguments of each invocation found are expanded to a fixpoint before the
// invocation itself is resolved. A marker not followed by a group fails with
// [ErrMarkerWithoutGroup]; a marker with no name before it fails with
// [ErrMissingPath]. In [Strict] mode an oracle failure is returned wrapped in
// [ErrOracle].
func (e *Expander) Pass(ctx context.Context, tokens lang.Stream) (lang.Stream, bool, error) {
	return e.pass(ctx, tokens, 0)
}

func (e *Expander) expand(
	ctx context.Context,
	tokens lang.Stream,
	depth int,
) (lang.Stream, error) {
	if depth > e.maxDepth {
		return nil, ErrDepthLimit.With(
			slog.Int("depth", depth),
			slog.Int("max_depth", e.maxDepth),
		)
	}

	for n := range e.maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, changed, err := e.pass(ctx, tokens, depth)
		if err != nil {
			return nil, err
		}

		e.logger.TraceContext(ctx, "pass complete",
			slog.Int("depth", depth),
			slog.Int("pass", n+1),
			slog.Bool("changed", changed),
			slog.Int("tokens", len(out)))

		if !changed {
			return out, nil
		}

		tokens = out
	}

	return nil, ErrPassLimit.With(
		slog.Int("depth", depth),
		slog.Int("max_passes", e.maxPasses),
		slog.String("last", truncate(tokens.String(), 120)),
	)
}

func (e *Expander) pass(
	ctx context.Context,
	tokens lang.Stream,
	depth int,
) (lang.Stream, bool, error) {
	acc := NewAccumulator(len(tokens))
	changed := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !tok.IsPunct(e.marker) {
			acc.Push(tok.Clone())

			continue
		}

		if i+1 >= len(tokens) || !tokens[i+1].IsGroup() {
			found := "end of input"
			if i+1 < len(tokens) {
				found = tokens[i+1].String()
			}

			return nil, false, ErrMarkerWithoutGroup.With(
				slog.String("found", found),
				slog.String("position", tok.Pos.String()),
			)
		}

		i++
		group := tokens[i]

		args, err := e.expand(ctx, group.Inner, depth+1)
		if err != nil {
			return nil, false, err
		}

		path, err := ExtractPath(acc)
		if err != nil {
			return nil, false, err
		}

		inv := Invocation{
			Path:   path,
			Args:   args,
			Marker: tok,
			Delim:  group.Delim,
			Depth:  depth,
		}

		result, err := e.oracle.Resolve(ctx, inv)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, false, ctxErr
			}

			if e.mode == Strict {
				return nil, false, ErrOracle.Wrap(err).With(
					slog.String("invocation", inv.Name()),
					slog.String("position", path[0].Pos.String()),
				)
			}

			e.logger.DebugContext(ctx, "invocation left unexpanded",
				slog.Any("invocation", inv),
				slog.String("cause", err.Error()))

			acc.Push(inv.Tokens()...)

			continue
		}

		e.logger.TraceContext(ctx, "invocation resolved",
			slog.Any("invocation", inv),
			slog.Int("result_tokens", len(result)))

		acc.Push(result.Clone()...)

		changed = true
	}

	return acc.Stream(), changed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
