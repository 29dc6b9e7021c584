package repl

import (
	"context"
	"log/slog"

	"github.com/ardnew/inox/lang"
)

// Expander is the expansion engine driven by the REPL.
// [*expand.Expander] satisfies it.
type Expander interface {
	Expand(ctx context.Context, tokens lang.Stream) (lang.Stream, error)
	Pass(ctx context.Context, tokens lang.Stream) (lang.Stream, bool, error)
	Marker() rune
}

// maxSteps bounds the step command independently of the expander's own
// pass limit, which applies only to Expand.
const maxSteps = 64

// evaluate parses input and expands it to a fixpoint.
func evaluate(ctx context.Context, ex Expander, input string) (lang.Stream, error) {
	tokens, err := lang.Parse(ctx, input, lang.WithSourceName("repl"))
	if err != nil {
		return nil, err
	}

	return ex.Expand(ctx, tokens)
}

// steps parses input and returns the stream after each top-level pass that
// changed something. Input still changing after [maxSteps] passes returns
// the passes so far with [ErrStepLimit].
func steps(ctx context.Context, ex Expander, input string) ([]lang.Stream, error) {
	tokens, err := lang.Parse(ctx, input, lang.WithSourceName("repl"))
	if err != nil {
		return nil, err
	}

	var out []lang.Stream

	for range maxSteps {
		next, changed, err := ex.Pass(ctx, tokens)
		if err != nil {
			return out, err
		}

		if !changed {
			return out, nil
		}

		out = append(out, next)
		tokens = next
	}

	return out, ErrStepLimit.With(slog.Int("steps", maxSteps))
}
