package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
)

// Expand resolves every invocation in the token source, innermost first, and
// prints the result.
type Expand struct {
	Engine `embed:""`

	Once   bool   `help:"Run a single top-level pass instead of expanding to a fixpoint"`
	Format string `default:"native" enum:"native,json,yaml" help:"Output format"     short:"f"`
	Indent int    `default:"2"                              help:"Indent width for JSON and YAML output" short:"i"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	text, name, err := readSource(ctx, e.Source)
	if err != nil {
		return err
	}

	tokens, err := lang.Parse(ctx, text,
		lang.WithSourceName(name),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	s, err := e.build(ctx, text)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var out lang.Stream

	if e.Once {
		var changed bool

		out, changed, err = s.expander.Pass(ctx, tokens)

		log.DebugContext(ctx, "single pass complete", slog.Bool("changed", changed))
	} else {
		out, err = s.expander.Expand(ctx, tokens)
	}

	if err != nil {
		return err
	}

	log.DebugContext(ctx, "expansion complete",
		slog.String("source", name),
		slog.String("mode", s.expander.Mode().String()),
		slog.Int("tokens_in", len(tokens)),
		slog.Int("tokens_out", len(out)))

	return writeStream(ctx, out, e.Format, e.Indent)
}
