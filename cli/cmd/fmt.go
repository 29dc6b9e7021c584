package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
)

// Fmt parses the token source and re-renders it in the chosen format
// without expanding anything.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native token syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON token tree."`
	YAML   YAML   `cmd:""                    help:"Format as YAML token tree."`
}

// Native formats input as native token syntax.
type Native struct {
	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	return formatSource(ctx, f.Source, "native", 0)
}

// JSON formats input as a JSON token tree.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	return formatSource(ctx, j.Source, "json", j.Indent)
}

// YAML formats input as a YAML token tree.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 selects flow style" short:"i"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return formatSource(ctx, y.Source, "yaml", y.Indent)
}

func formatSource(
	ctx context.Context,
	paths []string,
	format string,
	indent int,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	text, name, err := readSource(ctx, paths)
	if err != nil {
		return err
	}

	tokens, err := lang.Parse(ctx, text,
		lang.WithSourceName(name),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", format))
	}

	return writeStream(ctx, tokens, format, indent)
}
