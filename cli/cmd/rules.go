package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/inox/log"
	"github.com/ardnew/inox/oracle"
)

// Rules lists the definitions available to expand, optionally filtered by a
// fuzzy query on their names.
type Rules struct {
	RuleSource `embed:""`

	Verbose bool `help:"Print every rule of each definition" short:"v"`

	Query string `arg:"" help:"Fuzzy filter on definition names" optional:""`
}

// Run executes the rules command.
func (r *Rules) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reg, builtins, err := r.load(ctx, log.Default())
	if err != nil {
		return err
	}

	all := names(reg, builtins)
	selected := filterNames(r.Query, all)

	log.DebugContext(ctx, "rules listed",
		slog.String("query", r.Query),
		slog.Int("total", len(all)),
		slog.Int("selected", len(selected)))

	if r.Query != "" && len(selected) == 0 {
		return ErrNoDefinition.With(slog.String("query", r.Query))
	}

	w := outputFrom(ctx)

	for _, name := range selected {
		def, ok := reg.Lookup(name)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s\t(builtin)\n", name); err != nil {
				return ErrWriteOutput.Wrap(err)
			}

			continue
		}

		if err := writeDefinition(w, def, r.Verbose); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// filterNames returns the names matching query, best match first. An empty
// query selects every name in its original order.
func filterNames(query string, names []string) []string {
	if query == "" {
		return names
	}

	matches := fuzzy.Find(query, names)
	out := make([]string, len(matches))

	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}

func writeDefinition(w io.Writer, def oracle.Definition, verbose bool) error {
	var b strings.Builder

	b.WriteString(def.Name)

	if def.Doc != "" {
		b.WriteString("\t")
		b.WriteString(strings.TrimSpace(def.Doc))
	}

	if def.LiteralOnly {
		b.WriteString("\t[literal only]")
	}

	b.WriteString("\n")

	if verbose {
		for _, rule := range def.Rules {
			fmt.Fprintf(&b, "  (%s) => %s", rule.Match, rule.Expand)

			if rule.Delim != "" {
				fmt.Fprintf(&b, "  delim=%s", rule.Delim)
			}

			if rule.When != "" {
				fmt.Fprintf(&b, "  when %s", rule.When)
			}

			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}
