package cmd

import (
	"context"

	"github.com/ardnew/inox/cli/cmd/repl"
	"github.com/ardnew/inox/log"
)

// Repl expands each line typed at an interactive prompt.
type Repl struct {
	Engine `embed:""`

	NoHistory bool   `help:"Do not persist input history"`
	CacheDir  string `default:"${cache}" help:"Directory holding the history file" hidden:"" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := r.build(ctx, "repl")
	if err != nil {
		return err
	}

	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	dir := r.CacheDir
	if r.NoHistory {
		dir = ""
	}

	return repl.Run(ctx, s.expander, names(s.registry, s.builtins), dir, log.Default())
}
