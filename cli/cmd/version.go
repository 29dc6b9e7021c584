package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/inox/pkg"
)

// Version prints the program name and version.
type Version struct {
	Short bool `help:"Print only the version number"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	w := outputFrom(ctx)

	var err error
	if v.Short {
		_, err = fmt.Fprintln(w, pkg.Version())
	} else {
		_, err = fmt.Fprintf(w, "%s %s\n", pkg.Name, pkg.Version())
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
