package oracle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/lang"
)

// Chain consults each oracle in order. An oracle that fails with
// [ErrUnknownName] passes the invocation to the next; any other result ends
// the search.
type Chain []expand.Oracle

// Resolve implements [expand.Oracle].
func (c Chain) Resolve(
	ctx context.Context,
	inv expand.Invocation,
) (lang.Stream, error) {
	for _, o := range c {
		out, err := o.Resolve(ctx, inv)
		if errors.Is(err, ErrUnknownName) {
			continue
		}

		return out, err
	}

	return nil, ErrUnknownName.With(slog.String("name", inv.Name()))
}
