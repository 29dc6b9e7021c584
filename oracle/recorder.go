package oracle

import (
	"context"
	"log/slog"
	"time"

	"github.com/ardnew/inox/expand"
	"github.com/ardnew/inox/journal"
	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
)

// Recorder decorates an oracle, appending one [journal.Entry] per call.
// A journal write failure is logged and does not affect the result.
type Recorder struct {
	Oracle  expand.Oracle
	Store   journal.Store
	Logger  log.Logger
	Now     func() time.Time
	Session string
}

// Resolve implements [expand.Oracle].
func (r *Recorder) Resolve(
	ctx context.Context,
	inv expand.Invocation,
) (lang.Stream, error) {
	out, err := r.Oracle.Resolve(ctx, inv)

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	entry := journal.Entry{
		Time:    now(),
		Session: r.Session,
		Name:    inv.Name(),
		Delim:   inv.Delim.String(),
		Args:    inv.Args.String(),
		Digest:  journal.Digest(inv.String()),
		Depth:   inv.Depth,
	}

	if err != nil {
		entry.Err = err.Error()
	} else {
		entry.Result = out.String()
	}

	if _, jerr := r.Store.Append(ctx, entry); jerr != nil {
		r.Logger.WarnContext(ctx, "journal write failed",
			slog.String("invocation", entry.Name),
			slog.String("cause", jerr.Error()))
	}

	return out, err
}
