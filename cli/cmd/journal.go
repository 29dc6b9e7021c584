package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/inox/journal"
	"github.com/ardnew/inox/lang"
	"github.com/ardnew/inox/log"
	"github.com/ardnew/inox/pkg"
)

// Journal prints the oracle calls recorded by expand --journal.
type Journal struct {
	Sessions bool   `help:"List sessions instead of entries"`
	Session  string `help:"Only show entries of this session" short:"S"`
	Last     bool   `help:"Only show entries of the most recent session"`
	Failed   bool   `help:"Only show rejected invocations"`
	Limit    int    `default:"0" help:"Show at most this many of the most recent entries, counted after --failed (0 shows all)" short:"n"`
	YAML     bool   `help:"Print entries as YAML"`

	File string `arg:"" help:"SQLite journal file" type:"existingfile"`
}

// journalRecord is the YAML form of a [journal.Entry].
type journalRecord struct {
	Time    string `yaml:"time"`
	Session string `yaml:"session"`
	Name    string `yaml:"name"`
	Delim   string `yaml:"delim"`
	Args    string `yaml:"args"`
	Result  string `yaml:"result,omitempty"`
	Err     string `yaml:"error,omitempty"`
	Digest  string `yaml:"digest"`
	Seq     int64  `yaml:"seq"`
	Depth   int    `yaml:"depth"`
}

// Run executes the journal command.
func (j *Journal) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if j.File == "" {
		return ErrNoJournalPath
	}

	store, err := journal.OpenSQLite(ctx, j.File)
	if err != nil {
		return pkg.ErrJournal.Wrap(err)
	}

	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = pkg.ErrJournal.Wrap(cerr)
		}
	}()

	return j.print(ctx, store, outputFrom(ctx))
}

func (j *Journal) print(ctx context.Context, store journal.Store, w io.Writer) error {
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return pkg.ErrJournal.Wrap(err)
	}

	if j.Sessions {
		for _, s := range sessions {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		return nil
	}

	session := j.Session
	if j.Last && len(sessions) > 0 {
		session = sessions[len(sessions)-1]
	}

	// The failure filter runs before the limit, so every entry is fetched.
	limit := j.Limit
	if j.Failed {
		limit = 0
	}

	entries, err := store.Entries(ctx, session, limit)
	if err != nil {
		return pkg.ErrJournal.Wrap(err)
	}

	if j.Failed {
		kept := entries[:0]

		for _, e := range entries {
			if e.Failed() {
				kept = append(kept, e)
			}
		}

		entries = kept

		if j.Limit > 0 && len(entries) > j.Limit {
			entries = entries[len(entries)-j.Limit:]
		}
	}

	log.DebugContext(ctx, "journal read",
		slog.String("session", session),
		slog.Int("sessions", len(sessions)),
		slog.Int("entries", len(entries)))

	if j.YAML {
		records := make([]journalRecord, len(entries))
		for i, e := range entries {
			records[i] = journalRecord{
				Time:    e.Time.UTC().Format(time.RFC3339Nano),
				Session: e.Session,
				Name:    e.Name,
				Delim:   e.Delim,
				Args:    e.Args,
				Result:  e.Result,
				Err:     e.Err,
				Digest:  e.Digest,
				Seq:     e.Seq,
				Depth:   e.Depth,
			}
		}

		data, err := yaml.MarshalContext(ctx, records)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		if _, err := w.Write(data); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	for _, e := range entries {
		if _, err := io.WriteString(w, formatEntry(e)+"\n"); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// formatEntry renders e on one line:
//
//	seq  depth  name!(args) => result
//	seq  depth  name!(args) !! error
func formatEntry(e journal.Entry) string {
	d, ok := lang.ParseDelimiter(e.Delim)
	if !ok {
		d = lang.Paren
	}

	call := e.Name + "!" + string(d.Open()) + e.Args + string(d.Close())

	if e.Failed() {
		return fmt.Sprintf("%d\t%d\t%s !! %s", e.Seq, e.Depth, call, e.Err)
	}

	return fmt.Sprintf("%d\t%d\t%s => %s", e.Seq, e.Depth, call, e.Result)
}
