// Package journal records the invocations an oracle was asked to resolve.
//
// Each [Entry] captures one oracle call: the invocation as it was submitted,
// the tokens it resolved to or the reason it failed, and when it happened.
// Entries are grouped by session, one session per expansion run.
package journal

import (
	"context"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/inox/lang"
)

// Predefined errors (sentinel values).
var (
	ErrClosed        = lang.NewError("journal is closed")
	ErrSchemaVersion = lang.NewError("unsupported journal schema version")
)

// Entry is a single recorded oracle call.
type Entry struct {
	Time    time.Time
	Session string
	Name    string
	Delim   string
	Args    string
	Result  string
	Err     string
	Digest  string
	Seq     int64
	Depth   int
}

// Failed reports whether the oracle rejected the invocation.
func (e Entry) Failed() bool { return e.Err != "" }

// Digest returns a short stable hash of text, used to group identical
// invocations across sessions.
func Digest(text string) string {
	return strconv.FormatUint(xxh3.HashString(text), 36)
}

// NewSession returns a session identifier derived from the current time and
// the expanded source.
func NewSession(now time.Time, source string) string {
	return now.UTC().Format("20060102T150405") + "-" + Digest(source)
}

// Store persists journal entries. Implementations are safe for concurrent use.
type Store interface {
	// Append records e and returns it with its sequence number assigned.
	Append(ctx context.Context, e Entry) (Entry, error)
	// Entries returns entries in sequence order. An empty session selects all
	// sessions. A limit of zero or less returns every match; otherwise the
	// most recent limit entries are returned.
	Entries(ctx context.Context, session string, limit int) ([]Entry, error)
	// Sessions returns the distinct sessions in order of first appearance.
	Sessions(ctx context.Context) ([]string, error)
	// Close releases resources.
	Close() error
}
