package journal

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current journal schema version.
const SchemaVersion = "1"

const driverName = "sqlite"

// SQLite is a SQLite-backed journal.
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// OpenSQLite opens or creates a journal database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			seq     INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			name    TEXT NOT NULL,
			delim   TEXT NOT NULL,
			depth   INTEGER NOT NULL,
			args    TEXT NOT NULL,
			result  TEXT NOT NULL,
			err     TEXT NOT NULL,
			digest  TEXT NOT NULL,
			ts      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS entries_session ON entries (session, seq);
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()

		return nil, err
	}

	s := &SQLite{db: db}

	version, err := s.metadata(ctx, "schema_version")
	if err != nil {
		db.Close()

		return nil, err
	}

	switch version {
	case "":
		err = s.setMetadata(ctx, "schema_version", SchemaVersion)
		if err != nil {
			db.Close()

			return nil, err
		}

	case SchemaVersion:

	default:
		db.Close()

		return nil, ErrSchemaVersion.With(
			slog.String("found", version),
			slog.String("expected", SchemaVersion),
		)
	}

	return s, nil
}

// Append records an entry.
func (s *SQLite) Append(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Entry{}, ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (session, name, delim, depth, args, result, err, digest, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Session, e.Name, e.Delim, e.Depth, e.Args, e.Result, e.Err, e.Digest,
		e.Time.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return Entry{}, err
	}

	e.Seq, err = res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}

	return e, nil
}

// Entries returns recorded entries.
func (s *SQLite) Entries(ctx context.Context, session string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	if limit <= 0 {
		limit = -1
	}

	// The newest rows are selected, then put back in sequence order.
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, session, name, delim, depth, args, result, err, digest, ts
		FROM (
			SELECT * FROM entries
			WHERE ? = '' OR session = ?
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC
	`, session, session, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var (
			e  Entry
			ts string
		)

		err := rows.Scan(&e.Seq, &e.Session, &e.Name, &e.Delim, &e.Depth,
			&e.Args, &e.Result, &e.Err, &e.Digest, &ts)
		if err != nil {
			return nil, err
		}

		e.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Sessions returns the recorded sessions.
func (s *SQLite) Sessions(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session FROM entries GROUP BY session ORDER BY MIN(seq)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []string

	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// Close closes the database connection. Closing twice is a no-op.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.db.Close()
}

// metadata retrieves a metadata value by key.
func (s *SQLite) metadata(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	return value, err
}

// setMetadata stores a metadata value by key.
func (s *SQLite) setMetadata(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)

	return err
}
