package journal

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-memory journal, useful for tests and the REPL.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
}

// NewMemory creates a new in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records an entry.
func (m *Memory) Append(_ context.Context, e Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, ErrClosed
	}

	e.Seq = int64(len(m.entries) + 1)
	m.entries = append(m.entries, e)

	return e, nil
}

// Entries returns recorded entries.
func (m *Memory) Entries(_ context.Context, session string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	var out []Entry

	for _, e := range m.entries {
		if session == "" || e.Session == session {
			out = append(out, e)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}

	return slices.Clip(out), nil
}

// Sessions returns the recorded sessions.
func (m *Memory) Sessions(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	var sessions []string

	for _, e := range m.entries {
		if !slices.Contains(sessions, e.Session) {
			sessions = append(sessions, e.Session)
		}
	}

	return sessions, nil
}

// Close discards the entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil

	return nil
}
