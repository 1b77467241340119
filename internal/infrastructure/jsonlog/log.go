package jsonlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/sent-robotics/robot-relay/internal/domain"
)

// Log is the file-backed notification store. It owns the on-disk document:
// a single JSON array of records, rewritten whole on every mutation. The
// mutex guards each read-modify-persist cycle so concurrent requests cannot
// interleave a corrupt document; lost updates across processes are out of
// scope (single-process deployment).
type Log struct {
	mu      sync.Mutex
	path    string
	records []domain.Notification
}

// Open loads the document at path. A missing, unreadable, or non-array file
// yields an empty log, never an error: prior history is best-effort.
func Open(path string) *Log {
	return &Log{path: path, records: load(path)}
}

func load(path string) []domain.Notification {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("notification log unreadable, starting empty", "path", path, "err", err)
		}
		return []domain.Notification{}
	}
	var records []domain.Notification
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("notification log corrupt, starting empty", "path", path, "err", err)
		return []domain.Notification{}
	}
	if records == nil {
		records = []domain.Notification{}
	}
	return records
}

// Append adds n to the tail and rewrites the document. The in-memory state
// is updated even when the write fails, so the record survives for readers
// of the current process; the write error is still returned because a
// failed append is the one ingestion failure allowed to surface.
func (l *Log) Append(n domain.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, n)
	return l.persist()
}

// Clear empties the log and rewrites the (now-empty) document.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
	return l.persist()
}

// List returns a copy of the records in arrival order.
func (l *Log) List() []domain.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Notification, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports the current record count.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// persist rewrites the whole document. Callers must hold l.mu.
func (l *Log) persist() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notification log: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write notification log: %w", err)
	}
	return nil
}
