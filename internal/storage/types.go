package storage

import (
	"context"
	"errors"
	"time"

	"ctask/internal/config"
)

var (
	ErrClosed        = errors.New("storage closed")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Config configures storage.
//
// Driver values:
//   - "file" (default): JSON/YAML document at Path
//   - "sqlite": SQLite database file at Path
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Store loads and saves the whole state document.
//
// Load creates the default document when the backing file is new or empty.
// Save replaces everything previously stored.
type Store interface {
	Load(ctx context.Context) (*config.Document, error)
	Save(ctx context.Context, doc *config.Document) error
	Close() error
}

// Watcher is implemented by drivers that can report edits made by another
// program (a text editor, typically).
type Watcher interface {
	// Watch blocks until ctx is done, calling notify after each external
	// change. Changes caused by this process's own Save are not reported.
	Watch(ctx context.Context, notify func()) error
}
