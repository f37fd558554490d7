package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ctask/internal/config"
	logx "ctask/pkg/logx"
)

// fileStore keeps the document in a single file.
//
// Every Save rewrites the whole file with one write call. There is no
// temp-file/rename step, so an interrupted write can leave a torn file.
type fileStore struct {
	log    logx.Logger
	path   string
	format config.Format

	mu       sync.Mutex
	closed   bool
	lastHash uint64 // hash of the bytes we last read or wrote
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("storage.path is required for file driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &fileStore{
		log:    log.With(logx.String("comp", "storage"), logx.String("driver", "file")),
		path:   path,
		format: config.FormatFor(path),
	}, nil
}

func (s *fileStore) Load(ctx context.Context) (*config.Document, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	// Open read+write so an unwritable file fails here, not on first Save.
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		data, err = config.Encode(s.format, config.Default())
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(s.path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write default %s: %w", s.path, err)
		}
		s.log.Info("created default state file", logx.String("path", s.path))
	}

	doc, err := config.Decode(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.lastHash = config.Hash(data)
	return doc, nil
}

func (s *fileStore) Save(ctx context.Context, doc *config.Document) error {
	_ = ctx
	data, err := config.Encode(s.format, doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.lastHash = config.Hash(data)
	s.log.Debug("state saved", logx.String("path", s.path), logx.Int("bytes", len(data)))
	return nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// changedExternally reports whether the file content differs from what this
// process last read or wrote.
func (s *fileStore) changedExternally() bool {
	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		// Mid-write or removed; a later event will follow.
		return false
	}
	h := config.Hash(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	return h != s.lastHash
}
