package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"

	sqliteFile = "tria.db"
)

type Options struct {
	Backend    Backend
	DataDir    string
	Passphrase string
	// MemoryQuota caps the memory backend in bytes; zero means unlimited.
	MemoryQuota int
	Logger      *zap.Logger
}

// Open returns the slot for the configured backend, sealed with the
// passphrase when one is set.
func Open(ctx context.Context, opts Options) (Slot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var slot Slot
	switch opts.Backend {
	case BackendFile, "":
		fileSlot, err := NewFileSlot(opts.DataDir)
		if err != nil {
			return nil, err
		}
		slot = fileSlot
	case BackendSQLite:
		if err := os.MkdirAll(opts.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		sqliteSlot, err := NewSQLiteSlot(ctx, filepath.Join(opts.DataDir, sqliteFile), logger)
		if err != nil {
			return nil, err
		}
		slot = sqliteSlot
	case BackendMemory:
		slot = NewMemorySlot(opts.MemoryQuota)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", opts.Backend)
	}

	logger.Debug("opened storage slot",
		zap.String("backend", string(opts.Backend)),
		zap.String("data_dir", opts.DataDir),
		zap.Bool("encrypted", opts.Passphrase != ""))

	if opts.Passphrase != "" {
		return NewEncryptedSlot(slot, opts.Passphrase), nil
	}
	return slot, nil
}
