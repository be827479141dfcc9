package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores every key as its own file inside the data directory.
type FileSlot struct {
	dataDir string
}

func NewFileSlot(dataDir string) (*FileSlot, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileSlot{dataDir: dataDir}, nil
}

func (s *FileSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, true, nil
}

func (s *FileSlot) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dataDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	return nil
}

func (s *FileSlot) Close() error {
	return nil
}

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.dataDir, key)
}
