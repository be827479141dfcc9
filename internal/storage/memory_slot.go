package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemorySlot keeps values in process. A positive quota caps the total number
// of stored bytes the way browser storage does.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
}

func NewMemorySlot(quota int) *MemorySlot {
	return &MemorySlot{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

func (s *MemorySlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *MemorySlot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := len(value)
		for k, v := range s.values {
			if k != key {
				used += len(v)
			}
		}
		if used > s.quota {
			return fmt.Errorf("failed to set %s (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
