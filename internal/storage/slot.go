package storage

import (
	"context"
	"errors"
)

const (
	// ContactsKey holds the JSON array of contacts. The suffix versions the
	// record layout.
	ContactsKey = "tria_contacts_v1"
	ThemeKey    = "tria_theme"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Slot is a durable key-value store scoped to the current user.
type Slot interface {
	// Get returns found == false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
