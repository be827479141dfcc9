package storage

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength   = 32
	nonceLength = 12
	saltLength  = 32
	iterations  = 100000
)

var (
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")
	errSealBroken      = errors.New("invalid passphrase or corrupted data")
)

// sealedValue is what the wrapped slot stores: an AES-256-GCM ciphertext
// plus the PBKDF2 salt its key was derived with.
type sealedValue struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// EncryptedSlot seals every value with a passphrase before handing it to the
// wrapped slot. The slot key is bound in as additional data, so a value
// copied under another key does not open.
type EncryptedSlot struct {
	inner      Slot
	passphrase string
}

func NewEncryptedSlot(inner Slot, passphrase string) *EncryptedSlot {
	return &EncryptedSlot{inner: inner, passphrase: passphrase}
}

func (s *EncryptedSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, found, err := s.inner.Get(ctx, key)
	if err != nil || !found {
		return nil, found, err
	}

	var sealed sealedValue
	if err := json.Unmarshal(raw, &sealed); err != nil {
		return nil, true, fmt.Errorf("failed to unmarshal sealed %s: %w", key, err)
	}

	plaintext, err := s.open(key, &sealed)
	if err != nil {
		return nil, true, fmt.Errorf("failed to decrypt %s: %w", key, err)
	}

	return plaintext, true, nil
}

func (s *EncryptedSlot) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.seal(key, value)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}

	raw, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("failed to marshal sealed %s: %w", key, err)
	}

	return s.inner.Set(ctx, key, raw)
}

func (s *EncryptedSlot) Close() error {
	return s.inner.Close()
}

func (s *EncryptedSlot) seal(key string, value []byte) (*sealedValue, error) {
	if s.passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	gcm, err := s.cipherFor(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return &sealedValue{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, value, []byte(key)),
	}, nil
}

func (s *EncryptedSlot) open(key string, sealed *sealedValue) ([]byte, error) {
	if s.passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if len(sealed.Nonce) != nonceLength || len(sealed.Salt) != saltLength {
		return nil, errSealBroken
	}

	gcm, err := s.cipherFor(sealed.Salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, sealed.Nonce, sealed.Ciphertext, []byte(key))
	if err != nil {
		return nil, errSealBroken
	}
	return plaintext, nil
}

func (s *EncryptedSlot) cipherFor(salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(pbkdf2.Key([]byte(s.passphrase), salt, iterations, keyLength, sha256.New))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
