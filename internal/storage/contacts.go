package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/models"
)

var errMalformedContacts = errors.New("malformed contacts")

// ContactRepository persists the contact collection in the contacts slot.
// Reads never fail: anything unusable is replaced by the seed collection.
// Writes are best effort.
type ContactRepository struct {
	slot   Slot
	logger *zap.Logger
}

func NewContactRepository(slot Slot, logger *zap.Logger) *ContactRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactRepository{
		slot:   slot,
		logger: logger.Named("contacts"),
	}
}

// storedContact mirrors models.Contact with pointers so that missing
// required fields can be told apart from empty ones.
type storedContact struct {
	ID     *string  `json:"id"`
	Name   *string  `json:"name"`
	Email  *string  `json:"email"`
	Phone  *string  `json:"phone"`
	Avatar *string  `json:"avatar"`
	Tags   []string `json:"tags"`
}

func (r *ContactRepository) Load(ctx context.Context) []models.Contact {
	data, found, err := r.slot.Get(ctx, ContactsKey)
	if err != nil {
		r.logger.Warn("contacts slot unreadable, using seed contacts", zap.Error(err))
		return models.SeedContacts()
	}
	if !found {
		r.logger.Debug("no persisted contacts, using seed contacts")
		return models.SeedContacts()
	}

	contacts, err := DecodeContacts(data)
	if err != nil {
		r.logger.Warn("persisted contacts malformed, using seed contacts", zap.Error(err))
		return models.SeedContacts()
	}

	r.logger.Debug("loaded contacts", zap.Int("count", len(contacts)))
	return contacts
}

// Save writes the collection and swallows any failure. The in-memory state
// stays authoritative for the session.
func (r *ContactRepository) Save(ctx context.Context, contacts []models.Contact) {
	if err := r.Write(ctx, contacts); err != nil {
		r.logger.Warn("failed to persist contacts", zap.Int("count", len(contacts)), zap.Error(err))
	}
}

func (r *ContactRepository) Write(ctx context.Context, contacts []models.Contact) error {
	data, err := EncodeContacts(contacts)
	if err != nil {
		return err
	}

	if err := r.slot.Set(ctx, ContactsKey, data); err != nil {
		return fmt.Errorf("failed to write contacts: %w", err)
	}
	return nil
}

// Observer adapts Save to the store's post-mutation hook.
func (r *ContactRepository) Observer(ctx context.Context) func([]models.Contact) {
	return func(contacts []models.Contact) {
		r.Save(ctx, contacts)
	}
}

func EncodeContacts(contacts []models.Contact) ([]byte, error) {
	if contacts == nil {
		contacts = []models.Contact{}
	}

	data, err := json.Marshal(contacts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contacts: %w", err)
	}
	return data, nil
}

// DecodeContacts accepts only a JSON array of contact-shaped records with
// unique, non-empty ids. Tags are normalized, so blank or null entries are
// dropped and an empty list decodes as nil.
func DecodeContacts(data []byte) ([]models.Contact, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedContacts, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not an array", errMalformedContacts)
	}

	contacts := make([]models.Contact, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, record := range records {
		var stored storedContact
		if err := json.Unmarshal(record, &stored); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", errMalformedContacts, i, err)
		}

		if stored.ID == nil || stored.Name == nil || stored.Email == nil || stored.Phone == nil {
			return nil, fmt.Errorf("%w: record %d: missing required field", errMalformedContacts, i)
		}
		if *stored.ID == "" {
			return nil, fmt.Errorf("%w: record %d: empty id", errMalformedContacts, i)
		}
		if _, dup := seen[*stored.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %s", errMalformedContacts, i, *stored.ID)
		}
		seen[*stored.ID] = struct{}{}

		contacts = append(contacts, models.Contact{
			ID:     *stored.ID,
			Name:   *stored.Name,
			Email:  *stored.Email,
			Phone:  *stored.Phone,
			Avatar: stored.Avatar,
			Tags:   models.NormalizeTags(stored.Tags),
		})
	}

	return contacts, nil
}
