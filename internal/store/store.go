// Package store owns the canonical contact collection. Every mutation is
// followed by a notification to the subscribed observers, which is how the
// collection gets persisted.
package store

import (
	"sync"
	"time"

	"rhystmorgan/triaContacts/internal/models"
)

// Observer receives a snapshot of the collection after each mutation.
type Observer func(contacts []models.Contact)

type Store struct {
	mu        sync.RWMutex
	contacts  models.ContactList
	observers map[int]Observer
	nextObsID int
	now       func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now as the source of contact ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(initial []models.Contact, opts ...Option) *Store {
	s := &Store{
		observers: make(map[int]Observer),
		now:       time.Now,
	}
	for _, contact := range initial {
		s.contacts.Add(contact.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(observer Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = observer
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Add appends a new contact built from the draft. Ids come from the clock in
// millisecond resolution, so drafts added within the same millisecond share
// an id.
func (s *Store) Add(draft models.ContactDraft) models.Contact {
	s.mu.Lock()
	contact := models.NewContact(draft, s.now())
	s.contacts.Add(contact)
	snapshot, observers := s.snapshotLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
	return contact.Clone()
}

// DeleteMany removes every contact whose id is listed and returns how many
// were removed. A non-empty call always notifies observers.
func (s *Store) DeleteMany(ids []string) int {
	if len(ids) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	removed := s.contacts.RemoveMany(set)
	snapshot, observers := s.snapshotLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
	return removed
}

// Contacts returns a copy of the collection in append order.
func (s *Store) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.contacts.Snapshot()
}

func (s *Store) Get(id string) (models.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contact := s.contacts.FindByID(id)
	if contact == nil {
		return models.Contact{}, false
	}
	return contact.Clone(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.contacts.Len()
}

func (s *Store) snapshotLocked() ([]models.Contact, []Observer) {
	observers := make([]Observer, 0, len(s.observers))
	for id := 0; id < s.nextObsID; id++ {
		if observer, ok := s.observers[id]; ok {
			observers = append(observers, observer)
		}
	}
	return s.contacts.Snapshot(), observers
}

// notify runs outside the lock so observers may read the store.
func notify(observers []Observer, snapshot []models.Contact) {
	for _, observer := range observers {
		observer(snapshot)
	}
}
