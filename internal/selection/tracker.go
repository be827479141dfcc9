// Package selection tracks which contacts are marked for a bulk action.
//
// The tracker holds ids only. It never sees the collection, so callers that
// delete contacts must Prune the same ids afterwards.
package selection

import (
	"slices"
	"sync"
)

type Tracker struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

// Toggle adds or removes a single id. Both directions are idempotent.
func (t *Tracker) Toggle(id string, selected bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if selected {
		t.ids[id] = struct{}{}
	} else {
		delete(t.ids, id)
	}
}

// SelectAllVisible replaces the selection with exactly visible.
func (t *Tracker) SelectAllVisible(visible []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ids = make(map[string]struct{}, len(visible))
	for _, id := range visible {
		t.ids[id] = struct{}{}
	}
}

func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ids = make(map[string]struct{})
}

func (t *Tracker) Prune(ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range ids {
		delete(t.ids, id)
	}
}

func (t *Tracker) Has(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.ids[id]
	return ok
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.ids)
}

// IDs returns a sorted snapshot of the selection.
func (t *Tracker) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
