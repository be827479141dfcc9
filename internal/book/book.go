// Package book is the contact book a user interacts with. It owns the query,
// the selection and the wiring between them and the contact store, so that
// no state lives in package globals.
package book

import (
	"sync"

	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/audit"
	"rhystmorgan/triaContacts/internal/export"
	"rhystmorgan/triaContacts/internal/models"
	"rhystmorgan/triaContacts/internal/pipeline"
	"rhystmorgan/triaContacts/internal/selection"
	"rhystmorgan/triaContacts/internal/store"
)

type EmptyState int

const (
	EmptyNone EmptyState = iota
	// EmptyNoContacts means nothing is visible and no filter is active.
	EmptyNoContacts
	// EmptyNoMatch means a search or tag filter hides every contact.
	EmptyNoMatch
)

// Auditor records contact actions. *audit.ContactAuditor satisfies it.
type Auditor interface {
	LogContactAction(action audit.AuditAction, contactID string, details map[string]interface{}) error
	Close() error
}

// View is everything a front end needs to render one frame.
type View struct {
	Contacts []models.Contact
	Tags     []string
	Selected []string
	Query    pipeline.Query
	Total    int
	Empty    EmptyState
}

func (v View) IsSelected(id string) bool {
	for _, selected := range v.Selected {
		if selected == id {
			return true
		}
	}
	return false
}

type Book struct {
	mu       sync.Mutex
	query    pipeline.Query
	store    *store.Store
	tracker  *selection.Tracker
	exporter *export.Exporter
	auditor  Auditor
	logger   *zap.Logger
}

type Option func(*Book)

func WithAuditor(auditor Auditor) Option {
	return func(b *Book) {
		b.auditor = auditor
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Book) {
		b.logger = logger.Named("book")
	}
}

func WithSort(option pipeline.SortOption) Option {
	return func(b *Book) {
		b.query.Sort = option
	}
}

func New(contacts *store.Store, tracker *selection.Tracker, exporter *export.Exporter, opts ...Option) *Book {
	b := &Book{
		query:    pipeline.Query{Sort: pipeline.SortNameAsc},
		store:    contacts,
		tracker:  tracker,
		exporter: exporter,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Book) Query() pipeline.Query {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.query
}

func (b *Book) SetSearch(search string) {
	b.mu.Lock()
	b.query.Search = search
	b.mu.Unlock()
}

func (b *Book) SetSort(option pipeline.SortOption) {
	b.mu.Lock()
	b.query.Sort = option
	b.mu.Unlock()
}

// CycleSort advances to the next sort option and returns it.
func (b *Book) CycleSort() pipeline.SortOption {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.query.Sort = b.query.Sort.Next()
	return b.query.Sort
}

// SetTagFilter makes tag the active filter. An empty tag clears it.
func (b *Book) SetTagFilter(tag string) {
	b.mu.Lock()
	b.query.Tag = tag
	b.mu.Unlock()
}

// ToggleTagFilter activates tag, or clears the filter when tag is already
// active.
func (b *Book) ToggleTagFilter(tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.query.Tag == tag {
		b.query.Tag = ""
		return
	}
	b.query.Tag = tag
}

// CycleTagFilter steps through no filter and then each tag of the vocabulary
// in order, wrapping back to no filter.
func (b *Book) CycleTagFilter() string {
	tags := pipeline.Tags(b.store.Contacts())

	b.mu.Lock()
	defer b.mu.Unlock()

	next := ""
	if b.query.Tag == "" {
		if len(tags) > 0 {
			next = tags[0]
		}
	} else {
		for i, tag := range tags {
			if tag == b.query.Tag && i+1 < len(tags) {
				next = tags[i+1]
				break
			}
		}
	}
	b.query.Tag = next
	return next
}

func (b *Book) View() View {
	query := b.Query()
	contacts := b.store.Contacts()
	visible := pipeline.Apply(contacts, query)

	view := View{
		Contacts: visible,
		Tags:     pipeline.Tags(contacts),
		Selected: b.tracker.IDs(),
		Query:    query,
		Total:    len(contacts),
	}

	if len(visible) == 0 {
		if query.Active() {
			view.Empty = EmptyNoMatch
		} else {
			view.Empty = EmptyNoContacts
		}
	}

	return view
}

func (b *Book) Contacts() []models.Contact {
	return b.store.Contacts()
}

// AddContact stores the draft as is. Validation is the caller's concern.
func (b *Book) AddContact(draft models.ContactDraft) models.Contact {
	contact := b.store.Add(draft)
	b.logger.Debug("contact added", zap.String("contact_id", contact.ID))
	b.audit(audit.AuditActionCreate, contact.ID, map[string]interface{}{
		"name": contact.Name,
	})
	return contact
}

func (b *Book) ToggleSelection(id string, selected bool) {
	b.tracker.Toggle(id, selected)
}

// SelectAllVisible selects exactly the contacts of the current view.
func (b *Book) SelectAllVisible() int {
	visible := pipeline.Apply(b.store.Contacts(), b.Query())

	ids := make([]string, len(visible))
	for i, contact := range visible {
		ids[i] = contact.ID
	}
	b.tracker.SelectAllVisible(ids)
	return len(ids)
}

func (b *Book) ClearSelection() {
	b.tracker.Clear()
}

func (b *Book) SelectedIDs() []string {
	return b.tracker.IDs()
}

// Delete removes the contacts and drops the same ids from the selection.
func (b *Book) Delete(ids []string) int {
	if len(ids) == 0 {
		return 0
	}

	present := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := b.store.Get(id); ok {
			present = append(present, id)
		}
	}

	removed := b.store.DeleteMany(ids)
	b.tracker.Prune(ids)

	for _, id := range present {
		b.audit(audit.AuditActionDelete, id, nil)
	}
	b.logger.Debug("contacts deleted", zap.Int("requested", len(ids)), zap.Int("removed", removed))
	return removed
}

// DeleteSelected deletes the current selection. An empty selection does
// nothing.
func (b *Book) DeleteSelected() int {
	return b.Delete(b.tracker.IDs())
}

// ExportSelected exports the current selection. An empty selection produces
// no artifact.
func (b *Book) ExportSelected() (*export.Artifact, error) {
	return b.Export(b.tracker.IDs())
}

// Export writes the listed contacts through the exporter.
func (b *Book) Export(ids []string) (*export.Artifact, error) {
	return b.ExportAs(ids, b.exporter.Format())
}

func (b *Book) ExportAs(ids []string, format export.Format) (*export.Artifact, error) {
	collection := b.store.Contacts()

	artifact, err := b.exporter.WithFormat(format).Export(collection, ids)
	if err != nil {
		b.logger.Error("export failed", zap.Error(err))
		return nil, err
	}
	if artifact == nil {
		return nil, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, contact := range collection {
		if _, ok := wanted[contact.ID]; ok {
			b.audit(audit.AuditActionExport, contact.ID, map[string]interface{}{
				"file":   artifact.Name,
				"format": format.String(),
			})
		}
	}
	return artifact, nil
}

// Close flushes pending audit entries.
func (b *Book) Close() error {
	if b.auditor == nil {
		return nil
	}
	return b.auditor.Close()
}

func (b *Book) audit(action audit.AuditAction, contactID string, details map[string]interface{}) {
	if b.auditor == nil {
		return
	}
	if err := b.auditor.LogContactAction(action, contactID, details); err != nil {
		b.logger.Warn("failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("contact_id", contactID),
			zap.Error(err))
	}
}
