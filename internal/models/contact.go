package models

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Avatar is an opaque image reference (data URL, external URL or path).
	Avatar *string  `json:"avatar,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// ContactDraft is what the add-contact form submits. It has no identity yet.
type ContactDraft struct {
	Name   string
	Email  string
	Phone  string
	Avatar string
	Tags   []string
}

type ContactList struct {
	Contacts []Contact
}

// NewContact turns a draft into a contact whose id is derived from createdAt.
// Two drafts created within the same millisecond receive the same id.
func NewContact(draft ContactDraft, createdAt time.Time) Contact {
	contact := Contact{
		ID:    GenerateContactID(createdAt),
		Name:  draft.Name,
		Email: draft.Email,
		Phone: draft.Phone,
		Tags:  NormalizeTags(draft.Tags),
	}

	if avatar := strings.TrimSpace(draft.Avatar); avatar != "" {
		contact.Avatar = &avatar
	}

	return contact
}

// GenerateContactID returns the decimal Unix millisecond timestamp of t.
func GenerateContactID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// CreatedAtMillis returns the timestamp encoded in the contact id, or 0 when
// the id is not numeric.
func (c Contact) CreatedAtMillis() int64 {
	millis, err := strconv.ParseInt(c.ID, 10, 64)
	if err != nil {
		return 0
	}
	return millis
}

func (c Contact) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

func (c Contact) AvatarRef() string {
	if c.Avatar == nil {
		return ""
	}
	return *c.Avatar
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (c Contact) Clone() Contact {
	clone := c
	if c.Avatar != nil {
		avatar := *c.Avatar
		clone.Avatar = &avatar
	}
	if c.Tags != nil {
		clone.Tags = slices.Clone(c.Tags)
	}
	return clone
}

// Initials returns up to two upper-cased initials of the name.
func (c Contact) Initials() string {
	var initials []rune
	for _, word := range strings.Fields(c.Name) {
		initials = append(initials, []rune(word)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

// NormalizeTags trims every tag and drops blanks and exact duplicates,
// keeping the order in which tags were typed.
func NormalizeTags(tags []string) []string {
	var normalized []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(normalized, tag) {
			continue
		}
		normalized = append(normalized, tag)
	}
	return normalized
}

// ParseTags splits comma separated form input into normalized tags.
func ParseTags(input string) []string {
	return NormalizeTags(strings.Split(input, ","))
}

func (cl *ContactList) Add(contact Contact) {
	cl.Contacts = append(cl.Contacts, contact)
}

// RemoveMany drops every contact whose id is in ids and reports how many
// were removed. Unknown ids are ignored.
func (cl *ContactList) RemoveMany(ids map[string]struct{}) int {
	kept := cl.Contacts[:0]
	removed := 0
	for _, contact := range cl.Contacts {
		if _, ok := ids[contact.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, contact)
	}
	clear(cl.Contacts[len(kept):])
	cl.Contacts = kept
	return removed
}

func (cl *ContactList) FindByID(id string) *Contact {
	for i, contact := range cl.Contacts {
		if contact.ID == id {
			return &cl.Contacts[i]
		}
	}
	return nil
}

// Snapshot returns a deep copy of the list in its current order.
func (cl *ContactList) Snapshot() []Contact {
	snapshot := make([]Contact, len(cl.Contacts))
	for i, contact := range cl.Contacts {
		snapshot[i] = contact.Clone()
	}
	return snapshot
}

func (cl *ContactList) Len() int {
	return len(cl.Contacts)
}
