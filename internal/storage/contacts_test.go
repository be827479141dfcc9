package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rhystmorgan/triaContacts/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleContacts() []models.Contact {
	return []models.Contact{
		{ID: "1", Name: "Priya Sharma", Email: "priya.sharma@example.com", Phone: "+91 98765 43210"},
		{
			ID:     "1717171717171",
			Name:   "Zed",
			Email:  "z@x.com",
			Phone:  "000",
			Avatar: strPtr("data:image/png;base64,iVBORw0KGgo="),
			Tags:   []string{"work", "family"},
		},
	}
}

// failingSlot reads fine but refuses every write.
type failingSlot struct {
	*MemorySlot
}

func (s failingSlot) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestContactRepository_LoadAbsentReturnsSeed(t *testing.T) {
	repo := NewContactRepository(NewMemorySlot(0), nil)

	contacts := repo.Load(context.Background())

	assert.Equal(t, models.SeedContacts(), contacts)
}

func TestContactRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(NewMemorySlot(0), nil)

	require.NoError(t, repo.Write(ctx, sampleContacts()))
	first := repo.Load(ctx)
	assert.Equal(t, sampleContacts(), first)

	require.NoError(t, repo.Write(ctx, first))
	second := repo.Load(ctx)
	assert.Equal(t, first, second)
}

func TestContactRepository_EmptyCollectionIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(NewMemorySlot(0), nil)

	require.NoError(t, repo.Write(ctx, nil))

	contacts := repo.Load(ctx)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestContactRepository_MalformedReturnsSeed(t *testing.T) {
	cases := map[string]string{
		"not json":            `{{{`,
		"object":              `{"id":"1"}`,
		"null":                `null`,
		"string":              `"contacts"`,
		"array of numbers":    `[1,2,3]`,
		"missing phone":       `[{"id":"1","name":"A","email":"a@b.c"}]`,
		"numeric id":          `[{"id":1,"name":"A","email":"a@b.c","phone":"1"}]`,
		"empty id":            `[{"id":"","name":"A","email":"a@b.c","phone":"1"}]`,
		"avatar not a string": `[{"id":"1","name":"A","email":"a@b.c","phone":"1","avatar":7}]`,
		"tags not an array":   `[{"id":"1","name":"A","email":"a@b.c","phone":"1","tags":"work"}]`,
		"null record":         `[null]`,
		"duplicate ids": `[{"id":"1","name":"A","email":"a@b.c","phone":"1"},
			{"id":"1","name":"B","email":"b@b.c","phone":"2"}]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			slot := NewMemorySlot(0)
			require.NoError(t, slot.Set(ctx, ContactsKey, []byte(raw)))

			contacts := NewContactRepository(slot, nil).Load(ctx)

			assert.Equal(t, models.SeedContacts(), contacts)
		})
	}
}

func TestContactRepository_NullAvatarAccepted(t *testing.T) {
	contacts, err := DecodeContacts([]byte(`[{"id":"9","name":"A","email":"a@b.c","phone":"1","avatar":null,"tags":[]}]`))

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Nil(t, contacts[0].Avatar)
	assert.Empty(t, contacts[0].Tags)
}

func TestDecodeContacts_NormalizesTags(t *testing.T) {
	contacts, err := DecodeContacts([]byte(`[
		{"id":"1","name":"A","email":"a@b.c","phone":"1","tags":[null,"x"," ","x"]},
		{"id":"2","name":"B","email":"b@b.c","phone":"2","tags":[]}
	]`))

	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, []string{"x"}, contacts[0].Tags)
	assert.Nil(t, contacts[1].Tags)
}

func TestContactRepository_ReloadIsStable(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot(0)
	require.NoError(t, slot.Set(ctx, ContactsKey, []byte(`[{"id":"1","name":"A","email":"a@b.c","phone":"1","tags":[]}]`)))
	repo := NewContactRepository(slot, nil)

	first := repo.Load(ctx)
	repo.Save(ctx, first)
	second := repo.Load(ctx)

	assert.Equal(t, first, second)
}

func TestContactRepository_SaveSwallowsWriteFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := NewContactRepository(failingSlot{NewMemorySlot(0)}, zap.New(core))

	assert.NotPanics(t, func() {
		repo.Observer(context.Background())(sampleContacts())
	})

	entries := logs.FilterMessage("failed to persist contacts").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "failed to write contacts: disk full", entries[0].ContextMap()["error"])
}

func TestContactRepository_QuotaExceededIsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(NewMemorySlot(16), nil)

	err := repo.Write(ctx, sampleContacts())
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	repo.Save(ctx, sampleContacts())
	assert.Equal(t, models.SeedContacts(), repo.Load(ctx))
}

func TestContactRepository_UnreadableSlotReturnsSeed(t *testing.T) {
	ctx := context.Background()
	inner := NewMemorySlot(0)
	require.NoError(t, NewEncryptedSlot(inner, "right").Set(ctx, ContactsKey, []byte(`[]`)))

	core, logs := observer.New(zapcore.WarnLevel)
	contacts := NewContactRepository(NewEncryptedSlot(inner, "wrong"), zap.New(core)).Load(ctx)

	assert.Equal(t, models.SeedContacts(), contacts)
	assert.Equal(t, 1, logs.FilterMessage("contacts slot unreadable, using seed contacts").Len())
}
