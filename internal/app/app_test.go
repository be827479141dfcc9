package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/triaContacts/internal/audit"
	"rhystmorgan/triaContacts/internal/config"
	"rhystmorgan/triaContacts/internal/models"
	"rhystmorgan/triaContacts/internal/storage"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = backend
	return cfg
}

func TestOpenSeedsEmptyDataDir(t *testing.T) {
	a, err := Open(context.Background(), testConfig(t, "file"), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 5, a.Book.View().Total)
	assert.Equal(t, storage.ThemeDark, a.Themes.Load(context.Background()))
}

func TestMutationsPersistAcrossOpen(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)
			cfg.Storage.Passphrase = "correct horse"

			a, err := Open(ctx, cfg, nil)
			require.NoError(t, err)

			zed := a.Book.AddContact(models.ContactDraft{
				Name: "Zed", Email: "z@x.com", Phone: "000",
				Avatar: "https://example.com/z.png", Tags: []string{"work"},
			})
			a.Book.Delete([]string{"1", "2"})
			a.Themes.Save(ctx, storage.ThemeLight)
			require.NoError(t, a.Close())

			reopened, err := Open(ctx, cfg, nil)
			require.NoError(t, err)
			defer reopened.Close()

			view := reopened.Book.View()
			assert.Equal(t, 4, view.Total)
			assert.Equal(t, []string{"work"}, view.Tags)

			got, ok := reopened.Store.Get(zed.ID)
			require.True(t, ok)
			assert.Equal(t, "https://example.com/z.png", got.AvatarRef())
			assert.Equal(t, storage.ThemeLight, reopened.Themes.Load(ctx))
		})
	}
}

func TestOpenRecordsAuditHistory(t *testing.T) {
	a, err := Open(context.Background(), testConfig(t, "memory"), nil)
	require.NoError(t, err)
	defer a.Close()

	a.Book.Delete([]string{"3"})

	history, err := a.History("3")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, audit.AuditActionDelete, history[0].Action)
}

func TestOpenWithoutAudit(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Audit.Enabled = false

	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	a.Book.Delete([]string{"3"})

	history, err := a.History("3")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = os.Stat(filepath.Join(cfg.DataDir, "audit"))
	assert.True(t, os.IsNotExist(err))
}

func TestOpenRejectsBadConfig(t *testing.T) {
	tests := map[string]func(*config.Config){
		"backend": func(c *config.Config) { c.Storage.Backend = "redis" },
		"format":  func(c *config.Config) { c.Export.Format = "xml" },
		"sort":    func(c *config.Config) { c.UI.Sort = "random" },
		"theme":   func(c *config.Config) { c.UI.Theme = "blue" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t, "memory")
			mutate(cfg)

			_, err := Open(context.Background(), cfg, nil)
			assert.Error(t, err)
		})
	}
}
