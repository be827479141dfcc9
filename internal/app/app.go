// Package app assembles a contact book from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/audit"
	"rhystmorgan/triaContacts/internal/book"
	"rhystmorgan/triaContacts/internal/config"
	"rhystmorgan/triaContacts/internal/export"
	"rhystmorgan/triaContacts/internal/pipeline"
	"rhystmorgan/triaContacts/internal/selection"
	"rhystmorgan/triaContacts/internal/storage"
	"rhystmorgan/triaContacts/internal/store"
)

type App struct {
	Config  *config.Config
	Book    *book.Book
	Store   *store.Store
	Themes  *storage.ThemeRepository
	Auditor *audit.ContactAuditor
	Logger  *zap.Logger

	slot        storage.Slot
	unsubscribe func()
}

// Open loads the persisted collection and wires persistence as a store
// observer. Storage corruption never fails Open; an unusable data directory
// or configuration does.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, err
	}

	sortOption, err := pipeline.ParseSortOption(cfg.UI.Sort)
	if err != nil {
		return nil, err
	}

	theme, err := storage.ParseTheme(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}

	slot, err := storage.Open(ctx, storage.Options{
		Backend:    storage.Backend(cfg.Storage.Backend),
		DataDir:    cfg.DataDir,
		Passphrase: cfg.Storage.Passphrase,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	repo := storage.NewContactRepository(slot, logger)
	contacts := store.New(repo.Load(ctx))
	unsubscribe := contacts.Subscribe(repo.Observer(ctx))

	opts := []book.Option{
		book.WithLogger(logger),
		book.WithSort(sortOption),
	}

	var auditor *audit.ContactAuditor
	if cfg.Audit.Enabled {
		auditor, err = audit.NewContactAuditor(cfg.AuditDir())
		if err != nil {
			unsubscribe()
			_ = slot.Close()
			return nil, err
		}
		opts = append(opts, book.WithAuditor(auditor))
	}

	exporter := export.NewExporter(cfg.ExportDir(), format, export.WithLogger(logger))

	logger.Info("contact book opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("contacts", contacts.Len()),
		zap.Bool("audit", cfg.Audit.Enabled))

	return &App{
		Config:      cfg,
		Book:        book.New(contacts, selection.NewTracker(), exporter, opts...),
		Store:       contacts,
		Themes:      storage.NewThemeRepository(slot, theme, logger),
		Auditor:     auditor,
		Logger:      logger,
		slot:        slot,
		unsubscribe: unsubscribe,
	}, nil
}

// History returns the audit trail of one contact. It is empty when auditing
// is disabled.
func (a *App) History(contactID string) ([]audit.AuditLog, error) {
	if a.Auditor == nil {
		return nil, nil
	}
	return a.Auditor.GetContactHistory(contactID)
}

func (a *App) Close() error {
	a.unsubscribe()
	return errors.Join(a.Book.Close(), a.slot.Close())
}
