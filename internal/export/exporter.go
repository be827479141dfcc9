package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/models"
)

type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

const filePrefix = "contacts-export-"

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatJSON, fmt.Errorf("unsupported export format: %s", s)
	}
}

func (f Format) String() string {
	if f == FormatCSV {
		return "csv"
	}
	return "json"
}

func (f Format) mimeType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Artifact is one exported file.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
	Count    int
	// Path is set once the artifact has been written.
	Path string
}

// Build serializes the contacts whose id is listed, in collection order. It
// returns a nil artifact when nothing would be exported.
func Build(collection []models.Contact, ids []string, format Format, now time.Time) (*Artifact, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]models.Contact, 0, len(ids))
	for _, contact := range collection {
		if _, ok := wanted[contact.ID]; ok {
			selected = append(selected, contact)
		}
	}
	if len(selected) == 0 {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = encodeJSON(selected)
	case FormatCSV:
		data, err = encodeCSV(selected)
	default:
		return nil, fmt.Errorf("unsupported export format")
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Name:     fmt.Sprintf("%s%d.%s", filePrefix, now.UnixMilli(), format),
		MIMEType: format.mimeType(),
		Data:     data,
		Count:    len(selected),
	}, nil
}

func encodeJSON(contacts []models.Contact) ([]byte, error) {
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func encodeCSV(contacts []models.Contact) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"id", "name", "email", "phone", "avatar", "tags"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, contact := range contacts {
		record := []string{
			contact.ID,
			contact.Name,
			contact.Email,
			contact.Phone,
			contact.AvatarRef(),
			strings.Join(contact.Tags, ";"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Exporter writes artifacts into a directory, the terminal equivalent of a
// browser download.
type Exporter struct {
	dir    string
	format Format
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Exporter)

func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger.Named("export")
	}
}

func NewExporter(dir string, format Format, opts ...Option) *Exporter {
	e := &Exporter{
		dir:    dir,
		format: format,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) Format() Format {
	return e.format
}

// WithFormat returns a copy of the exporter writing another format.
func (e *Exporter) WithFormat(format Format) *Exporter {
	clone := *e
	clone.format = format
	return &clone
}

// Export builds the artifact and writes it. Nothing is written when there is
// nothing to export.
func (e *Exporter) Export(collection []models.Contact, ids []string) (*Artifact, error) {
	artifact, err := Build(collection, ids, e.format, e.now())
	if err != nil || artifact == nil {
		return artifact, err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(e.dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0600); err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	artifact.Path = path

	e.logger.Info("exported contacts",
		zap.String("path", path),
		zap.Int("count", artifact.Count),
		zap.String("format", e.format.String()))

	return artifact, nil
}
