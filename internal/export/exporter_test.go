package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/triaContacts/internal/models"
)

var exportTime = time.UnixMilli(1718000000000)

func collection() []models.Contact {
	avatar := "https://example.com/a.png"
	contacts := models.SeedContacts()
	contacts[2].Avatar = &avatar
	contacts[2].Tags = []string{"family", "work"}
	return contacts
}

func TestBuild_EmptyIDsProducesNothing(t *testing.T) {
	artifact, err := Build(collection(), nil, FormatJSON, exportTime)
	require.NoError(t, err)
	assert.Nil(t, artifact)

	artifact, err = Build(collection(), []string{"missing"}, FormatJSON, exportTime)
	require.NoError(t, err)
	assert.Nil(t, artifact, "ids matching nothing must not produce an empty artifact")
}

func TestBuild_JSONUsesCollectionOrder(t *testing.T) {
	artifact, err := Build(collection(), []string{"5", "3", "1"}, FormatJSON, exportTime)
	require.NoError(t, err)
	require.NotNil(t, artifact)

	assert.Equal(t, "contacts-export-1718000000000.json", artifact.Name)
	assert.Equal(t, "application/json", artifact.MIMEType)
	assert.Equal(t, 3, artifact.Count)

	var exported []models.Contact
	require.NoError(t, json.Unmarshal(artifact.Data, &exported))

	want := collection()
	assert.Equal(t, []models.Contact{want[0], want[2], want[4]}, exported)
	assert.True(t, strings.HasPrefix(string(artifact.Data), "[\n  {\n    \"id\": \"1\""), "JSON is pretty printed")
}

func TestBuild_CSV(t *testing.T) {
	artifact, err := Build(collection(), []string{"3"}, FormatCSV, exportTime)
	require.NoError(t, err)
	require.NotNil(t, artifact)

	assert.Equal(t, "contacts-export-1718000000000.csv", artifact.Name)
	assert.Equal(t, "text/csv", artifact.MIMEType)

	lines := strings.Split(strings.TrimSpace(string(artifact.Data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,email,phone,avatar,tags", lines[0])
	assert.Equal(t, "3,Neha Gupta,neha.gupta@example.com,+91 76543 21098,https://example.com/a.png,family;work", lines[1])
}

func TestExporter_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	exporter := NewExporter(dir, FormatJSON, WithClock(func() time.Time { return exportTime }))

	artifact, err := exporter.Export(collection(), []string{"2"})
	require.NoError(t, err)
	require.NotNil(t, artifact)

	assert.Equal(t, filepath.Join(dir, "contacts-export-1718000000000.json"), artifact.Path)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, artifact.Data, data)
}

func TestExporter_EmptySelectionWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	exporter := NewExporter(dir, FormatJSON)

	artifact, err := exporter.Export(collection(), []string{})
	require.NoError(t, err)
	assert.Nil(t, artifact)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "export directory should not be created")
}

func TestExporter_WithFormat(t *testing.T) {
	exporter := NewExporter(t.TempDir(), FormatJSON)
	csvExporter := exporter.WithFormat(FormatCSV)

	assert.Equal(t, FormatJSON, exporter.Format())
	assert.Equal(t, FormatCSV, csvExporter.Format())
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
