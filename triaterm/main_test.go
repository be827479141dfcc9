package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/triaContacts/internal/config"
	"rhystmorgan/triaContacts/internal/models"
)

func setupCLI(t *testing.T) {
	t.Helper()

	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	resetFlags := func() {
		listSort, listTag, listSearch, listJSON = "", "", "", false
		addName, addEmail, addPhone, addTags, addAvatar = "", "", "", "", ""
		exportAll, exportFormat = false, ""
	}
	resetFlags()
	t.Cleanup(resetFlags)
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestListCmd(t *testing.T) {
	setupCLI(t)

	cmd, out := newTestCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	for _, name := range []string{"Priya Sharma", "Arjun Patel", "Neha Gupta", "Raj Malhotra", "Ananya Singh"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("list output should contain %q", name)
		}
	}
	if !strings.Contains(out.String(), "5 of 5 shown") {
		t.Errorf("expected summary line, got:\n%s", out.String())
	}

	if strings.Index(out.String(), "Ananya Singh") > strings.Index(out.String(), "Raj Malhotra") {
		t.Error("contacts should be sorted by name")
	}
}

func TestListCmdSearchAndTag(t *testing.T) {
	setupCLI(t)

	listSearch = "NEHA"
	cmd, out := newTestCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	if !strings.Contains(out.String(), "Neha Gupta") || strings.Contains(out.String(), "Priya Sharma") {
		t.Errorf("search should keep only Neha, got:\n%s", out.String())
	}

	listSearch = ""
	listTag = "work"
	cmd, out = newTestCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	if !strings.Contains(out.String(), "No contacts match") {
		t.Errorf("expected no-match message, got:\n%s", out.String())
	}
}

func TestListCmdJSON(t *testing.T) {
	setupCLI(t)

	listJSON = true
	listSort = "name-desc"
	cmd, out := newTestCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	var contacts []models.Contact
	if err := json.Unmarshal(out.Bytes(), &contacts); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(contacts) != 5 || contacts[0].Name != "Raj Malhotra" {
		t.Errorf("expected 5 contacts starting with Raj Malhotra, got %+v", contacts)
	}

	listSort = "sideways"
	cmd, _ = newTestCmd()
	if err := runList(cmd, nil); err == nil {
		t.Error("expected error for unknown sort option")
	}
}

func TestAddCmdPersists(t *testing.T) {
	setupCLI(t)

	addName, addEmail, addPhone, addTags = "Zed", "z@x.com", "000", "work, gym"
	cmd, out := newTestCmd()
	if err := runAdd(cmd, nil); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Added Zed (") {
		t.Errorf("unexpected add output: %q", out.String())
	}

	cmd, out = newTestCmd()
	if err := runTags(cmd, nil); err != nil {
		t.Fatalf("runTags failed: %v", err)
	}
	if out.String() != "gym\nwork\n" {
		t.Errorf("expected tags gym and work, got %q", out.String())
	}
}

func TestAddCmdValidates(t *testing.T) {
	setupCLI(t)

	addName = "Zed"
	cmd, _ := newTestCmd()
	err := runAdd(cmd, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "Email is required") || !strings.Contains(err.Error(), "Phone is required") {
		t.Errorf("unexpected error: %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(cfg.DataDir, "tria_contacts_v1")); !os.IsNotExist(statErr) {
		t.Error("a rejected draft should not touch storage")
	}
}

func TestDeleteCmdAndHistory(t *testing.T) {
	setupCLI(t)

	cmd, out := newTestCmd()
	if err := runDelete(cmd, []string{"1", "3", "missing"}); err != nil {
		t.Fatalf("runDelete failed: %v", err)
	}
	if out.String() != "Deleted 2 contacts\n" {
		t.Errorf("unexpected delete output: %q", out.String())
	}

	cmd, out = newTestCmd()
	if err := runList(cmd, nil); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	if !strings.Contains(out.String(), "3 of 3 shown") {
		t.Errorf("expected 3 remaining contacts, got:\n%s", out.String())
	}

	cmd, out = newTestCmd()
	if err := runHistory(cmd, []string{"3"}); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	if !strings.Contains(out.String(), "delete") {
		t.Errorf("expected a delete entry, got %q", out.String())
	}

	cmd, out = newTestCmd()
	if err := runHistory(cmd, []string{"2"}); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	if out.String() != "No history for 2\n" {
		t.Errorf("unexpected history output: %q", out.String())
	}
}

func TestExportCmd(t *testing.T) {
	setupCLI(t)

	cmd, _ := newTestCmd()
	if err := runExport(cmd, nil); err == nil {
		t.Error("expected error when nothing is requested")
	}

	exportAll = true
	exportFormat = "csv"
	cmd, out := newTestCmd()
	if err := runExport(cmd, nil); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Exported 5 contacts to ") {
		t.Errorf("unexpected export output: %q", out.String())
	}

	files, _ := filepath.Glob(filepath.Join(cfg.ExportDir(), "contacts-export-*.csv"))
	if len(files) != 1 {
		t.Errorf("expected one CSV export, found %v", files)
	}

	exportAll = false
	exportFormat = ""
	cmd, out = newTestCmd()
	if err := runExport(cmd, []string{"missing"}); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}
	if !strings.Contains(out.String(), "nothing exported") {
		t.Errorf("unexpected export output: %q", out.String())
	}
}
