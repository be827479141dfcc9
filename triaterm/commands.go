package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"rhystmorgan/triaContacts/internal/export"
	"rhystmorgan/triaContacts/internal/models"
	"rhystmorgan/triaContacts/internal/pipeline"
	"rhystmorgan/triaContacts/internal/utils"
	"rhystmorgan/triaContacts/internal/validation"
)

var (
	listSort   string
	listTag    string
	listSearch string
	listJSON   bool

	addName   string
	addEmail  string
	addPhone  string
	addTags   string
	addAvatar string

	exportAll    bool
	exportFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete contacts by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var exportCmd = &cobra.Command{
	Use:   "export [<id>...]",
	Short: "Export contacts to a file in the export directory",
	RunE:  runExport,
}

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the audit history of a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	if listSort != "" {
		option, err := pipeline.ParseSortOption(listSort)
		if err != nil {
			return err
		}
		a.Book.SetSort(option)
	}
	a.Book.SetTagFilter(listTag)
	a.Book.SetSearch(listSearch)

	view := a.Book.View()
	out := cmd.OutOrStdout()

	if listJSON {
		contacts := view.Contacts
		if contacts == nil {
			contacts = []models.Contact{}
		}
		data, err := json.MarshalIndent(contacts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal contacts: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(view.Contacts) == 0 {
		if view.Query.Active() {
			fmt.Fprintln(out, "No contacts match your search or tag filter.")
		} else {
			fmt.Fprintln(out, "No contacts yet.")
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "EMAIL", "PHONE", "TAGS")
	for _, contact := range view.Contacts {
		t.Row(contact.ID, contact.Name, contact.Email, contact.Phone, utils.FormatTags(contact.Tags))
	}

	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d of %d shown\n", len(view.Contacts), view.Total)
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	for _, tag := range a.Book.View().Tags {
		fmt.Fprintln(cmd.OutOrStdout(), tag)
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	draft := models.ContactDraft{
		Name:   strings.TrimSpace(addName),
		Email:  strings.TrimSpace(addEmail),
		Phone:  strings.TrimSpace(addPhone),
		Tags:   models.ParseTags(addTags),
		Avatar: addAvatar,
	}

	result := validation.ValidateDraft(draft)
	if !result.IsValid {
		messages := make([]string, len(result.Errors))
		for i, err := range result.Errors {
			messages[i] = err.Message
		}
		return fmt.Errorf("invalid contact: %s", strings.Join(messages, "; "))
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	contact := a.Book.AddContact(draft)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", contact.Name, contact.ID)
	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning.Message)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	removed := a.Book.Delete(args)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", utils.FormatCount(removed, "contact"))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportAll && len(args) > 0 {
		return errors.New("pass contact ids or --all, not both")
	}
	if !exportAll && len(args) == 0 {
		return errors.New("nothing to export: pass contact ids or --all")
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	format, err := export.ParseFormat(a.Config.Export.Format)
	if err != nil {
		return err
	}
	if exportFormat != "" {
		if format, err = export.ParseFormat(exportFormat); err != nil {
			return err
		}
	}

	ids := args
	if exportAll {
		for _, contact := range a.Book.Contacts() {
			ids = append(ids, contact.ID)
		}
	}

	artifact, err := a.Book.ExportAs(ids, format)
	if err != nil {
		return err
	}
	if artifact == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching contacts; nothing exported.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", utils.FormatCount(artifact.Count, "contact"), artifact.Path)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(a)

	if a.Auditor == nil {
		return errors.New("audit log is disabled")
	}

	history, err := a.History(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintf(out, "No history for %s\n", args[0])
		return nil
	}

	for _, entry := range history {
		line := fmt.Sprintf("%s  %-6s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Action)
		if len(entry.Details) > 0 {
			details, err := json.Marshal(entry.Details)
			if err == nil {
				line += "  " + string(details)
			}
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
