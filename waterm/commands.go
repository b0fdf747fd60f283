package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/utils"
)

// exportContacts writes the saved contacts to path, or to a timestamped file
// under <dataDir>/exports when path is empty.
func exportContacts(out io.Writer, contacts *models.ContactStore, dataDir, path string) error {
	if path == "" {
		path = filepath.Join(dataDir, "exports", utils.GenerateBackupFilename(utils.FormatJSON, time.Now()))
	}

	list := contacts.List()
	if err := utils.ExportContacts(list, utils.FormatFromPath(path), path); err != nil {
		return fmt.Errorf("failed to export contacts: %w", err)
	}

	fmt.Fprintf(out, "Exported %d contacts to %s\n", len(list), path)
	return nil
}

// importContacts adds the contacts in path that collide with no saved name or number.
func importContacts(out io.Writer, contacts *models.ContactStore, logger *zap.Logger, path string) error {
	result, imported, err := utils.ImportContacts(path, utils.FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("failed to import contacts: %w", err)
	}

	for _, importErr := range result.Errors {
		fmt.Fprintf(out, "Line %d: %s: %s\n", importErr.LineNumber, importErr.Field, importErr.Message)
	}

	for _, conflict := range utils.DetectConflicts(imported, contacts.List()) {
		fmt.Fprintf(out, "Skipping %s: %s already saved as %s\n",
			conflict.Imported.Name, conflict.ConflictType, utils.FormatContactLabel(conflict.Existing.Number, conflict.Existing.Name))
	}

	added := 0
	for _, contact := range imported {
		err := contacts.Add(contact.Name, contact.Number)
		switch {
		case err == nil:
			added++
		case errors.Is(err, models.ErrDuplicate):
			logger.Debug("skipping duplicate contact", zap.String("name", contact.Name))
		default:
			return fmt.Errorf("failed to save contact %s: %w", contact.Name, err)
		}
	}

	fmt.Fprintf(out, "Imported %d of %d contacts\n", added, result.TotalContacts)
	return nil
}
