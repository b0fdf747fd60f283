package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rhystmorgan/waLink/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	contacts := []models.Contact{
		{Name: "Amy", Number: "919876543210"},
		{Name: "Bob, Jr.", Number: "447911123456"},
	}

	for _, format := range []ExportFormat{FormatJSON, FormatCSV} {
		path := filepath.Join(t.TempDir(), "exports", GenerateBackupFilename(format, time.Now()))
		if got := FormatFromPath(path); got != format {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, format)
		}

		if err := ExportContacts(contacts, format, path); err != nil {
			t.Fatalf("ExportContacts() error = %v", err)
		}

		result, imported, err := ImportContacts(path, format)
		if err != nil {
			t.Fatalf("ImportContacts() error = %v", err)
		}
		if result.TotalContacts != 2 || result.ImportedContacts != 2 || result.SkippedContacts != 0 {
			t.Errorf("result = %+v", result)
		}
		if len(imported) != 2 || imported[1] != contacts[1] {
			t.Errorf("imported = %+v", imported)
		}
	}
}

func TestImportCSVValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	content := "Number,Name\n+91 98765-43210, Amy \n12345,Short\n919876543211,\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	result, imported, err := ImportContacts(path, FormatCSV)
	if err != nil {
		t.Fatalf("ImportContacts() error = %v", err)
	}

	if len(imported) != 1 || imported[0].Name != "Amy" || imported[0].Number != "919876543210" {
		t.Errorf("imported = %+v", imported)
	}
	if result.SkippedContacts != 2 || len(result.Errors) != 2 {
		t.Fatalf("result = %+v", result)
	}
	if result.Errors[0].LineNumber != 3 || result.Errors[0].Field != "number" {
		t.Errorf("first error = %+v", result.Errors[0])
	}
	if result.Errors[1].LineNumber != 4 || result.Errors[1].Field != "name" {
		t.Errorf("second error = %+v", result.Errors[1])
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	missingColumns := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(missingColumns, []byte("name,phone\nAmy,1\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name   string
		path   string
		format ExportFormat
	}{
		{"missing file", filepath.Join(dir, "nope.json"), FormatJSON},
		{"missing columns", missingColumns, FormatCSV},
		{"malformed JSON", badJSON, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ImportContacts(tt.path, tt.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	existing := []models.Contact{
		{Name: "Amy", Number: "919876543210"},
		{Name: "Bob", Number: "447911123456"},
	}
	imported := []models.Contact{
		{Name: "Amy", Number: "919876543210"},
		{Name: "Bob", Number: "15551234567"},
		{Name: "Cat", Number: "447911123456"},
		{Name: "amy", Number: "33612345678"},
	}

	conflicts := DetectConflicts(imported, existing)
	if len(conflicts) != 3 {
		t.Fatalf("len(conflicts) = %d, want 3", len(conflicts))
	}

	want := []ConflictType{ConflictBoth, ConflictName, ConflictNumber}
	for i, conflict := range conflicts {
		if conflict.ConflictType != want[i] {
			t.Errorf("conflict %d type = %v, want %v", i, conflict.ConflictType, want[i])
		}
	}
}
