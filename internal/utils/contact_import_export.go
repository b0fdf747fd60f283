package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rhystmorgan/waLink/internal/models"
	"rhystmorgan/waLink/internal/validation"
)

type ExportFormat int

const (
	FormatJSON ExportFormat = iota
	FormatCSV
)

const exportVersion = "1.0"

// FormatFromPath picks the format from the file extension. Anything but .csv is JSON.
func FormatFromPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

type ImportResult struct {
	TotalContacts    int
	ImportedContacts int
	SkippedContacts  int
	Conflicts        []ContactConflict
	Errors           []ImportError
}

type ConflictType int

const (
	ConflictNumber ConflictType = iota
	ConflictName
	ConflictBoth
)

func (c ConflictType) String() string {
	switch c {
	case ConflictNumber:
		return "number"
	case ConflictName:
		return "name"
	case ConflictBoth:
		return "name and number"
	default:
		return "unknown"
	}
}

type ContactConflict struct {
	Imported     models.Contact
	Existing     models.Contact
	ConflictType ConflictType
}

type ImportError struct {
	LineNumber int
	Field      string
	Message    string
}

type exportFile struct {
	ExportedAt    time.Time        `json:"exported_at"`
	Version       string           `json:"version"`
	TotalContacts int              `json:"total_contacts"`
	Contacts      []models.Contact `json:"contacts"`
}

// ExportContacts writes contacts to path in the given format.
func ExportContacts(contacts []models.Contact, format ExportFormat, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(exportFile{
			ExportedAt:    time.Now().UTC(),
			Version:       exportVersion,
			TotalContacts: len(contacts),
			Contacts:      contacts,
		}); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatCSV:
		writer := csv.NewWriter(file)
		if err := writer.Write([]string{"name", "number"}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		for _, contact := range contacts {
			if err := writer.Write([]string{contact.Name, contact.Number}); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format")
	}

	return nil
}

// ImportContacts reads contacts from path. Rows without a name or with a malformed
// number are reported in the result and left out of the returned slice.
func ImportContacts(path string, format ExportFormat) (*ImportResult, []models.Contact, error) {
	var (
		rows []models.Contact
		err  error
	)

	switch format {
	case FormatJSON:
		rows, err = readJSONContacts(path)
	case FormatCSV:
		rows, err = readCSVContacts(path)
	default:
		return nil, nil, fmt.Errorf("unsupported import format")
	}
	if err != nil {
		return nil, nil, err
	}

	result := &ImportResult{TotalContacts: len(rows)}
	valid := make([]models.Contact, 0, len(rows))

	for idx, contact := range rows {
		contact.Name = strings.TrimSpace(contact.Name)
		contact.Number = validation.NormalizeDigits(contact.Number)

		// CSV line numbers count the header
		line := idx + 1
		if format == FormatCSV {
			line++
		}

		switch {
		case contact.Name == "":
			result.Errors = append(result.Errors, ImportError{LineNumber: line, Field: "name", Message: "Name is required"})
		case !validation.IsValidFull(contact.Number):
			result.Errors = append(result.Errors, ImportError{LineNumber: line, Field: "number", Message: "Invalid phone number"})
		default:
			valid = append(valid, contact)
		}
	}

	result.ImportedContacts = len(valid)
	result.SkippedContacts = result.TotalContacts - result.ImportedContacts
	return result, valid, nil
}

func readJSONContacts(path string) ([]models.Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var wrapper exportFile
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return wrapper.Contacts, nil
}

func readCSVContacts(path string) ([]models.Contact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	headerMap := make(map[string]int)
	for idx, col := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	nameIdx, hasName := headerMap["name"]
	numberIdx, hasNumber := headerMap["number"]
	if !hasName || !hasNumber {
		return nil, fmt.Errorf("CSV header must contain name and number columns")
	}

	contacts := make([]models.Contact, 0, len(records)-1)
	for _, record := range records[1:] {
		var contact models.Contact
		if nameIdx < len(record) {
			contact.Name = record[nameIdx]
		}
		if numberIdx < len(record) {
			contact.Number = record[numberIdx]
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

// DetectConflicts pairs imported contacts with saved ones sharing a name or number.
// Matching is exact, the same rule the contact store enforces.
func DetectConflicts(imported, existing []models.Contact) []ContactConflict {
	conflicts := []ContactConflict{}

	for _, in := range imported {
		for _, saved := range existing {
			nameMatch := in.Name == saved.Name
			numberMatch := in.Number == saved.Number

			conflict := ContactConflict{Imported: in, Existing: saved}
			switch {
			case nameMatch && numberMatch:
				conflict.ConflictType = ConflictBoth
			case numberMatch:
				conflict.ConflictType = ConflictNumber
			case nameMatch:
				conflict.ConflictType = ConflictName
			default:
				continue
			}
			conflicts = append(conflicts, conflict)
		}
	}

	return conflicts
}

// GenerateBackupFilename generates a timestamped backup filename
func GenerateBackupFilename(format ExportFormat, now time.Time) string {
	timestamp := now.Format("2006-01-02_15-04-05")
	if format == FormatCSV {
		return fmt.Sprintf("contacts_backup_%s.csv", timestamp)
	}
	return fmt.Sprintf("contacts_backup_%s.json", timestamp)
}
