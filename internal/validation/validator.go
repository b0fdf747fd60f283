package validation

import (
	"fmt"
)

// ValidateContact checks a new contact against the required fields and the existing
// collection. Name and number collisions are exact, case-sensitive matches.
func ValidateContact(name, fullNumber string, existingNames, existingNumbers []string) *ValidationError {
	if IsBlank(name) {
		return NewValidationError("name", ErrorNameRequired, "Name is required")
	}

	if !IsValidFull(fullNumber) {
		return NewValidationError("number", ErrorInvalidPhone,
			fmt.Sprintf("Invalid phone number: %q (expected country code followed by %d digits)", fullNumber, LocalNumberLength))
	}

	for _, existing := range existingNames {
		if existing == name {
			return NewValidationError("name", ErrorDuplicateName, "Error: The name or number already exists")
		}
	}

	for _, existing := range existingNumbers {
		if existing == fullNumber {
			return NewValidationError("number", ErrorDuplicateNumber, "Error: The name or number already exists")
		}
	}

	return nil
}
