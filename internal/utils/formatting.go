package utils

import (
	"fmt"
	"strings"

	"rhystmorgan/waLink/internal/validation"
)

// FormatPhoneNumber renders a full number as +{cc}-{local}. Numbers of ten
// characters or fewer are returned bare.
func FormatPhoneNumber(full string) string {
	countryCode, local := validation.SplitFullNumber(full)
	if countryCode == "" {
		return local
	}
	return fmt.Sprintf("+%s-%s", countryCode, local)
}

// FormatContactLabel formats a number with an optional contact name
func FormatContactLabel(number, name string) string {
	if name != "" {
		return fmt.Sprintf("%s (%s)", name, FormatPhoneNumber(number))
	}
	return FormatPhoneNumber(number)
}

// TruncateString truncates a string to a maximum number of runes with ellipsis
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}

// SingleLine collapses newlines so multi-line text fits in a list row.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatCount renders a bounded count like "3/15".
func FormatCount(current, max int) string {
	return fmt.Sprintf("%d/%d", current, max)
}
