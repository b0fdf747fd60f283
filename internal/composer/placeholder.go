package composer

import (
	"regexp"
	"sort"
)

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ExtractPlaceholders returns all unique placeholder names from the content, sorted.
func ExtractPlaceholders(content string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(content, -1)

	seen := make(map[string]bool)
	for _, match := range matches {
		seen[match[1]] = true
	}

	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	sort.Strings(result)

	return result
}

// FillPlaceholders replaces {{name}} placeholders with values from the map.
// Placeholders without a value are left in place and reported as missing.
func FillPlaceholders(content string, values map[string]string) (string, []string) {
	missingMap := make(map[string]bool)

	filled := placeholderRegex.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := values[name]; ok && value != "" {
			return value
		}
		missingMap[name] = true
		return match
	})

	missing := make([]string, 0, len(missingMap))
	for name := range missingMap {
		missing = append(missing, name)
	}
	sort.Strings(missing)

	return filled, missing
}

// ContactPlaceholders returns the values available for a chat target.
// Available: {{name}}, {{number}}, {{phone}}.
func ContactPlaceholders(name, number, display string) map[string]string {
	return map[string]string{
		"name":   name,
		"number": number,
		"phone":  display,
	}
}
