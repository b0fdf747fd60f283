package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// LocalNumberLength is the length of a subscriber number without its country code.
const LocalNumberLength = 10

var (
	localNumberRegex = regexp.MustCompile(`^\d{10}$`)
	nonDigitRegex    = regexp.MustCompile(`[^0-9]`)
)

// NormalizeDigits strips every non-digit character from input.
func NormalizeDigits(input string) string {
	return nonDigitRegex.ReplaceAllString(input, "")
}

// IsValidLocal reports whether number is exactly ten ASCII digits.
func IsValidLocal(number string) bool {
	return localNumberRegex.MatchString(number)
}

// SplitFullNumber splits a full number into country code and local number.
// The last ten characters are the local number; anything before is the country code.
func SplitFullNumber(full string) (countryCode, local string) {
	if len(full) <= LocalNumberLength {
		return "", full
	}
	return full[:len(full)-LocalNumberLength], full[len(full)-LocalNumberLength:]
}

// JoinFullNumber concatenates the digits of a country code and a local number.
func JoinFullNumber(countryCode, local string) string {
	return NormalizeDigits(countryCode) + NormalizeDigits(local)
}

// IsValidFull reports whether full is digits only, carries a country code and ends
// in a valid local number.
func IsValidFull(full string) bool {
	if NormalizeDigits(full) != full {
		return false
	}
	countryCode, local := SplitFullNumber(full)
	return countryCode != "" && IsValidLocal(local)
}

const unknownRegion = "ZZ"

// CountryRegion returns the ISO 3166 region assigned to a calling code, e.g.
// "IN" for "91". Shared codes resolve to their main region ("US" for "1").
func CountryRegion(countryCode string) (string, bool) {
	code, err := strconv.Atoi(countryCode)
	if err != nil || code <= 0 || NormalizeDigits(countryCode) != countryCode {
		return "", false
	}
	region := phonenumbers.GetRegionCodeForCountryCode(code)
	if region == "" || region == unknownRegion {
		return "", false
	}
	return region, true
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
