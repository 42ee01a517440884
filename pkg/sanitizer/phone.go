package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried for numbers written without a country prefix. Numbers in
// E.164 form parse regardless of this list.
var fallbackRegions = []string{
	"CO",
	"PE",
	"US",
}

// NormalizePhone returns the E.164 form of the input, or "" when the number
// cannot be parsed as a valid phone number.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	if strings.HasPrefix(phone, "+") {
		if parsed, err := phonenumbers.Parse(phone, ""); err == nil && phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
		return ""
	}

	for _, region := range fallbackRegions {
		if parsed, err := phonenumbers.Parse(phone, region); err == nil && phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}
