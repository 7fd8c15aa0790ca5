package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried when a phone number carries no country prefix.
var supportedRegions = []string{
	"PH",
	"US",
}

// SanitizePhone normalizes a phone number to E.164 when it parses under one of
// the supported regions. Unparseable input is returned trimmed but otherwise
// untouched; length validation rejects it downstream if it is garbage.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return phone
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}
