// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizeRegion upper-cases and trims a region code. Empty input stays empty.
func NormalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

// Parse trims the input and parses it against the optional default region.
// An empty region requires the number to carry its own country code.
func Parse(input, region string) (*phonenumbers.PhoneNumber, error) {
	return phonenumbers.Parse(strings.TrimSpace(input), NormalizeRegion(region))
}
