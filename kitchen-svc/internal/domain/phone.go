package domain

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone returns the E.164 form of raw, parsed against the default
// region. Input that is not a possible number is reduced to its digits so
// equal inputs still group together.
func NormalizePhone(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if num, err := phonenumbers.Parse(trimmed, region); err == nil && phonenumbers.IsPossibleNumber(num) {
		return phonenumbers.Format(num, phonenumbers.E164)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, trimmed)
}
