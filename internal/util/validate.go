package util

import (
	"regexp"
	"strings"
)

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	pinCodePattern = regexp.MustCompile(`^[0-9]{4,10}$`)
	phoneNoise     = regexp.MustCompile(`[\s\-.()]+`)
)

// NormalizePhone strips spacing, dashes, dots and parentheses from user input
// so "555 123-4567" and "5551234567" land on the same stored value.
func NormalizePhone(raw string) string {
	return phoneNoise.ReplaceAllString(strings.TrimSpace(raw), "")
}

// ValidPhone reports whether s is 7-15 digits with an optional leading +.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidPinCode reports whether s is a 4-10 digit postal code.
func ValidPinCode(s string) bool {
	return pinCodePattern.MatchString(s)
}
