package models

import "regexp"

// Input formats shared by every entry point into the core. Validation always
// happens before any mutation, so a failed check never needs a rollback.
var (
	namePattern    = regexp.MustCompile(`^[\w\s]{3,50}$`)
	phonePattern   = regexp.MustCompile(`^255\d{9}$`)
	groupIDPattern = regexp.MustCompile(`^\w{3,20}$`)
	pinPattern     = regexp.MustCompile(`^\d{4}$`)
)

// ValidMemberName reports whether name is 3-50 word characters or spaces.
func ValidMemberName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidPhone reports whether phone is a 12-digit national number (255xxxxxxxxx).
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidGroupID reports whether id is 3-20 alphanumeric characters.
func ValidGroupID(id string) bool {
	return groupIDPattern.MatchString(id)
}

// ValidPIN reports whether pin is exactly 4 digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// ValidAmount reports whether amount is a positive integer.
func ValidAmount(amount int64) bool {
	return amount > 0
}
